package policy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Group is a named, ordered sequence of policies evaluated one at a time.
// Policies run strictly in the order they were added; the group never
// evaluates them concurrently and does not impose timeouts of its own.
//
// A Group is itself a Policy, so groups can be nested.
type Group struct {
	Base
	policies []Policy
	logger   *slog.Logger
}

// NewGroup returns a group evaluating policies in the given order. Nil entries are skipped.
func NewGroup(name string, policies ...Policy) *Group {
	return NewBuilder(name).Add(policies...).Build()
}

// Can evaluates with AND semantics. The first denial stops evaluation and is
// returned unchanged, keeping the denying policy's name and reason. When every
// policy allows, the result is an allowing decision named after the group with
// no reason.
func (g *Group) Can(ctx context.Context, pc Context) (Decision, error) {
	log := g.evaluationLogger(ctx)

	for _, p := range g.policies {
		d, err := g.evaluate(ctx, log, p, pc)
		if err != nil {
			return Decision{}, err
		}
		if !d.Allowed {
			log.DebugContext(ctx, "policy group denied", logger.Decision(d.Name, d.Allowed, d.Reason))
			return d, nil
		}
	}

	d := Decision{Name: g.Name(), Allowed: true}
	log.DebugContext(ctx, "policy group allowed", logger.Decision(d.Name, d.Allowed, d.Reason))
	return d, nil
}

// CanAny evaluates with OR semantics. The first allowing decision stops evaluation
// and is returned unchanged. When no policy allows, the result is a denial named
// after the group with ReasonAllDenied.
func (g *Group) CanAny(ctx context.Context, pc Context) (Decision, error) {
	log := g.evaluationLogger(ctx)

	for _, p := range g.policies {
		d, err := g.evaluate(ctx, log, p, pc)
		if err != nil {
			return Decision{}, err
		}
		if d.Allowed {
			log.DebugContext(ctx, "policy group allowed", logger.Decision(d.Name, d.Allowed, d.Reason))
			return d, nil
		}
	}

	d := Deny(g.Name(), ReasonAllDenied)
	log.DebugContext(ctx, "policy group denied", logger.Decision(d.Name, d.Allowed, d.Reason))
	return d, nil
}

func (g *Group) evaluate(ctx context.Context, log *slog.Logger, p Policy, pc Context) (Decision, error) {
	d, err := p.Can(ctx, pc)
	if err != nil {
		log.ErrorContext(ctx, "policy evaluation failed", logger.Policy(p.Name()), logger.Error(err))
		if errors.Is(err, ErrEvaluation) {
			return Decision{}, err
		}
		return Decision{}, errors.Join(ErrEvaluation, fmt.Errorf("policy %q: %w", p.Name(), err))
	}
	log.DebugContext(ctx, "policy evaluated", logger.Policy(p.Name()), logger.Decision(d.Name, d.Allowed, d.Reason))
	return d, nil
}

// evaluationLogger tags the records of one evaluation with a shared id when debug logging is on.
func (g *Group) evaluationLogger(ctx context.Context) *slog.Logger {
	log := logger.OrDiscard(g.logger).With(logger.Group(g.Name()))
	if log.Enabled(ctx, slog.LevelDebug) {
		log = log.With(logger.EvaluationID(uuid.NewString()))
	}
	return log
}

// Policies returns a copy of the group's policies in evaluation order.
func (g *Group) Policies() []Policy {
	return slices.Clone(g.policies)
}

// Len returns the number of policies in the group.
func (g *Group) Len() int {
	return len(g.policies)
}

// Builder accumulates policies for a Group.
type Builder struct {
	name        string
	description string
	policies    []Policy
	logger      *slog.Logger
}

// NewBuilder starts a group called name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Add appends policies in order. Nil policies are skipped.
func (b *Builder) Add(policies ...Policy) *Builder {
	for _, p := range policies {
		if p != nil {
			b.policies = append(b.policies, p)
		}
	}
	return b
}

// WithDescription sets the group's description.
func (b *Builder) WithDescription(description string) *Builder {
	b.description = description
	return b
}

// WithLogger sets the logger used for decision tracing.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Build returns the group. The builder may be reused; later additions do not
// affect groups already built.
func (b *Builder) Build() *Group {
	return &Group{
		Base:     NewBase(b.name, b.description),
		policies: slices.Clone(b.policies),
		logger:   logger.OrDiscard(b.logger),
	}
}
