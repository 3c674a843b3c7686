package policy

import "context"

// Policy is a named unit of decision logic.
//
// Can returns a Decision for every expected outcome, including denials. A non-nil
// error means access could not be determined, for example because a remote lookup
// failed; it must never be used to signal a denial. Implementations must not modify
// the Context and should honour ctx for any I/O they perform.
type Policy interface {
	Name() string
	Description() string
	Can(ctx context.Context, pc Context) (Decision, error)
}

// Base carries the name and description of a policy and builds its decisions.
// Embed it in concrete policies.
type Base struct {
	name        string
	description string
}

// NewBase returns a Base for the given name and description.
func NewBase(name, description string) Base {
	return Base{name: name, description: description}
}

func (b Base) Name() string        { return b.name }
func (b Base) Description() string { return b.description }

// Allowed returns an allowing decision carrying ReasonGranted.
func (b Base) Allowed() Decision {
	return Allow(b.name, ReasonGranted)
}

// Denied returns a denying decision. An empty reason becomes ReasonDenied.
func (b Base) Denied(reason string) Decision {
	return Deny(b.name, reason)
}

// Func evaluates a policy from a plain function.
type Func func(ctx context.Context, pc Context) (Decision, error)

type funcPolicy struct {
	Base
	fn Func
}

// New wraps fn into a Policy.
func New(name, description string, fn Func) Policy {
	return &funcPolicy{Base: NewBase(name, description), fn: fn}
}

func (p *funcPolicy) Can(ctx context.Context, pc Context) (Decision, error) {
	return p.fn(ctx, pc)
}
