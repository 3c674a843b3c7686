package rbac

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

// Authorizer owns the precomputed role closures and permission sets.
// It is immutable after NewAuthorizer returns and is meant to be shared process-wide;
// per-principal state lives in the Managers it creates.
type Authorizer struct {
	hierarchy         *Hierarchy
	resolver          *PermissionResolver
	directPermissions bool
	logger            *slog.Logger
}

// Option configures an Authorizer.
type Option func(*Authorizer)

// WithDirectPermissions lets permissions claimed directly by a principal satisfy
// permission checks in every Manager created by the Authorizer.
func WithDirectPermissions() Option {
	return func(a *Authorizer) { a.directPermissions = true }
}

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Authorizer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAuthorizer loads the tables from source and precomputes every closure and
// permission set for efficient runtime checks.
func NewAuthorizer(ctx context.Context, source RoleSource, opts ...Option) (*Authorizer, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	tables, err := source.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrLoadTables) {
			return nil, err
		}
		return nil, errors.Join(ErrLoadTables, err)
	}

	a := NewAuthorizerFromTables(tables, opts...)
	a.logger.DebugContext(ctx, "rbac tables loaded",
		logger.Component("rbac"),
		slog.Int("roles", len(a.hierarchy.Roles())),
		slog.Bool("direct_permissions", a.directPermissions),
	)
	return a, nil
}

// NewAuthorizerFromTables builds an Authorizer from tables already in memory.
func NewAuthorizerFromTables(tables Tables, opts ...Option) *Authorizer {
	a := &Authorizer{logger: logger.Discard()}
	for _, opt := range opts {
		opt(a)
	}

	a.hierarchy = NewHierarchy(tables)
	a.resolver = NewPermissionResolver(a.hierarchy, tables)
	return a
}

// Manager returns a new Manager bound to claims.
func (a *Authorizer) Manager(claims Claims) *Manager {
	if a.directPermissions {
		return NewManager(a.resolver, claims, IncludeDirectPermissions())
	}
	return NewManager(a.resolver, claims)
}

// Closure returns role and every role it inherits.
func (a *Authorizer) Closure(role Role) RoleSet {
	return a.hierarchy.Closure(role)
}

// PermissionsFor returns the resolved permissions of role.
func (a *Authorizer) PermissionsFor(role Role) PermissionSet {
	return a.resolver.PermissionsFor(role)
}

// Roles returns every role known to the hierarchy in lexical order.
func (a *Authorizer) Roles() []Role {
	return a.hierarchy.Roles()
}
