package policies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/authkit/pkg/policy"
	"github.com/dmitrymomot/authkit/pkg/rbac"
)

// ErrNoAuthorizer is returned when a PermissionPolicy has to build a Manager from
// context claims but was constructed without an Authorizer.
var ErrNoAuthorizer = errors.New("policies.no_authorizer")

// PermissionPolicy turns an RBAC requirement into a policy step so that role and
// permission checks compose with business rules in one group.
type PermissionPolicy struct {
	policy.Base
	auth *rbac.Authorizer
	req  rbac.Requirement
}

// NewPermissionPolicy checks req against the roles and permissions carried by the
// evaluation context. name identifies the step in decisions.
// auth may be nil when every evaluation context carries a Manager stored with
// rbac.WithManager and no claims of its own; otherwise Can fails with ErrNoAuthorizer.
func NewPermissionPolicy(name string, auth *rbac.Authorizer, req rbac.Requirement) *PermissionPolicy {
	return &PermissionPolicy{
		Base: policy.NewBase(name, "Check if user holds the required role and permissions"),
		auth: auth,
		req:  req,
	}
}

func (p *PermissionPolicy) Can(ctx context.Context, pc policy.Context) (policy.Decision, error) {
	m, err := p.managerFor(ctx, pc)
	if err != nil {
		return policy.Decision{}, fmt.Errorf("%s: %w", p.Name(), err)
	}

	if p.req.Role != "" && !m.HasRole(p.req.Role) {
		return p.Denied(fmt.Sprintf("Missing required role %s", p.req.Role)), nil
	}

	var missing []string
	for _, perm := range p.req.Permissions {
		if !m.HasPermission(perm) {
			missing = append(missing, string(perm))
		}
	}
	if len(missing) > 0 {
		return p.Denied("Missing permissions: " + strings.Join(missing, ", ")), nil
	}

	return p.Allowed(), nil
}

// managerFor prefers a Manager already attached to ctx and otherwise builds one
// from the context claims.
func (p *PermissionPolicy) managerFor(ctx context.Context, pc policy.Context) (*rbac.Manager, error) {
	if len(pc.Roles) == 0 && len(pc.Permissions) == 0 {
		if m, ok := rbac.ManagerFromContext(ctx); ok {
			return m, nil
		}
	}
	if p.auth == nil {
		return nil, ErrNoAuthorizer
	}

	claims := rbac.Claims{
		Roles:       make([]rbac.Role, len(pc.Roles)),
		Permissions: make([]rbac.Permission, len(pc.Permissions)),
	}
	for i, r := range pc.Roles {
		claims.Roles[i] = rbac.Role(r)
	}
	for i, perm := range pc.Permissions {
		claims.Permissions[i] = rbac.Permission(perm)
	}
	return p.auth.Manager(claims), nil
}

// FeaturePolicy requires a feature flag to be enabled for the evaluation.
type FeaturePolicy struct {
	policy.Base
	flag string
}

// NewFeaturePolicy denies unless flag is present in the context's feature flags.
func NewFeaturePolicy(flag string) *FeaturePolicy {
	return &FeaturePolicy{
		Base: policy.NewBase("FeaturePolicy:"+flag, "Check if feature "+flag+" is enabled"),
		flag: flag,
	}
}

func (p *FeaturePolicy) Can(_ context.Context, pc policy.Context) (policy.Decision, error) {
	if !pc.HasFeature(p.flag) {
		return p.Denied(fmt.Sprintf("Feature %s is not enabled", p.flag)), nil
	}
	return p.Allowed(), nil
}
