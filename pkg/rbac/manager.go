package rbac

import "slices"

// Manager answers authorization queries for a single principal.
//
// A Manager is bound to one set of claims and never changes after construction.
// Build a new one per request or session; do not share it between principals.
type Manager struct {
	resolver    *PermissionResolver
	roles       []Role
	permissions []Permission

	// direct is nil unless directly claimed permissions take part in checks.
	direct PermissionSet
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// IncludeDirectPermissions makes permissions claimed directly by the principal
// count in HasPermission alongside role-derived ones. Without it the check is
// purely role driven and a principal without roles holds no permission.
func IncludeDirectPermissions() ManagerOption {
	return func(m *Manager) {
		m.direct = make(PermissionSet, len(m.permissions))
		for _, p := range m.permissions {
			m.direct[p] = struct{}{}
		}
	}
}

// NewManager binds claims to a precomputed resolver. The claims are copied.
func NewManager(resolver *PermissionResolver, claims Claims, opts ...ManagerOption) *Manager {
	m := &Manager{
		resolver:    resolver,
		roles:       slices.Clone(claims.Roles),
		permissions: slices.Clone(claims.Permissions),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HasPermission reports whether the principal holds p.
func (m *Manager) HasPermission(p Permission) bool {
	if m.direct.Has(p) {
		return true
	}
	for _, role := range m.roles {
		if m.resolver.Grants(role, p) {
			return true
		}
	}
	return false
}

// HasPermissions reports whether the principal holds every permission in ps.
// An empty list is trivially satisfied.
func (m *Manager) HasPermissions(ps ...Permission) bool {
	for _, p := range ps {
		if !m.HasPermission(p) {
			return false
		}
	}
	return true
}

// HasAnyPermission reports whether the principal holds at least one permission in ps.
// An empty list is never satisfied.
func (m *Manager) HasAnyPermission(ps ...Permission) bool {
	for _, p := range ps {
		if m.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasRole reports whether the principal holds role directly or through inheritance.
func (m *Manager) HasRole(role Role) bool {
	h := m.resolver.Hierarchy()
	for _, held := range m.roles {
		if h.Includes(held, role) {
			return true
		}
	}
	return false
}

// MaxRole returns the most senior role the principal holds.
//
// Roles are folded left to right starting with the first one: a later role takes
// over only when its closure contains the current candidate. Unrelated roles never
// displace each other, so among them the one claimed first wins.
// It reports false when the principal holds no roles.
func (m *Manager) MaxRole() (Role, bool) {
	if len(m.roles) == 0 {
		return "", false
	}

	h := m.resolver.Hierarchy()
	maxRole := m.roles[0]
	for _, role := range m.roles[1:] {
		if h.Includes(role, maxRole) {
			maxRole = role
		}
	}
	return maxRole, true
}

// EffectivePermissions returns every permission the principal holds.
func (m *Manager) EffectivePermissions() PermissionSet {
	set := make(PermissionSet)
	for _, role := range m.roles {
		for p := range m.resolver.PermissionsFor(role) {
			set[p] = struct{}{}
		}
	}
	for p := range m.direct {
		set[p] = struct{}{}
	}
	return set
}

// Roles returns a copy of the claimed roles in claim order.
func (m *Manager) Roles() []Role {
	return slices.Clone(m.roles)
}

// Permissions returns a copy of the directly claimed permissions.
func (m *Manager) Permissions() []Permission {
	return slices.Clone(m.permissions)
}
