package rbac

import (
	"maps"
	"slices"
)

// Role names a position in the authorization hierarchy.
type Role string

// Permission names a grantable capability, usually a "resource:action" pair.
type Permission string

// Tables is the static authorization configuration.
// Both maps are treated as read-only once handed to a resolver.
type Tables struct {
	// Hierarchy maps a role to the roles it directly inherits from.
	Hierarchy map[Role][]Role `yaml:"hierarchy"`

	// Permissions maps a role to the permissions granted to it directly.
	Permissions map[Role][]Permission `yaml:"permissions"`
}

// Clone returns a deep copy of the tables.
func (t Tables) Clone() Tables {
	out := Tables{
		Hierarchy:   make(map[Role][]Role, len(t.Hierarchy)),
		Permissions: make(map[Role][]Permission, len(t.Permissions)),
	}
	for role, inherits := range t.Hierarchy {
		out.Hierarchy[role] = slices.Clone(inherits)
	}
	for role, perms := range t.Permissions {
		out.Permissions[role] = slices.Clone(perms)
	}
	return out
}

// Claims are the roles and permissions an identity provider asserted for a principal.
// Roles keep the order in which the identity source presented them.
type Claims struct {
	Roles       []Role
	Permissions []Permission
}

// RoleSet is an unordered set of roles.
type RoleSet map[Role]struct{}

// Has reports whether r is a member of the set.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Len returns the number of roles in the set.
func (s RoleSet) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s RoleSet) Sorted() []Role {
	return slices.Sorted(maps.Keys(s))
}

// PermissionSet is an unordered set of permissions.
type PermissionSet map[Permission]struct{}

// Has reports whether p is a member of the set.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of permissions in the set.
func (s PermissionSet) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s PermissionSet) Sorted() []Permission {
	return slices.Sorted(maps.Keys(s))
}
