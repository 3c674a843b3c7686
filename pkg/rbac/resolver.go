package rbac

// PermissionResolver caches the full permission set of each role,
// including everything granted to roles in its closure.
type PermissionResolver struct {
	hierarchy   *Hierarchy
	permissions map[Role]PermissionSet
}

// NewPermissionResolver precomputes permissions for every role of the permission
// table and of the hierarchy. Roles missing from tables.Permissions grant nothing
// directly but still receive what they inherit.
func NewPermissionResolver(h *Hierarchy, tables Tables) *PermissionResolver {
	r := &PermissionResolver{
		hierarchy:   h,
		permissions: make(map[Role]PermissionSet, len(tables.Permissions)),
	}

	for role := range tables.Permissions {
		r.permissions[role] = collectPermissions(h.Closure(role), tables.Permissions)
	}
	for _, role := range h.Roles() {
		if _, ok := r.permissions[role]; !ok {
			r.permissions[role] = collectPermissions(h.Closure(role), tables.Permissions)
		}
	}

	return r
}

func collectPermissions(closure RoleSet, direct map[Role][]Permission) PermissionSet {
	set := make(PermissionSet)
	for role := range closure {
		for _, p := range direct[role] {
			set[p] = struct{}{}
		}
	}
	return set
}

// PermissionsFor returns the resolved permissions of role.
// An unknown role yields an empty set. The returned set is shared and must not be modified.
func (r *PermissionResolver) PermissionsFor(role Role) PermissionSet {
	if set, ok := r.permissions[role]; ok {
		return set
	}
	return PermissionSet{}
}

// Grants reports whether role holds permission p, directly or through inheritance.
func (r *PermissionResolver) Grants(role Role, p Permission) bool {
	return r.permissions[role].Has(p)
}

// Hierarchy returns the hierarchy the resolver was built on.
func (r *PermissionResolver) Hierarchy() *Hierarchy {
	return r.hierarchy
}
