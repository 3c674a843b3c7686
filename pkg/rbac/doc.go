// Package rbac provides role-based access control with role inheritance and
// precomputed permission resolution.
//
// Key concepts:
//
//   - Role: a named position in the hierarchy that may inherit other roles
//   - Permission: an opaque capability string (e.g. "product:update")
//   - Closure: a role plus every role it inherits, directly or transitively
//   - Manager: the per-principal query API built from the principal's claims
//
// Everything is computed once: NewAuthorizer walks the hierarchy with an explicit
// stack, caches each role's closure and permission set, and is read-only from then
// on. Managers are cheap views over those caches and must be created per request
// or session, never shared between principals.
//
// Basic usage:
//
//	tables := rbac.Tables{
//	    Hierarchy: map[rbac.Role][]rbac.Role{
//	        "admin":   {"manager"},
//	        "manager": {"user"},
//	        "user":    {},
//	    },
//	    Permissions: map[rbac.Role][]rbac.Permission{
//	        "manager": {"product:update"},
//	        "user":    {"product:read"},
//	    },
//	}
//
//	auth, err := rbac.NewAuthorizer(ctx, rbac.NewInMemRoleSource(tables))
//	if err != nil {
//	    return err
//	}
//
//	m := auth.Manager(rbac.Claims{Roles: []rbac.Role{"manager"}})
//	m.HasPermission("product:read") // true, inherited from user
//	m.HasRole("admin")              // false
//
//	// Hand the manager to downstream code through the request context.
//	ctx = rbac.WithManager(ctx, m)
//
// Hierarchy cycles never hang or fail resolution; call Validate from loaders or
// tooling to report them.
package rbac
