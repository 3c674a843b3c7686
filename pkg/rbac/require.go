package rbac

import (
	"strings"
	"unicode"
)

// Requirement is the check an authorization gate applies to a principal:
// an optional role plus a list of permissions that must all be held.
type Requirement struct {
	Role        Role
	Permissions []Permission
}

// Require builds a Requirement for the given permissions.
func Require(perms ...Permission) Requirement {
	return Requirement{Permissions: normalizePermissions(perms)}
}

// RequireRole builds a Requirement for role and, optionally, permissions.
func RequireRole(role Role, perms ...Permission) Requirement {
	return Requirement{Role: role, Permissions: normalizePermissions(perms)}
}

// SatisfiedBy reports whether m meets the requirement.
// An empty requirement is always satisfied; a nil manager never is.
func (r Requirement) SatisfiedBy(m *Manager) bool {
	if m == nil {
		return false
	}
	if r.Role != "" && !m.HasRole(r.Role) {
		return false
	}
	return m.HasPermissions(r.Permissions...)
}

// ParsePermissions splits a comma or whitespace separated list into permissions.
// Blank entries are skipped and duplicates removed, keeping first occurrence order.
func ParsePermissions(raw string) []Permission {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	perms := make([]Permission, 0, len(fields))
	for _, f := range fields {
		perms = append(perms, Permission(f))
	}
	return normalizePermissions(perms)
}

// ParseRoles splits a comma or whitespace separated list into roles, keeping order.
func ParseRoles(raw string) []Role {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	roles := make([]Role, 0, len(fields))
	for _, f := range fields {
		roles = append(roles, Role(f))
	}
	return roles
}

func normalizePermissions(perms []Permission) []Permission {
	seen := make(map[Permission]struct{}, len(perms))
	out := make([]Permission, 0, len(perms))
	for _, p := range perms {
		p = Permission(strings.TrimSpace(string(p)))
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
