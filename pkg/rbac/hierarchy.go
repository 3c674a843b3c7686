package rbac

import (
	"maps"
	"slices"
)

// Hierarchy resolves the transitive closure of inherited roles.
// All closures are computed once in NewHierarchy; the value is read-only afterwards
// and safe for concurrent use.
type Hierarchy struct {
	index    map[Role]int
	nodes    []roleNode
	closures []RoleSet
}

// roleNode is an arena entry; inherits holds arena indexes, not names.
type roleNode struct {
	role     Role
	inherits []int
}

// NewHierarchy builds the closure of every role named in tables.Hierarchy,
// either as a key or as an inheritance target.
//
// Cycles and self references terminate silently: a role met again during its own
// traversal adds nothing. Use Validate to report such misconfiguration.
func NewHierarchy(tables Tables) *Hierarchy {
	h := &Hierarchy{index: make(map[Role]int, len(tables.Hierarchy))}

	roles := slices.Sorted(maps.Keys(tables.Hierarchy))
	for _, role := range roles {
		h.node(role)
	}
	for _, role := range roles {
		id := h.index[role]
		for _, parent := range tables.Hierarchy[role] {
			pid := h.node(parent)
			h.nodes[id].inherits = append(h.nodes[id].inherits, pid)
		}
	}

	h.closures = make([]RoleSet, len(h.nodes))
	seen := make([]int, len(h.nodes))
	stack := make([]int, 0, len(h.nodes))
	for id := range h.nodes {
		h.closures[id] = h.walk(id, seen, id+1, stack)
	}

	return h
}

// node returns the arena index of role, allocating a node on first sight.
func (h *Hierarchy) node(role Role) int {
	if id, ok := h.index[role]; ok {
		return id
	}
	id := len(h.nodes)
	h.nodes = append(h.nodes, roleNode{role: role})
	h.index[role] = id
	return id
}

// walk collects every role reachable from root with an explicit stack.
// seen is shared between walks; mark distinguishes the current traversal.
func (h *Hierarchy) walk(root int, seen []int, mark int, stack []int) RoleSet {
	closure := RoleSet{h.nodes[root].role: {}}
	seen[root] = mark
	stack = append(stack[:0], root)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, next := range h.nodes[id].inherits {
			if seen[next] == mark {
				continue
			}
			seen[next] = mark
			closure[h.nodes[next].role] = struct{}{}
			stack = append(stack, next)
		}
	}

	return closure
}

// Closure returns role together with every role it inherits, directly or transitively.
// A role unknown to the hierarchy resolves to a set holding only itself.
// The returned set is shared and must not be modified.
func (h *Hierarchy) Closure(role Role) RoleSet {
	if id, ok := h.index[role]; ok {
		return h.closures[id]
	}
	return RoleSet{role: {}}
}

// Includes reports whether other is in the closure of role.
func (h *Hierarchy) Includes(role, other Role) bool {
	if role == other {
		return true
	}
	id, ok := h.index[role]
	if !ok {
		return false
	}
	return h.closures[id].Has(other)
}

// Roles returns every role known to the hierarchy in lexical order.
func (h *Hierarchy) Roles() []Role {
	roles := make([]Role, 0, len(h.nodes))
	for _, n := range h.nodes {
		roles = append(roles, n.role)
	}
	slices.Sort(roles)
	return roles
}
