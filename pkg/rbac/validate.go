package rbac

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/dominikbraun/graph"
)

// Validate reports misconfiguration in tables: inheritance cycles, self references
// and roles that are referenced in one table but missing from the other.
// All problems are joined into one error; nil means the tables are consistent.
//
// Resolvers never call Validate. It is meant for loaders and operator tooling.
func Validate(tables Tables) error {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	var errs []error
	roles := slices.Sorted(maps.Keys(tables.Hierarchy))
	for _, role := range roles {
		_ = g.AddVertex(string(role))
	}

	for _, role := range roles {
		for _, parent := range tables.Hierarchy[role] {
			if _, ok := tables.Hierarchy[parent]; !ok {
				errs = append(errs, fmt.Errorf("%w: %q inherits undefined role %q", ErrUnknownRole, role, parent))
				_ = g.AddVertex(string(parent))
			}

			err := g.AddEdge(string(role), string(parent))
			switch {
			case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
			case errors.Is(err, graph.ErrEdgeCreatesCycle):
				errs = append(errs, fmt.Errorf("%w: %q -> %q", ErrCircularInheritance, role, parent))
			default:
				errs = append(errs, err)
			}
		}

		if _, ok := tables.Permissions[role]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q has no permission entry", ErrUnknownRole, role))
		}
	}

	for _, role := range slices.Sorted(maps.Keys(tables.Permissions)) {
		if _, ok := tables.Hierarchy[role]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q has permissions but no hierarchy entry", ErrUnknownRole, role))
		}
	}

	return errors.Join(errs...)
}
