package rbac

import "errors"

// Domain errors for RBAC configuration handling.
// Authorization checks never return errors: a denial is a plain false.
var (
	// ErrNilSource is returned when NewAuthorizer receives no role source.
	ErrNilSource = errors.New("rbac.nil_source")

	// ErrLoadTables is returned when a role source cannot produce its tables.
	ErrLoadTables = errors.New("rbac.load_tables")

	// ErrCircularInheritance is reported by Validate when roles inherit from each other in a loop.
	ErrCircularInheritance = errors.New("rbac.circular_inheritance")

	// ErrUnknownRole is reported by Validate for roles referenced but never defined.
	ErrUnknownRole = errors.New("rbac.unknown_role")
)
