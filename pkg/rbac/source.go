package rbac

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RoleSource provides the static role tables.
type RoleSource interface {
	// Load returns the hierarchy and permission tables.
	Load(ctx context.Context) (Tables, error)
}

// inMemRoleSource serves tables held in memory.
type inMemRoleSource struct {
	tables Tables
}

// NewInMemRoleSource creates a role source from tables.
// The tables are deep-copied so later changes by the caller have no effect.
func NewInMemRoleSource(tables Tables) RoleSource {
	return &inMemRoleSource{tables: tables.Clone()}
}

// Load returns the tables. The authorizer treats them as read-only.
func (s *inMemRoleSource) Load(ctx context.Context) (Tables, error) {
	return s.tables, nil
}

// fileSource reads tables from a YAML document on disk.
type fileSource struct {
	path string
}

// NewFileSource creates a role source backed by a YAML file of the form:
//
//	hierarchy:
//	  admin: [manager]
//	  manager: [user]
//	permissions:
//	  manager: [product:update]
//	  user: [product:read]
//
// The file is read on every Load call.
func NewFileSource(path string) RoleSource {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) (Tables, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Tables{}, errors.Join(ErrLoadTables, err)
	}
	return ParseTables(data)
}

// ParseTables decodes YAML role tables.
func ParseTables(data []byte) (Tables, error) {
	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return Tables{}, errors.Join(ErrLoadTables, fmt.Errorf("decode role tables: %w", err))
	}
	if tables.Hierarchy == nil {
		tables.Hierarchy = make(map[Role][]Role)
	}
	if tables.Permissions == nil {
		tables.Permissions = make(map[Role][]Permission)
	}
	return tables, nil
}
