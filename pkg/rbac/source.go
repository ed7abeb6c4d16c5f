package rbac

import (
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// MemorySource serves a fixed role table.
type MemorySource struct {
	roles map[string]Role
}

// NewMemorySource copies roles so later changes to the argument are not
// observed.
func NewMemorySource(roles map[string]Role) *MemorySource {
	cp := make(map[string]Role, len(roles))
	for name, r := range roles {
		cp[name] = Role{
			Permissions: slices.Clone(r.Permissions),
			Inherits:    slices.Clone(r.Inherits),
		}
	}
	return &MemorySource{roles: cp}
}

func (s *MemorySource) Load(context.Context) (map[string]Role, error) {
	return maps.Clone(s.roles), nil
}

// YAMLSource reads a role table keyed by role name:
//
//	viewer:
//	  permissions: [projects.read, tasks.read]
//	member:
//	  permissions: [tasks.create]
//	  inherits: [viewer]
type YAMLSource struct {
	open func() (io.ReadCloser, error)
}

// NewYAMLSource reads roles from the file at path on every Load.
func NewYAMLSource(path string) *YAMLSource {
	return &YAMLSource{open: func() (io.ReadCloser, error) { return os.Open(path) }}
}

// NewYAMLReaderSource reads roles once from r.
func NewYAMLReaderSource(r io.Reader) *YAMLSource {
	return &YAMLSource{open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil }}
}

func (s *YAMLSource) Load(context.Context) (map[string]Role, error) {
	rc, err := s.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	roles := map[string]Role{}
	if err := yaml.NewDecoder(rc).Decode(&roles); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return roles, nil
}
