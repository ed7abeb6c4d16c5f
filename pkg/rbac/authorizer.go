package rbac

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// RoleSource supplies the role table.
type RoleSource interface {
	Load(ctx context.Context) (map[string]Role, error)
}

// Authorizer answers permission checks against a role table whose
// inheritance has been flattened at construction. It is read-only after
// NewAuthorizer and safe for concurrent use.
type Authorizer struct {
	granted map[string][]string
	order   []string
}

// NewAuthorizer loads roles from source and resolves inheritance. It fails
// with ErrCircularInheritance on cycles or chains deeper than
// MaxInheritanceDepth, and with ErrUnknownParentRole when a role inherits
// from a role that does not exist.
func NewAuthorizer(ctx context.Context, source RoleSource) (*Authorizer, error) {
	roles, err := source.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrLoadRoles, err)
	}

	depths := make(map[string]int, len(roles))
	for name := range roles {
		if _, err := depthOf(name, roles, depths, nil); err != nil {
			return nil, err
		}
	}

	a := &Authorizer{granted: make(map[string][]string, len(roles))}
	for name := range roles {
		a.granted[name] = flatten(name, roles)
		a.order = append(a.order, name)
	}
	slices.SortFunc(a.order, func(x, y string) int {
		if d := depths[x] - depths[y]; d != 0 {
			return d
		}
		if x < y {
			return -1
		}
		if x > y {
			return 1
		}
		return 0
	})
	return a, nil
}

// depthOf returns the inheritance depth of name, detecting cycles through
// path.
func depthOf(name string, roles map[string]Role, depths map[string]int, path []string) (int, error) {
	if d, ok := depths[name]; ok {
		return d, nil
	}
	if slices.Contains(path, name) {
		return 0, errors.Join(ErrCircularInheritance,
			fmt.Errorf("%v -> %s", path, name))
	}
	role, ok := roles[name]
	if !ok {
		return 0, errors.Join(ErrUnknownParentRole, fmt.Errorf("role %q", name))
	}

	path = append(path, name)
	depth := 0
	for _, parent := range role.Inherits {
		d, err := depthOf(parent, roles, depths, path)
		if err != nil {
			return 0, err
		}
		depth = max(depth, d+1)
	}
	if depth > MaxInheritanceDepth {
		return 0, errors.Join(ErrCircularInheritance,
			fmt.Errorf("role %q exceeds inheritance depth %d", name, MaxInheritanceDepth))
	}
	depths[name] = depth
	return depth, nil
}

// flatten collects the direct and inherited permissions of name, sorted
// and deduplicated. Inheritance has already been checked for cycles.
func flatten(name string, roles map[string]Role) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(string)
	walk = func(n string) {
		if seen[n] {
			return
		}
		seen[n] = true
		role := roles[n]
		out = append(out, role.Permissions...)
		for _, parent := range role.Inherits {
			walk(parent)
		}
	}
	walk(name)
	slices.Sort(out)
	return slices.Compact(out)
}

// Can returns nil when role holds permission, ErrInvalidRole for unknown
// roles and ErrInsufficientPermissions otherwise.
func (a *Authorizer) Can(role, permission string) error {
	granted, ok := a.granted[role]
	if !ok {
		return ErrInvalidRole
	}
	if !covers(granted, permission) {
		return ErrInsufficientPermissions
	}
	return nil
}

// CanAny succeeds when role holds at least one of permissions. An empty
// list succeeds.
func (a *Authorizer) CanAny(role string, permissions ...string) error {
	if len(permissions) == 0 {
		return nil
	}
	granted, ok := a.granted[role]
	if !ok {
		return ErrInvalidRole
	}
	for _, p := range permissions {
		if covers(granted, p) {
			return nil
		}
	}
	return ErrInsufficientPermissions
}

// CanFromContext checks the role stored by WithRole.
func (a *Authorizer) CanFromContext(ctx context.Context, permission string) error {
	role, ok := RoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrRoleNotInContext, ErrInsufficientPermissions)
	}
	return a.Can(role, permission)
}

// Allowed is CanFromContext as a boolean, for authorization gates.
func (a *Authorizer) Allowed(ctx context.Context, permission string) bool {
	return a.CanFromContext(ctx, permission) == nil
}

// HasRole reports whether role is defined.
func (a *Authorizer) HasRole(role string) bool {
	_, ok := a.granted[role]
	return ok
}

// Roles lists role names, base roles first.
func (a *Authorizer) Roles() []string {
	return slices.Clone(a.order)
}

// Permissions returns the flattened permissions of role.
func (a *Authorizer) Permissions(role string) []string {
	return slices.Clone(a.granted[role])
}
