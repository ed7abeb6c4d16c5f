package rbac

import "strings"

// MaxInheritanceDepth bounds how many Inherits hops a role chain may take.
const MaxInheritanceDepth = 10

// Permissions checked by the task board.
const (
	PermProjectsCreate = "projects.create"
	PermProjectsRead   = "projects.read"
	PermProjectsUpdate = "projects.update"
	PermProjectsDelete = "projects.delete"

	PermTasksCreate = "tasks.create"
	PermTasksRead   = "tasks.read"
	PermTasksUpdate = "tasks.update"

	PermSprintsManage    = "sprints.manage"
	PermMilestonesManage = "milestones.manage"

	PermUsersCreate = "users.create"
	PermUsersRead   = "users.read"
)

// Role grants permissions directly and through the roles it inherits.
// Permissions may end in ".*" to cover a namespace, or be "*" for all.
type Role struct {
	Permissions []string `yaml:"permissions"`
	Inherits    []string `yaml:"inherits"`
}

// DefaultRoles is the role table used when no roles file is configured.
func DefaultRoles() map[string]Role {
	return map[string]Role{
		"viewer": {
			Permissions: []string{PermProjectsRead, PermTasksRead},
		},
		"member": {
			Permissions: []string{PermTasksCreate, PermTasksUpdate},
			Inherits:    []string{"viewer"},
		},
		"manager": {
			Permissions: []string{
				PermProjectsCreate, PermProjectsUpdate,
				PermSprintsManage, PermMilestonesManage, PermUsersRead,
			},
			Inherits: []string{"member"},
		},
		"admin": {
			Permissions: []string{"*"},
		},
	}
}

// matches reports whether granted covers permission.
func matches(granted, permission string) bool {
	if permission == "" {
		return false
	}
	if granted == "*" || granted == permission {
		return true
	}
	if prefix, ok := strings.CutSuffix(granted, ".*"); ok {
		return strings.HasPrefix(permission, prefix+".")
	}
	return false
}

func covers(granted []string, permission string) bool {
	for _, g := range granted {
		if matches(g, permission) {
			return true
		}
	}
	return false
}
