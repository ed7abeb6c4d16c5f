// Package rbac resolves role based permissions for the task board API.
//
// Roles grant dotted permissions such as "projects.update", namespace
// wildcards such as "tasks.*", or "*". A role may inherit from other roles;
// NewAuthorizer flattens inheritance once and rejects cycles, chains deeper
// than MaxInheritanceDepth and references to undefined roles.
//
//	auth, err := rbac.NewAuthorizer(ctx, rbac.NewYAMLSource("roles.yaml"))
//	if err != nil {
//		return err
//	}
//	r.Use(rbac.Middleware(rbac.HeaderExtractor("X-Role")))
//
//	if err := auth.CanFromContext(ctx, rbac.PermProjectsCreate); err != nil {
//		return err
//	}
//
// Form requests use Allowed as their authorization gate.
package rbac
