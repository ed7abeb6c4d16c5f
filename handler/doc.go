// Package handler adapts typed handler functions to net/http and renders
// JSON responses for the task board API.
//
// A HandlerFunc receives a Context and a bound request value and returns a
// Response. Wrap applies binders, decorators and an ErrorHandler:
//
//	list := func(ctx handler.Context, in validator.Input) handler.Response {
//		projects, err := svc.List(ctx)
//		if err != nil {
//			return handler.Fail(onError, ctx, err)
//		}
//		return handler.JSON(projects)
//	}
//	r.Get("/projects", handler.Wrap(list,
//		handler.WithBinders[handler.Context, validator.Input](binder.Input()),
//		handler.WithErrorHandler[handler.Context, validator.Input](onError),
//	))
//
// Classify maps errors onto responses: validator.ValidationErrors become
// 422 with per-field details, failed authorization gates and RBAC checks
// 403, binder errors 400, 413 or 415, HTTPError values their own code, and
// everything else an opaque 500.
package handler
