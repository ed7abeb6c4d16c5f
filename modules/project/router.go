package project

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/taskboard/binder"
	"github.com/dmitrymomot/taskboard/handler"
	"github.com/dmitrymomot/taskboard/pkg/rbac"
	"github.com/dmitrymomot/taskboard/pkg/validator"
)

// Router exposes projects and their tasks, sprints and milestones over HTTP.
// Mount it at /projects.
type Router struct {
	svc          *Service
	engine       *validator.Engine
	gate         Gate
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewRouter(svc *Service, engine *validator.Engine, gate Gate, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		svc:          svc,
		engine:       engine,
		gate:         gate,
		errorHandler: handler.NewErrorHandler[handler.Context](log),
	}
}

func (rt *Router) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/", rt.write(rt.createProject))
	r.Get("/", rt.read(rt.listProjects))

	r.Route("/{projectID}", func(r chi.Router) {
		r.Get("/", rt.read(rt.getProject))
		r.Patch("/", rt.write(rt.updateProject))
		r.Delete("/", rt.read(rt.deleteProject))

		r.Post("/tasks", rt.write(rt.createTask))
		r.Get("/tasks", rt.read(rt.listTasks))
		r.Patch("/tasks/{taskID}", rt.write(rt.updateTask))

		r.Post("/sprints", rt.write(rt.createSprint))
		r.Get("/sprints", rt.read(rt.listSprints))

		r.Post("/milestones", rt.write(rt.createMilestone))
		r.Get("/milestones", rt.read(rt.listMilestones))
	})

	return r
}

// write wraps a handler that takes a request body.
func (rt *Router) write(h handler.HandlerFunc[handler.Context, validator.Input]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, validator.Input](binder.Input()),
		handler.WithErrorHandler[handler.Context, validator.Input](rt.errorHandler),
	)
}

// read wraps a handler that ignores the request body.
func (rt *Router) read(h handler.HandlerFunc[handler.Context, validator.Input]) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithErrorHandler[handler.Context, validator.Input](rt.errorHandler),
	)
}

func (rt *Router) fail(ctx handler.Context, err error) handler.Response {
	if errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrTaskNotFound) {
		err = errors.Join(handler.ErrNotFound, err)
	}
	return handler.Fail(rt.errorHandler, ctx, err)
}

func (rt *Router) allow(ctx handler.Context, permission string) error {
	if !rt.gate.Allowed(ctx, permission) {
		return rbac.ErrInsufficientPermissions
	}
	return nil
}

func (rt *Router) createProject(ctx handler.Context, in validator.Input) handler.Response {
	data, err := rt.engine.ValidateRequest(ctx, CreateProjectRequest{gate: rt.gate}, in)
	if err != nil {
		return rt.fail(ctx, err)
	}
	p, err := rt.svc.CreateProject(ctx, data)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(p, handler.WithJSONStatus(http.StatusCreated))
}

func (rt *Router) listProjects(ctx handler.Context, _ validator.Input) handler.Response {
	if err := rt.allow(ctx, rbac.PermProjectsRead); err != nil {
		return rt.fail(ctx, err)
	}
	projects, err := rt.svc.ListProjects(ctx)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(projects, handler.WithJSONMeta(map[string]any{"total": len(projects)}))
}

func (rt *Router) getProject(ctx handler.Context, _ validator.Input) handler.Response {
	if err := rt.allow(ctx, rbac.PermProjectsRead); err != nil {
		return rt.fail(ctx, err)
	}
	id, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	p, err := rt.svc.GetProject(ctx, id)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(p)
}

func (rt *Router) updateProject(ctx handler.Context, in validator.Input) handler.Response {
	id, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	data, err := rt.engine.ValidateRequest(ctx, UpdateProjectRequest{gate: rt.gate}, in)
	if err != nil {
		return rt.fail(ctx, err)
	}
	p, err := rt.svc.UpdateProject(ctx, id, data)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(p)
}

func (rt *Router) deleteProject(ctx handler.Context, _ validator.Input) handler.Response {
	if err := rt.allow(ctx, rbac.PermProjectsDelete); err != nil {
		return rt.fail(ctx, err)
	}
	id, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	if err := rt.svc.DeleteProject(ctx, id); err != nil {
		return rt.fail(ctx, err)
	}
	return handler.NoContent()
}

func (rt *Router) createTask(ctx handler.Context, in validator.Input) handler.Response {
	projectID, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	data, err := rt.engine.ValidateRequest(ctx, CreateTaskRequest{gate: rt.gate}, in)
	if err != nil {
		return rt.fail(ctx, err)
	}
	t, err := rt.svc.CreateTask(ctx, projectID, data)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(t, handler.WithJSONStatus(http.StatusCreated))
}

func (rt *Router) listTasks(ctx handler.Context, _ validator.Input) handler.Response {
	if err := rt.allow(ctx, rbac.PermTasksRead); err != nil {
		return rt.fail(ctx, err)
	}
	projectID, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	tasks, err := rt.svc.ListTasks(ctx, projectID)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(tasks, handler.WithJSONMeta(map[string]any{"total": len(tasks)}))
}

func (rt *Router) updateTask(ctx handler.Context, in validator.Input) handler.Response {
	projectID, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	taskID, err := ctx.ParamInt64("taskID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	data, err := rt.engine.ValidateRequest(ctx, UpdateTaskRequest{gate: rt.gate}, in)
	if err != nil {
		return rt.fail(ctx, err)
	}
	t, err := rt.svc.UpdateTask(ctx, projectID, taskID, data)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(t)
}

func (rt *Router) createSprint(ctx handler.Context, in validator.Input) handler.Response {
	projectID, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	data, err := rt.engine.ValidateRequest(ctx, CreateSprintRequest{gate: rt.gate}, in)
	if err != nil {
		return rt.fail(ctx, err)
	}
	sp, err := rt.svc.CreateSprint(ctx, projectID, data)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(sp, handler.WithJSONStatus(http.StatusCreated))
}

func (rt *Router) listSprints(ctx handler.Context, _ validator.Input) handler.Response {
	if err := rt.allow(ctx, rbac.PermProjectsRead); err != nil {
		return rt.fail(ctx, err)
	}
	projectID, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	sprints, err := rt.svc.ListSprints(ctx, projectID)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(sprints, handler.WithJSONMeta(map[string]any{"total": len(sprints)}))
}

func (rt *Router) createMilestone(ctx handler.Context, in validator.Input) handler.Response {
	projectID, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	data, err := rt.engine.ValidateRequest(ctx, CreateMilestoneRequest{gate: rt.gate}, in)
	if err != nil {
		return rt.fail(ctx, err)
	}
	m, err := rt.svc.CreateMilestone(ctx, projectID, data)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(m, handler.WithJSONStatus(http.StatusCreated))
}

func (rt *Router) listMilestones(ctx handler.Context, _ validator.Input) handler.Response {
	if err := rt.allow(ctx, rbac.PermProjectsRead); err != nil {
		return rt.fail(ctx, err)
	}
	projectID, err := ctx.ParamInt64("projectID")
	if err != nil {
		return rt.fail(ctx, err)
	}
	milestones, err := rt.svc.ListMilestones(ctx, projectID)
	if err != nil {
		return rt.fail(ctx, err)
	}
	return handler.JSON(milestones, handler.WithJSONMeta(map[string]any{"total": len(milestones)}))
}
