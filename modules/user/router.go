package user

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

// Router serves /users. Mount it at /users.
type Router struct {
	svc          *Service
	engine       *validator.Engine
	gate         Gate
	createRules  validator.RuleSet
	errorHandler handler.ErrorHandler[handler.Context]
}

// NewRouter limits the role of new users to roles.
func NewRouter(svc *Service, engine *validator.Engine, gate Gate, roles []string, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		svc:          svc,
		engine:       engine,
		gate:         gate,
		createRules:  createUserRules(roles),
		errorHandler: handler.NewErrorHandler[handler.Context](log),
	}
}

func (rt *Router) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/", handler.Wrap(rt.create,
		handler.WithBinders[handler.Context, validator.Input](binder.Input()),
		handler.WithErrorHandler[handler.Context, validator.Input](rt.errorHandler),
	))
	r.Get("/", handler.Wrap(rt.list,
		handler.WithErrorHandler[handler.Context, validator.Input](rt.errorHandler),
	))
	return r
}

func (rt *Router) create(ctx handler.Context, in validator.Input) handler.Response {
	data, err := rt.engine.ValidateRequest(ctx, CreateUserRequest{gate: rt.gate, rules: rt.createRules}, in)
	if err != nil {
		return handler.Fail(rt.errorHandler, ctx, err)
	}
	u, err := rt.svc.Create(ctx, data)
	if errors.Is(err, ErrEmailTaken) {
		err = errors.Join(handler.ErrConflict, err)
	}
	if err != nil {
		return handler.Fail(rt.errorHandler, ctx, err)
	}
	return handler.JSON(u, handler.WithJSONStatus(http.StatusCreated))
}

func (rt *Router) list(ctx handler.Context, _ validator.Input) handler.Response {
	if !rt.gate.Allowed(ctx, rbac.PermUsersRead) {
		return handler.Fail(rt.errorHandler, ctx, rbac.ErrInsufficientPermissions)
	}
	users, err := rt.svc.List(ctx)
	if err != nil {
		return handler.Fail(rt.errorHandler, ctx, err)
	}
	return handler.JSON(users, handler.WithJSONMeta(map[string]any{"total": len(users)}))
}
