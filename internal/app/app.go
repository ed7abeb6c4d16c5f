package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/taskboard/handler"
	"github.com/dmitrymomot/taskboard/internal/db"
	"github.com/dmitrymomot/taskboard/modules/project"
	"github.com/dmitrymomot/taskboard/modules/user"
	"github.com/dmitrymomot/taskboard/pkg/httpserver"
	"github.com/dmitrymomot/taskboard/pkg/pg"
	"github.com/dmitrymomot/taskboard/pkg/rbac"
	"github.com/dmitrymomot/taskboard/pkg/requestid"
	"github.com/dmitrymomot/taskboard/pkg/validator"
)

// Mountable is a module that serves a subtree of the API.
type Mountable interface {
	Handle() http.Handler
}

// App holds the wired HTTP handler and the resources it owns.
type App struct {
	handler http.Handler
	pool    *pgxpool.Pool
}

// New builds the application: roles, message catalog, validation engine,
// storage and routes. With the postgres backend it connects and migrates
// before returning.
func New(ctx context.Context, cfg Config, pgCfg pg.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	auth, err := rbac.NewAuthorizer(ctx, roleSource(cfg))
	if err != nil {
		return nil, errors.Join(ErrLoadRoles, err)
	}

	engine, err := newEngine(cfg, log)
	if err != nil {
		return nil, err
	}

	a := &App{}
	checks := map[string]httpserver.Check{}

	var (
		projects project.Storage
		users    user.Storage
	)
	switch cfg.Storage {
	case StorageMemory, "":
		projects, users = project.NewMemoryStorage(), user.NewMemoryStorage()
	case StoragePostgres:
		pool, err := pg.Connect(ctx, pgCfg, log)
		if err != nil {
			return nil, errors.Join(ErrStorage, err)
		}
		if err := pg.Migrate(ctx, pool, db.Migrations, db.MigrationsDir, pgCfg, log); err != nil {
			pool.Close()
			return nil, errors.Join(ErrStorage, err)
		}
		a.pool = pool
		checks["postgres"] = pg.Healthcheck(pool)
		projects, users = project.NewPGStorage(pool), user.NewPGStorage(pool)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, cfg.Storage)
	}

	modules := map[string]Mountable{
		"/projects": project.NewRouter(project.NewService(projects, log), engine, auth, log),
		"/users":    user.NewRouter(user.NewService(users, log), engine, auth, auth.Roles(), log),
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(rbac.Middleware(rbac.HeaderExtractor(cfg.RoleHeader)))

	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(log, cfg.ReadinessTimeout, checks))

	for path, m := range modules {
		r.Mount(path, m.Handle())
	}

	r.NotFound(errorRoute(handler.ErrNotFound))
	r.MethodNotAllowed(errorRoute(handler.ErrMethodNotAllowed))

	a.handler = r
	log.InfoContext(ctx, "application ready",
		slog.String("storage", cfg.Storage),
		slog.Any("roles", auth.Roles()),
	)
	return a, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func roleSource(cfg Config) rbac.RoleSource {
	if cfg.RolesFile != "" {
		return rbac.NewYAMLSource(cfg.RolesFile)
	}
	return rbac.NewMemorySource(rbac.DefaultRoles())
}

func newEngine(cfg Config, log *slog.Logger) (*validator.Engine, error) {
	opts := []validator.Option{validator.WithLogger(log)}
	if cfg.MessagesFile != "" {
		msgs, err := validator.LoadMessagesFile(cfg.MessagesFile)
		if err != nil {
			return nil, errors.Join(ErrLoadMessages, err)
		}
		opts = append(opts, validator.WithMessages(msgs))
	}
	if cfg.LooseChoice {
		opts = append(opts, validator.WithLooseChoice())
	}
	if cfg.StrictRules {
		opts = append(opts, validator.WithStrictRules())
	}
	return validator.New(opts...), nil
}

func errorRoute(err error) http.HandlerFunc {
	return handler.Wrap(func(handler.Context, struct{}) handler.Response {
		return handler.JSONError(err)
	})
}
