package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/taskboard/internal/app"
	"github.com/dmitrymomot/taskboard/pkg/config"
	"github.com/dmitrymomot/taskboard/pkg/httpserver"
	"github.com/dmitrymomot/taskboard/pkg/logger"
	"github.com/dmitrymomot/taskboard/pkg/pg"
	"github.com/dmitrymomot/taskboard/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg  app.Config
		httpCfg httpserver.Config
		pgCfg   pg.Config
	)
	if err := config.Load(&appCfg); err != nil {
		return err
	}
	if err := config.Load(&httpCfg); err != nil {
		return err
	}
	if err := config.Load(&pgCfg); err != nil {
		return err
	}

	log, err := newLogger(appCfg)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	a, err := app.New(ctx, appCfg, pgCfg, log)
	if err != nil {
		log.ErrorContext(ctx, "startup failed", logger.Error(err))
		return err
	}
	defer a.Close()

	srv := httpserver.New(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, a.Handler())
}

// newLogger applies the APP_ENV preset, then explicit LOG_LEVEL and
// LOG_FORMAT overrides.
func newLogger(cfg app.Config) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if cfg.LogFormat != "" {
		format := logger.Format(cfg.LogFormat)
		if format != logger.FormatJSON && format != logger.FormatText {
			return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
		}
		opts = append(opts, logger.WithFormat(format))
	}
	return logger.New(opts...), nil
}
