// Package logger provides a context-aware wrapper around Go's slog package
// with functional options and helper attribute constructors.
//
// New builds a *slog.Logger whose handler is either slog.NewTextHandler or
// slog.NewJSONHandler, wrapped by LogHandlerDecorator so that registered
// ContextExtractor callbacks (for example the request id extractor from
// pkg/requestid) add attributes on every record.
//
// Helper constructors such as Error, RequestID, ProjectID, Field and Rule
// keep attribute keys consistent across the codebase.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "taskboard"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "project created",
//		logger.ProjectID(p.ID),
//		logger.Duration(time.Since(start)),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
