// Package httpserver runs the API's http.Server with graceful shutdown and
// exposes liveness and readiness handlers.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled, on SIGINT or SIGTERM, or when the
// listener fails. Shutdown may also be called from another goroutine.
package httpserver
