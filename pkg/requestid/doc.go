// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware accepts a client supplied X-Request-ID when it is 1 to 128
// characters of letters, digits, '-' or '_', and otherwise generates a UUID.
// The ID is stored in the request context (FromContext) and echoed in the
// response header. LoggerExtractor feeds it into structured logs:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
