package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/taskboard/pkg/logger"
)

// NewErrorHandler returns an ErrorHandler that logs err, at WARN for client
// errors and ERROR otherwise, then renders the JSON error envelope.
func NewErrorHandler[C Context](log *slog.Logger) ErrorHandler[C] {
	return func(ctx C, err error) {
		resp := JSONError(err)
		status, _ := Classify(err)

		r := ctx.Request()
		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(ctx, level, "request error",
			logger.Component("http"),
			logger.Error(err),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(ctx, "render error response", logger.Error(renderErr))
		}
	}
}

// Fail reports err through h and returns a Response that writes nothing
// further. Use it inside a HandlerFunc so errors are logged the same way
// as bind errors.
func Fail[C Context](h ErrorHandler[C], ctx C, err error) Response {
	h(ctx, err)
	return handled{}
}

// handled is a Response whose body has already been written.
type handled struct{}

func (handled) Render(http.ResponseWriter, *http.Request) error { return nil }
