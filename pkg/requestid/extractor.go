package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/taskboard/pkg/logger"
)

// LoggerExtractor adds request_id to log records whose context carries one.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
}
