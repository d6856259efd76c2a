package service

import (
	"context"
	"log/slog"

	"github.com/xanke/disney-sns/internal/middleware"
	"github.com/xanke/disney-sns/internal/observability"
)

// bestEffort runs a non-critical step. A failure is logged and counted, then
// dropped: the caller's primary result is unaffected. It reports success.
func bestEffort(ctx context.Context, operation string, fn func() error) bool {
	err := fn()
	if err == nil {
		return true
	}
	observability.SideEffectFailures.WithLabelValues(operation).Inc()
	middleware.Logger.WarnContext(ctx, "best-effort operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	return false
}
