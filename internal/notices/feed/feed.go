// Package feed mirrors created notices to an external sink so other portal
// processes can show the same toasts.
package feed

import (
	"context"
	"log/slog"

	"portal/internal/notices"
	"portal/internal/state"
)

// Feed stores published notices, newest last.
type Feed interface {
	Publish(ctx context.Context, n notices.Notice) error
	Recent(ctx context.Context, limit int) ([]notices.Notice, error)
}

// Handler returns a store handler that publishes every created notice to f.
// Publish failures are logged and never affect the notices slice.
func Handler(f Feed, logger *slog.Logger) state.Handler {
	return state.HandlerFunc(func(ctx context.Context, action state.Action, _ state.Dispatcher) {
		created, ok := action.(notices.CreateAction)
		if !ok {
			return
		}
		if err := f.Publish(ctx, created.Notice); err != nil && logger != nil {
			logger.WarnContext(ctx, "failed to publish notice",
				"notice_id", created.Notice.ID,
				"error", err,
			)
		}
	})
}
