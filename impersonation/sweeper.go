package impersonation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RunSweeper periodically removes expired sessions until the context is
// cancelled. It blocks; run it in its own goroutine. This bounds memory
// growth from abandoned sessions that are never validated again.
func RunSweeper(ctx context.Context, store Store, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := store.SweepExpired(); evicted > 0 {
				log.Debug().
					Int("evicted", evicted).
					Int("active", store.Count()).
					Msg("swept expired impersonation sessions")
			}
		}
	}
}
