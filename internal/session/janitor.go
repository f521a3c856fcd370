package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SweepFunc observes the result of a background sweep.
type SweepFunc func(removed int)

// RunJanitor sweeps store every interval until ctx is cancelled.
// A non-positive interval disables it.
func RunJanitor(ctx context.Context, store Store, interval time.Duration, logger *zap.Logger, onSweep SweepFunc) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := store.Sweep(ctx, now)
			if err != nil {
				logger.Warn("session sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("session sweep", zap.Int("removed", removed))
			}
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}
