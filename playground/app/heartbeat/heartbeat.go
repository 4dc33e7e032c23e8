// Package heartbeat provides a Runnable logging a pulse at a fixed
// interval, so the playground has something long running to drive.
package heartbeat

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Heartbeat logs a pulse at a fixed interval until its context is done.
type Heartbeat struct {
	interval time.Duration
	logger   zerolog.Logger
}

func New(interval time.Duration, logger zerolog.Logger) *Heartbeat {
	return &Heartbeat{interval: interval, logger: logger}
}

func (h *Heartbeat) Run(ctx context.Context) error {
	h.logger.Info().Dur("interval", h.interval).Msg("heartbeat started")
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Msg("heartbeat stopped")
			return ctx.Err()
		case <-ticker.C:
			h.logger.Info().Msg("💓 still alive")
		}
	}
}
