package ticker

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// Feed drives the simulated market: every interval it perturbs the ticker
// values. It owns no goroutine itself; the caller runs Start and cancels the
// context to stop it, so the loop can never outlive the dashboard.
type Feed struct {
	service  *Service
	interval time.Duration
	rng      *rand.Rand
}

// NewFeed creates a feed ticking at the given interval.
func NewFeed(service *Service, interval time.Duration) *Feed {
	return &Feed{
		service:  service,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins the update loop and blocks until the context is cancelled.
// The interval timer is stopped on the way out.
func (f *Feed) Start(ctx context.Context) {
	logger := log.With().Str("component", "ticker_feed").Logger()
	logger.Info().Dur("interval", f.interval).Msg("starting ticker feed")

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down ticker feed")
			return
		case <-ticker.C:
			f.service.Tick(f.rng)
			logger.Debug().Msg("published ticker update")
		}
	}
}
