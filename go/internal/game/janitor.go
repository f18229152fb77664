package game

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Janitor periodically runs the expired-session sweep. Expiry is lazy and
// never depends on the janitor running; this is an operational nicety that
// keeps long-abandoned sessions from lingering in the active state.
type Janitor struct {
	app      *App
	clock    clockwork.Clock
	interval time.Duration
}

// NewJanitor creates a janitor that sweeps every interval.
func NewJanitor(app *App, clock clockwork.Clock, interval time.Duration) *Janitor {
	return &Janitor{
		app:      app,
		clock:    clock,
		interval: interval,
	}
}

// Run blocks, sweeping on every tick until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := j.clock.NewTicker(j.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", j.interval).Msg("session janitor started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("session janitor stopped")
			return
		case <-ticker.Chan():
			if cleaned := j.app.CleanupExpiredSessions(); cleaned > 0 {
				log.Info().Int("cleaned", cleaned).Msg("janitor swept expired sessions")
			}
		}
	}
}
