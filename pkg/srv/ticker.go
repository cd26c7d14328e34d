package srv

import (
	"context"
	"time"

	"github.com/sandevgo/cinebot/pkg/log"
)

// tickerService runs job every interval until its context is cancelled.
type tickerService struct {
	name     string
	interval time.Duration
	job      func(ctx context.Context) error
	done     chan struct{}
}

// NewTicker wraps a periodic background job as a Service. Job errors are
// logged and the next tick runs as usual.
func NewTicker(name string, interval time.Duration, job func(ctx context.Context) error) Service {
	return &tickerService{
		name:     name,
		interval: interval,
		job:      job,
		done:     make(chan struct{}),
	}
}

func (t *tickerService) Start(ctx context.Context) error {
	defer close(t.done)
	logger := log.FromCtx(ctx).With().Str("job", t.name).Logger()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := t.job(ctx); err != nil {
				logger.Error().Err(err).Msg("background job failed")
			}
		}
	}
}

// Shutdown waits for a running job to return.
func (t *tickerService) Shutdown(ctx context.Context) error {
	select {
	case <-t.done:
	case <-time.After(5 * time.Second):
	}
	return nil
}
