package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

type Operation = func() error

// permanentError stops Do from retrying.
type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying. Do returns the unwrapped error.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Delayer is implemented by errors that carry a server supplied wait,
// such as an HTTP 429 with Retry-After. The wait replaces the backoff delay
// but is still capped by MaxDelay.
type Delayer interface {
	RetryAfter() time.Duration
}

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

// NewCatalogConfig is tuned for short upstream API calls: two retries, capped backoff.
func NewCatalogConfig() *Config {
	return &Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  200 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		Jitter:        50 * time.Millisecond,
	}
}

type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{
		config: config,
	}
}

func (r *Retrier) Do(ctx context.Context, op Operation) error {
	var err error
	delay := r.config.InitialDelay
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		if attempt == r.config.MaxRetries {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.wait(err, delay, rnd)):
		}

		delay = time.Duration(float64(delay) * r.config.BackoffFactor)
		if delay > r.config.MaxDelay {
			delay = r.config.MaxDelay
		}
	}
	return err
}

func (r *Retrier) wait(err error, delay time.Duration, rnd *rand.Rand) time.Duration {
	var d Delayer
	if errors.As(err, &d) && d.RetryAfter() > 0 {
		return min(d.RetryAfter(), r.config.MaxDelay)
	}

	jitter := time.Duration(rnd.Float64() * float64(r.config.Jitter))
	next := delay + jitter
	if next > r.config.MaxDelay {
		next = r.config.MaxDelay + jitter
	}
	return next
}
