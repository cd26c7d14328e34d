package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() *Config {
	return &Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Jitter:        time.Millisecond,
	}
}

type throttled struct{ after time.Duration }

func (e throttled) Error() string             { return "http 429" }
func (e throttled) RetryAfter() time.Duration { return e.after }

func TestRetry_Attempts(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		wantCalls int
		wantErr   bool
	}{
		{"success on first try", 0, 1, false},
		{"success after retries", 2, 3, false},
		{"max retries exceeded", 5, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := NewRetrier(fastConfig()).Do(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return errors.New("http 503")
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				assert.EqualError(t, err, "http 503")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	err := NewRetrier(NewCatalogConfig()).Do(ctx, func() error {
		cancel()
		return errors.New("operation error after cancel")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetry_Backoff(t *testing.T) {
	config := &Config{
		MaxRetries:    2,
		BackoffFactor: 2.0,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		Jitter:        50 * time.Millisecond,
	}

	start := time.Now()
	_ = NewRetrier(config).Do(context.Background(), func() error { return errors.New("error") })
	elapsed := time.Since(start)

	// 100ms then 200ms, each plus up to 50ms jitter.
	assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestRetry_PermanentStopsImmediately(t *testing.T) {
	expected := errors.New("http 401")
	calls := 0

	err := NewRetrier(NewCatalogConfig()).Do(context.Background(), func() error {
		calls++
		return Permanent(expected)
	})

	assert.Same(t, expected, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_DelayerOverridesBackoff(t *testing.T) {
	r := NewRetrier(&Config{MaxRetries: 1, InitialDelay: time.Second, MaxDelay: time.Second})

	start := time.Now()
	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return throttled{after: 10 * time.Millisecond}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRetry_DelayerIsCapped(t *testing.T) {
	r := NewRetrier(fastConfig())
	assert.Equal(t, 5*time.Millisecond, r.wait(throttled{after: time.Minute}, time.Millisecond, nil))
}
