package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These exercise the retry wrapper in isolation from any real SQLite
// connection: concurrent `tourplan seed` runs against the same WAL
// database are what actually trigger SQLITE_BUSY/LOCKED/short-read, but
// that contention is slow and flaky to reproduce on demand, so the
// transient-error classifier and the backoff loop are tested here with
// synthetic errors instead.

func TestIsTransientSQLiteErr(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil error":              {nil, false},
		"unrelated syntax error": {errors.New("syntax error"), false},
		"SQLITE_BUSY text":       {errors.New("SQLITE_BUSY"), true},
		"SQLITE_LOCKED text":     {errors.New("SQLITE_LOCKED"), true},
		"IOERR_SHORT_READ text":  {errors.New("IOERR_SHORT_READ"), true},
		"database is locked":     {errors.New("database is locked"), true},
		"table is locked":        {errors.New("database table is locked"), true},
		"busy error code":        {errors.New("sqlite: (5) database is busy"), true},
		"locked error code":      {errors.New("sqlite: (6) table is locked"), true},
		"short-read error code":  {errors.New("sqlite: (522) short read"), true},
		"busy wrapped by driver": {errors.New("exec: SQLITE_BUSY: db locked"), true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, isTransientSQLiteErr(tc.err))
		})
	}
}

func TestRetryOp_SuccessOnFirstCall(t *testing.T) {
	calls := 0
	err := retryOp(defaultRetryConfig, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryOp_PermanentErrorSkipsRetry(t *testing.T) {
	calls := 0
	permanent := errors.New("UNIQUE constraint failed: tournaments.id")
	err := retryOp(defaultRetryConfig, func() error {
		calls++
		return permanent
	})
	assert.Same(t, permanent, err)
	assert.Equal(t, 1, calls, "a non-transient error must not be retried")
}

func TestRetryOp_RecoversAfterTransientContention(t *testing.T) {
	cfg := retryConfig{maxRetries: 3, baseDelay: time.Millisecond, maxDelay: 10 * time.Millisecond}
	calls := 0
	err := retryOp(cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("SQLITE_BUSY")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOp_RecoversFromShortRead(t *testing.T) {
	cfg := retryConfig{maxRetries: 2, baseDelay: time.Millisecond, maxDelay: 5 * time.Millisecond}
	calls := 0
	err := retryOp(cfg, func() error {
		calls++
		if calls < 2 {
			return errors.New("(522) IOERR_SHORT_READ")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryOp_ExhaustsConfiguredRetries(t *testing.T) {
	cfg := retryConfig{maxRetries: 2, baseDelay: time.Millisecond, maxDelay: 5 * time.Millisecond}
	calls := 0
	err := retryOp(cfg, func() error {
		calls++
		return errors.New("SQLITE_BUSY")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls, "1 initial attempt + maxRetries retries")
}

func TestRetryOp_ZeroRetriesIsOneAttempt(t *testing.T) {
	cfg := retryConfig{maxRetries: 0, baseDelay: time.Millisecond, maxDelay: time.Millisecond}
	calls := 0
	err := retryOp(cfg, func() error {
		calls++
		return errors.New("SQLITE_BUSY")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestBackoffDelay_GrowsExponentiallyWithinWindow(t *testing.T) {
	cfg := retryConfig{baseDelay: 50 * time.Millisecond, maxDelay: 500 * time.Millisecond}

	bounds := []struct {
		attempt  int
		min, max time.Duration
	}{
		{0, 50 * time.Millisecond, 100 * time.Millisecond},
		{1, 100 * time.Millisecond, 150 * time.Millisecond},
		{2, 200 * time.Millisecond, 250 * time.Millisecond},
	}
	for _, b := range bounds {
		d := backoffDelay(cfg, b.attempt)
		assert.GreaterOrEqualf(t, d, b.min, "attempt %d delay too small", b.attempt)
		assert.Lessf(t, d, b.max, "attempt %d delay too large", b.attempt)
	}
}

func TestBackoffDelay_CapsAtMaxDelay(t *testing.T) {
	cfg := retryConfig{baseDelay: 100 * time.Millisecond, maxDelay: 200 * time.Millisecond}
	// 100ms * 2^5 = 3200ms, far past maxDelay; must be capped plus jitter.
	d := backoffDelay(cfg, 5)
	assert.Less(t, d, 300*time.Millisecond)
}
