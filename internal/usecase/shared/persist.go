package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"prize-wheel/internal/pkg/errs"
)

type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// temporary is implemented by storage errors that know whether a retry can
// help.
type temporary interface {
	Temporary() bool
}

// SaveWithRetry writes a change, retrying with exponential backoff. Errors
// that report Temporary() == false are not retried. The returned error is
// marked ErrPersistenceFailure.
func SaveWithRetry(ctx context.Context, repo StateRepository, change StateChange, policy RetryPolicy, logger *slog.Logger) error {
	maxRetries := max(policy.MaxRetries, 0)

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = repo.Save(ctx, change)
		if err == nil {
			return nil
		}

		var t temporary
		if errors.As(err, &t) && !t.Temporary() {
			logger.Error("state write failed permanently", "attempt", attempt+1, "error", err.Error())
			return errs.Mark(errs.Wrap(err, "save promotions state"), errs.ErrPersistenceFailure)
		}
		if attempt == maxRetries {
			break
		}

		waitTime := calculateBackoff(attempt, policy.BaseDelay)
		logger.Warn("retrying state write",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return errs.Mark(ctx.Err(), errs.ErrPersistenceFailure)
		case <-time.After(waitTime):
		}
	}

	logger.Error("state write failed after max retries",
		"attempts", maxRetries+1,
		"error", err.Error())
	return errs.Mark(errs.Wrap(err, "save promotions state"), errs.ErrPersistenceFailure)
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}
