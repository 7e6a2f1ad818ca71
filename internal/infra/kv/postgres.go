package kv

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"prize-wheel/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxTxRetries = 3
	txRetryBase  = 50 * time.Millisecond
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// PostgresStore keeps entries in the promotion_state table, one row per
// (namespace, key).
type PostgresStore struct {
	pool      *pgxpool.Pool
	namespace string
	logger    *slog.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, namespace string, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, namespace: namespace, logger: logger}
}

func (s *PostgresStore) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT key, value FROM promotion_state WHERE namespace = $1 AND key = ANY($2)`,
		s.namespace, keys)
	if err != nil {
		return nil, errs.Wrap(err, "query promotion_state")
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, errs.Wrap(err, "scan promotion_state")
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(err, "iterate promotion_state")
	}
	return out, nil
}

func (s *PostgresStore) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	return s.withinTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for k, v := range entries {
			batch.Queue(`
				INSERT INTO promotion_state (namespace, key, value, updated_at)
				VALUES ($1, $2, $3, now())
				ON CONFLICT (namespace, key)
				DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
				s.namespace, k, v)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`DELETE FROM promotion_state WHERE namespace = $1 AND key = ANY($2)`,
		s.namespace, keys)
	if err != nil {
		return errs.Wrap(err, "delete promotion_state")
	}
	return nil
}

// Close is a no-op; the pool belongs to the caller.
func (s *PostgresStore) Close(context.Context) error { return nil }

// Avoids defer accumulation in retry loops to prevent connection leaks
func (s *PostgresStore) withinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	for attempt := 0; attempt <= maxTxRetries; attempt++ {
		tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(tx)
		if err == nil {
			if err = tx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.logger.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
		}

		if !isRetryableError(err) || attempt == maxTxRetries {
			if attempt == maxTxRetries {
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		wait := txBackoff(attempt)
		s.logger.Warn("retrying promotion_state transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return errMaxRetriesExceeded
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

func txBackoff(attempt int) time.Duration {
	wait := time.Duration(1<<attempt) * txRetryBase
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return wait
	}
	// #nosec G115 -- masked to a non-negative value before conversion
	jitter := int64(binary.BigEndian.Uint64(buf[:])&0x7FFFFFFFFFFFFFFF) % int64(wait/5)
	return wait + time.Duration(jitter)
}
