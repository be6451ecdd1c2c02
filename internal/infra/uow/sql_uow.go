package uow

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"space-booking/internal/infra/repository"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type SQLUnitOfWork struct {
	pool *sql.DB
}

func NewSQLUnitOfWork(pool *sql.DB) shared.UnitOfWork {
	return &SQLUnitOfWork{pool: pool}
}

// Serializable keeps check-then-write sequences (availability, quota) atomic
// under concurrency; conflicting transactions fail with 40001 and retry.
func (u *SQLUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		sqlTx, err := u.pool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := newSQLTx(sqlTx)

		err = fn(ctx, tx)
		if err == nil {
			if err = sqlTx.Commit(); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := sqlTx.Rollback(); rollbackErr != nil {
			if !errors.Is(rollbackErr, sql.ErrTxDone) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

type sqlTx struct {
	spaces       shared.SpaceRepository
	reservations shared.ReservationRepository
	accessCodes  shared.AccessCodeRepository
	audit        shared.AuditRepository
}

func newSQLTx(tx *sql.Tx) *sqlTx {
	return &sqlTx{
		spaces:       repository.NewSpaceRepository(tx),
		reservations: repository.NewReservationRepository(tx),
		accessCodes:  repository.NewAccessCodeRepository(tx),
		audit:        repository.NewAuditRepository(tx),
	}
}

func (t *sqlTx) Spaces() shared.SpaceRepository             { return t.spaces }
func (t *sqlTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *sqlTx) AccessCodes() shared.AccessCodeRepository   { return t.accessCodes }
func (t *sqlTx) Audit() shared.AuditRepository              { return t.audit }

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
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
	return int64(uval) % n
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
