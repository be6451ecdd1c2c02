package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/infra"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) shared.ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `
id, space_id, unit_id, user_id, start_date, end_date, status, payment_status,
nightly_rate_cents, days, days_total_cents, cleaning_fee_cents, deposit_cents,
platform_fee_cents, fixed_fee_cents, total_cents, currency,
payment_intent_id, payment_expires_at, cancelled_at, cancel_reason, cancelled_by,
created_at, updated_at`

const createReservationQuery = `
INSERT INTO reservations (
  id, space_id, unit_id, user_id, start_date, end_date, status, payment_status,
  nightly_rate_cents, days, days_total_cents, cleaning_fee_cents, deposit_cents,
  platform_fee_cents, fixed_fee_cents, total_cents, currency,
  payment_intent_id, payment_expires_at, cancelled_at, cancel_reason, cancelled_by,
  created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	price := res.Price()
	_, err := r.db.ExecContext(ctx, createReservationQuery,
		res.ID(), res.SpaceID(), res.UnitID(), res.UserID(),
		res.Stay().Start(), res.Stay().End(),
		res.Status().String(), res.PaymentStatus().String(),
		price.NightlyRate.Cents(), price.Days, price.DaysTotal.Cents(),
		price.CleaningFee.Cents(), price.Deposit.Cents(),
		price.PlatformFee.Cents(), price.FixedFee.Cents(), price.Total.Cents(),
		price.Currency,
		res.PaymentIntentID(), res.PaymentExpiresAt(),
		res.CancelledAt(), res.CancelReason(), res.CancelledBy(),
		res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "reservation already exists", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation", err)
	}
	return res, nil
}

const updateReservationQuery = `
UPDATE reservations SET
  status = $2, payment_status = $3,
  payment_intent_id = $4, payment_expires_at = $5,
  cancelled_at = $6, cancel_reason = $7, cancelled_by = $8,
  updated_at = $9
WHERE id = $1`

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	result, err := r.db.ExecContext(ctx, updateReservationQuery,
		res.ID(),
		res.Status().String(), res.PaymentStatus().String(),
		res.PaymentIntentID(), res.PaymentExpiresAt(),
		res.CancelledAt(), res.CancelReason(), res.CancelledBy(),
		res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update reservation", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

// Back-to-back stays are allowed: the comparison is strict on both sides.
// PAYMENT_FAILED reservations no longer block the dates but keep their quota
// slot until cancelled or expired; retryPayment re-enters from there.
const existsOverlappingQuery = `
SELECT EXISTS (
  SELECT 1 FROM reservations
  WHERE space_id IN (%s)
    AND status IN ('PENDING_PAYMENT', 'CONFIRMED', 'ACTIVE')
    AND start_date < $1
    AND end_date > $2
    AND ($3::uuid IS NULL OR id <> $3)
)`

func (r *ReservationRepository) ExistsOverlapping(
	ctx context.Context,
	spaceIDs []uuid.UUID,
	stay reservation.Stay,
	excludeID *uuid.UUID,
) (bool, error) {
	if len(spaceIDs) == 0 {
		return false, nil
	}

	args := []any{stay.End(), stay.Start(), excludeID}
	for _, id := range spaceIDs {
		args = append(args, id)
	}
	query := fmt.Sprintf(existsOverlappingQuery, placeholders(4, len(spaceIDs)))

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to check overlap", err)
	}
	return exists, nil
}

const countForUnitYearQuery = `
SELECT COUNT(*) FROM reservations
WHERE space_id = $1
  AND unit_id = $2
  AND status IN ('PENDING_PAYMENT', 'CONFIRMED', 'ACTIVE', 'COMPLETED')
  AND date_part('year', start_date) = $3`

func (r *ReservationRepository) CountForUnitYear(ctx context.Context, spaceID, unitID uuid.UUID, year int) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, countForUnitYearQuery, spaceID, unitID, year).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to count unit reservations", err)
	}
	return count, nil
}

const findExpiredPendingQuery = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE status IN ('PENDING_PAYMENT', 'PAYMENT_FAILED')
  AND payment_expires_at IS NOT NULL
  AND payment_expires_at < $1
ORDER BY payment_expires_at`

func (r *ReservationRepository) FindExpiredPending(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	return r.queryMany(ctx, findExpiredPendingQuery, now)
}

const findConfirmedStartingOnQuery = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE status = 'CONFIRMED' AND start_date = $1
ORDER BY created_at`

func (r *ReservationRepository) FindConfirmedStartingOn(ctx context.Context, day time.Time) ([]*reservation.Reservation, error) {
	return r.queryMany(ctx, findConfirmedStartingOnQuery, day)
}

const findActiveEndedBeforeQuery = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE status = 'ACTIVE' AND end_date < $1
ORDER BY end_date`

func (r *ReservationRepository) FindActiveEndedBefore(ctx context.Context, day time.Time) ([]*reservation.Reservation, error) {
	return r.queryMany(ctx, findActiveEndedBeforeQuery, day)
}

func (r *ReservationRepository) queryMany(ctx context.Context, query string, args ...any) ([]*reservation.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to query reservations", err)
	}
	defer rows.Close()

	var results []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read reservations", err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*reservation.Reservation, error) {
	var (
		id, spaceID, unitID, userID           uuid.UUID
		startDate, endDate                    time.Time
		status, paymentStatus                 string
		nightlyRate, daysTotal, cleaningFee   int64
		days                                  int
		deposit, platformFee, fixedFee, total int64
		currency                              string
		paymentIntentID                       sql.NullString
		paymentExpiresAt, cancelledAt         sql.NullTime
		cancelReason, cancelledBy             sql.NullString
		createdAt, updatedAt                  time.Time
	)
	err := row.Scan(
		&id, &spaceID, &unitID, &userID, &startDate, &endDate, &status, &paymentStatus,
		&nightlyRate, &days, &daysTotal, &cleaningFee, &deposit,
		&platformFee, &fixedFee, &total, &currency,
		&paymentIntentID, &paymentExpiresAt, &cancelledAt, &cancelReason, &cancelledBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	stay, err := reservation.NewStay(startDate, endDate)
	if err != nil {
		return nil, err
	}

	price := reservation.PriceBreakdown{
		NightlyRate: reservation.NewMoney(nightlyRate),
		Days:        days,
		DaysTotal:   reservation.NewMoney(daysTotal),
		CleaningFee: reservation.NewMoney(cleaningFee),
		Deposit:     reservation.NewMoney(deposit),
		PlatformFee: reservation.NewMoney(platformFee),
		FixedFee:    reservation.NewMoney(fixedFee),
		Total:       reservation.NewMoney(total),
		Currency:    currency,
	}

	return reservation.Reconstruct(
		id, spaceID, unitID, userID,
		stay,
		reservation.Status(status),
		reservation.PaymentStatus(paymentStatus),
		price,
		nullString(paymentIntentID),
		nullTime(paymentExpiresAt), nullTime(cancelledAt),
		nullString(cancelReason), nullString(cancelledBy),
		createdAt, updatedAt,
	), nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
