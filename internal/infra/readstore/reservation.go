package readstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"space-booking/internal/infra"
	"space-booking/internal/infra/repository"
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationReadStore struct {
	db repository.DBTX
}

func NewReservationReadStore(db repository.DBTX) queries.ReservationViewRepo {
	return &ReservationReadStore{db: db}
}

const findReservationViewQuery = `
SELECT r.id, r.space_id, s.name, r.unit_id, r.user_id,
       r.start_date, r.end_date, r.status, r.payment_status,
       r.nightly_rate_cents, r.days, r.days_total_cents, r.cleaning_fee_cents,
       r.deposit_cents, r.platform_fee_cents, r.fixed_fee_cents, r.total_cents, r.currency,
       r.payment_intent_id, r.payment_expires_at,
       r.cancelled_at, r.cancel_reason, r.cancelled_by,
       r.created_at, r.updated_at
FROM reservations r
JOIN spaces s ON s.id = r.space_id
WHERE r.id = $1`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.db.QueryRowContext(ctx, findReservationViewQuery, id)

	var (
		view             queries.ReservationView
		paymentIntentID  sql.NullString
		paymentExpiresAt sql.NullTime
		cancelledAt      sql.NullTime
		cancelReason     sql.NullString
		cancelledBy      sql.NullString
	)
	err := row.Scan(
		&view.ID, &view.SpaceID, &view.SpaceName, &view.UnitID, &view.UserID,
		&view.StartDate, &view.EndDate, &view.Status, &view.PaymentStatus,
		&view.Price.NightlyRateCents, &view.Price.Days, &view.Price.DaysTotalCents,
		&view.Price.CleaningFeeCents, &view.Price.DepositCents,
		&view.Price.PlatformFeeCents, &view.Price.FixedFeeCents, &view.Price.TotalCents,
		&view.Price.Currency,
		&paymentIntentID, &paymentExpiresAt,
		&cancelledAt, &cancelReason, &cancelledBy,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation view", err)
	}

	if paymentIntentID.Valid {
		view.PaymentIntentID = &paymentIntentID.String
	}
	if paymentExpiresAt.Valid {
		view.PaymentExpiresAt = &paymentExpiresAt.Time
	}
	if cancelledAt.Valid {
		view.CancelledAt = &cancelledAt.Time
	}
	if cancelReason.Valid {
		view.CancelReason = &cancelReason.String
	}
	if cancelledBy.Valid {
		view.CancelledBy = &cancelledBy.String
	}
	return &view, nil
}

func listReservationsBy(column string) string {
	return `
SELECT r.id, r.space_id, s.name, r.start_date, r.end_date, r.status,
       r.total_cents, r.currency, r.created_at
FROM reservations r
JOIN spaces s ON s.id = r.space_id
WHERE ` + column + ` = $1
ORDER BY r.start_date DESC, r.created_at DESC`
}

func (s *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationListItem, error) {
	return s.list(ctx, "r.user_id", userID)
}

func (s *ReservationReadStore) FindByUnitID(ctx context.Context, unitID uuid.UUID) ([]*queries.ReservationListItem, error) {
	return s.list(ctx, "r.unit_id", unitID)
}

func (s *ReservationReadStore) list(ctx context.Context, column string, id uuid.UUID) ([]*queries.ReservationListItem, error) {
	query := listReservationsBy(column)
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list reservations", err)
	}
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var item queries.ReservationListItem
		err := rows.Scan(
			&item.ID, &item.SpaceID, &item.SpaceName,
			&item.StartDate, &item.EndDate, &item.Status,
			&item.TotalCents, &item.Currency, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read reservation rows", err)
	}
	return items, nil
}

// ULIDs sort by creation time, so descending id order is newest-first.
const listAuditQuery = `
SELECT id, reservation_id, event_type, old_value, new_value, message, actor, created_at
FROM reservation_audit
WHERE reservation_id = $1
ORDER BY id DESC`

func (s *ReservationReadStore) FindAuditByReservationID(ctx context.Context, id uuid.UUID) ([]*queries.AuditEntryView, error) {
	rows, err := s.db.QueryContext(ctx, listAuditQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list audit entries", err)
	}
	defer rows.Close()

	var entries []*queries.AuditEntryView
	for rows.Next() {
		var (
			entry     queries.AuditEntryView
			createdAt time.Time
		)
		if err := rows.Scan(&entry.ID, &entry.ReservationID, &entry.EventType, &entry.OldValue, &entry.NewValue, &entry.Message, &entry.Actor, &createdAt); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan audit row", err)
		}
		entry.CreatedAt = createdAt
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read audit rows", err)
	}
	return entries, nil
}
