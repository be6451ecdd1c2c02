//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"space-booking/internal/infra"
	"space-booking/internal/infra/readstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var auditRowColumns = []string{
	"id", "reservation_id", "event_type", "old_value", "new_value", "message", "actor", "created_at",
}

func auditULID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String()
}

// =============================================================================
// Audit Listing Tests
// =============================================================================

func TestReservationReadStore_FindAuditByReservationID(t *testing.T) {
	ctx := context.Background()
	reservationID := uuid.New()
	t0 := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success: trail comes back newest-first with transition values", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		store := readstore.NewReservationReadStore(db)

		// rows as the database serves them under descending id order
		rows := sqlmock.NewRows(auditRowColumns).
			AddRow(auditULID(t0.Add(2*time.Second)), reservationID, "RESERVATION_CANCELLED",
				nil, nil, "Reservation cancelled. Reason: Change of plans", "Alice Tenant", t0.Add(2*time.Second)).
			AddRow(auditULID(t0.Add(time.Second)), reservationID, "STATUS_CHANGED",
				"PENDING_PAYMENT", "CONFIRMED", "Reservation status changed from PENDING_PAYMENT to CONFIRMED", "system", t0.Add(time.Second)).
			AddRow(auditULID(t0), reservationID, "RESERVATION_CREATED",
				nil, nil, "Reservation created", "Alice Tenant", t0)
		mock.ExpectQuery("ORDER BY id DESC").WithArgs(reservationID).WillReturnRows(rows)

		entries, err := store.FindAuditByReservationID(ctx, reservationID)

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "RESERVATION_CANCELLED", entries[0].EventType)
		assert.Equal(t, "RESERVATION_CREATED", entries[2].EventType)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].CreatedAt.After(entries[i-1].CreatedAt),
				"trail must be newest-first")
		}
		require.NotNil(t, entries[1].OldValue)
		require.NotNil(t, entries[1].NewValue)
		assert.Equal(t, "PENDING_PAYMENT", *entries[1].OldValue)
		assert.Equal(t, "CONFIRMED", *entries[1].NewValue)
		assert.Nil(t, entries[2].OldValue)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		store := readstore.NewReservationReadStore(db)

		mock.ExpectQuery("ORDER BY id DESC").WithArgs(reservationID).
			WillReturnError(errors.New("database connection error"))

		_, err = store.FindAuditByReservationID(ctx, reservationID)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
