//go:build unit

package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/infra"
	"space-booking/internal/infra/repository"
	"space-booking/tests/common/builder"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var reservationRowColumns = []string{
	"id", "space_id", "unit_id", "user_id", "start_date", "end_date", "status", "payment_status",
	"nightly_rate_cents", "days", "days_total_cents", "cleaning_fee_cents", "deposit_cents",
	"platform_fee_cents", "fixed_fee_cents", "total_cents", "currency",
	"payment_intent_id", "payment_expires_at", "cancelled_at", "cancel_reason", "cancelled_by",
	"created_at", "updated_at",
}

// timeOrNil flattens optional timestamps so the mocked rows carry values the
// scanner understands.
func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func reservationRow(res *reservation.Reservation) *sqlmock.Rows {
	rows := sqlmock.NewRows(reservationRowColumns)
	return addReservationRow(rows, res)
}

func addReservationRow(rows *sqlmock.Rows, res *reservation.Reservation) *sqlmock.Rows {
	price := res.Price()
	return rows.AddRow(
		res.ID().String(), res.SpaceID().String(), res.UnitID().String(), res.UserID().String(),
		res.Stay().Start(), res.Stay().End(),
		res.Status().String(), res.PaymentStatus().String(),
		price.NightlyRate.Cents(), price.Days, price.DaysTotal.Cents(),
		price.CleaningFee.Cents(), price.Deposit.Cents(),
		price.PlatformFee.Cents(), price.FixedFee.Cents(), price.Total.Cents(),
		price.Currency,
		nil, timeOrNil(res.PaymentExpiresAt()), nil, nil, nil,
		res.CreatedAt(), res.UpdatedAt(),
	)
}

// =============================================================================
// Create Reservation Tests
// =============================================================================

func TestReservationRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(mock sqlmock.Sqlmock)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation inserted",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO reservations").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "error: duplicate reservation",
			setupMock: func(mock sqlmock.Sqlmock) {
				dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				mock.ExpectExec("INSERT INTO reservations").WillReturnError(dup)
			},
			expectedError: true,
			expectKind:    infra.KindDuplicateKey,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO reservations").
					WillReturnError(errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewReservationRepository(db)

			res := builder.NewReservationBuilder().BuildDomain()
			tc.setupMock(mock)

			actualError := repo.Create(ctx, res)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// =============================================================================
// FindByID Reservation Tests
// =============================================================================

func TestReservationRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(mock sqlmock.Sqlmock, res *reservation.Reservation)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation found",
			setupMock: func(mock sqlmock.Sqlmock, res *reservation.Reservation) {
				mock.ExpectQuery("FROM reservations WHERE id").
					WithArgs(res.ID()).
					WillReturnRows(reservationRow(res))
			},
			expectedError: false,
		},
		{
			name: "error: reservation not found",
			setupMock: func(mock sqlmock.Sqlmock, res *reservation.Reservation) {
				mock.ExpectQuery("FROM reservations WHERE id").
					WithArgs(res.ID()).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock sqlmock.Sqlmock, res *reservation.Reservation) {
				mock.ExpectQuery("FROM reservations WHERE id").
					WithArgs(res.ID()).
					WillReturnError(errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewReservationRepository(db)

			res := builder.NewReservationBuilder().BuildDomain()
			tc.setupMock(mock, res)

			found, actualError := repo.FindByID(ctx, res.ID())

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				assert.Nil(t, found)
			} else {
				require.NoError(t, actualError)
				require.NotNil(t, found)
				assert.Equal(t, res.ID(), found.ID())
				assert.Equal(t, res.Status(), found.Status())
				assert.Equal(t, res.Stay().Start(), found.Stay().Start())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// =============================================================================
// Update Reservation Tests
// =============================================================================

func TestReservationRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(mock sqlmock.Sqlmock)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation updated",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE reservations SET").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name: "error: no matching row",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE reservations SET").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE reservations SET").
					WillReturnError(errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := repository.NewReservationRepository(db)

			res := builder.NewReservationBuilder().BuildDomain()
			tc.setupMock(mock)

			actualError := repo.Update(ctx, res)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// =============================================================================
// ExistsOverlapping Tests
// =============================================================================

func TestReservationRepository_ExistsOverlapping(t *testing.T) {
	ctx := context.Background()

	spaceA := uuid.New()
	spaceB := uuid.New()
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	stay, err := reservation.NewStay(start, end)
	require.NoError(t, err)

	t.Run("success: overlap found across shared group", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReservationRepository(db)

		// The stay bounds land in $1/$2 and the group IDs fill the IN clause
		// starting at $4; the exclusion slot stays NULL for new reservations.
		mock.ExpectQuery(regexp.QuoteMeta("space_id IN ($4, $5)")).
			WithArgs(end, start, nil, spaceA, spaceB).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, actualError := repo.ExistsOverlapping(ctx, []uuid.UUID{spaceA, spaceB}, stay, nil)

		require.NoError(t, actualError)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: no overlap", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReservationRepository(db)

		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, actualError := repo.ExistsOverlapping(ctx, []uuid.UUID{spaceA}, stay, nil)

		require.NoError(t, actualError)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: empty space list short-circuits without querying", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReservationRepository(db)

		exists, actualError := repo.ExistsOverlapping(ctx, nil, stay, nil)

		require.NoError(t, actualError)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReservationRepository(db)

		mock.ExpectQuery("SELECT EXISTS").
			WillReturnError(errors.New("database connection error"))

		_, actualError := repo.ExistsOverlapping(ctx, []uuid.UUID{spaceA}, stay, nil)

		require.Error(t, actualError)
		assert.True(t, infra.IsKind(actualError, infra.KindDBFailure))
	})
}

// =============================================================================
// CountForUnitYear Tests
// =============================================================================

func TestReservationRepository_CountForUnitYear(t *testing.T) {
	ctx := context.Background()

	spaceID := uuid.New()
	unitID := uuid.New()

	t.Run("success: count returned", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReservationRepository(db)

		mock.ExpectQuery("SELECT COUNT").
			WithArgs(spaceID, unitID, 2026).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, actualError := repo.CountForUnitYear(ctx, spaceID, unitID, 2026)

		require.NoError(t, actualError)
		assert.Equal(t, 3, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReservationRepository(db)

		mock.ExpectQuery("SELECT COUNT").
			WillReturnError(errors.New("database connection error"))

		_, actualError := repo.CountForUnitYear(ctx, spaceID, unitID, 2026)

		require.Error(t, actualError)
		assert.True(t, infra.IsKind(actualError, infra.KindDBFailure))
	})
}

// =============================================================================
// Sweep Query Tests
// =============================================================================

func TestReservationRepository_FindExpiredPending(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)

	t.Run("success: expired reservations listed", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReservationRepository(db)

		first := builder.NewReservationBuilder().BuildDomain()
		second := builder.NewReservationBuilder().BuildDomain()
		rows := addReservationRow(reservationRow(first), second)

		mock.ExpectQuery("payment_expires_at").
			WithArgs(now).
			WillReturnRows(rows)

		results, actualError := repo.FindExpiredPending(ctx, now)

		require.NoError(t, actualError)
		require.Len(t, results, 2)
		assert.Equal(t, first.ID(), results[0].ID())
		assert.Equal(t, second.ID(), results[1].ID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success: nothing expired", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReservationRepository(db)

		mock.ExpectQuery("payment_expires_at").
			WithArgs(now).
			WillReturnRows(sqlmock.NewRows(reservationRowColumns))

		results, actualError := repo.FindExpiredPending(ctx, now)

		require.NoError(t, actualError)
		assert.Empty(t, results)
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewReservationRepository(db)

		mock.ExpectQuery("payment_expires_at").
			WillReturnError(errors.New("database connection error"))

		_, actualError := repo.FindExpiredPending(ctx, now)

		require.Error(t, actualError)
		assert.True(t, infra.IsKind(actualError, infra.KindDBFailure))
	})
}
