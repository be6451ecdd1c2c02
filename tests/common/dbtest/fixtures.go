//go:build e2e

package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"space-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// InsertSpace persists the builder's space so API calls can book it.
func InsertSpace(t *testing.T, db *sql.DB, b *builder.SpaceBuilder) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	_, err := db.ExecContext(ctx, `
		INSERT INTO spaces (
		  id, name, space_type, status,
		  owner_rate_cents, tenant_rate_cents, cleaning_fee_cents, deposit_cents,
		  currency, min_duration_days, max_duration_days,
		  max_annual_reservations, used_annual_count, quota_scope, device_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		b.ID, b.Name, string(b.SpaceType), string(b.Status),
		b.OwnerRateCents, b.TenantRateCents, b.CleaningFeeCents, b.DepositCents,
		b.Currency, b.MinDurationDays, b.MaxDurationDays,
		b.MaxAnnualReservations, b.UsedAnnualCount, string(b.QuotaScope), b.DeviceID,
	)
	require.NoError(t, err)

	for _, sharedWith := range b.SharedWith {
		LinkSharedSpaces(t, db, b.ID, sharedWith)
	}
	return b.ID
}

// LinkSharedSpaces records that two spaces block each other. One direction is
// enough; the repository reads the link symmetrically.
func LinkSharedSpaces(t *testing.T, db *sql.DB, spaceID, sharedWith uuid.UUID) {
	t.Helper()

	_, err := db.ExecContext(context.Background(), `
		INSERT INTO space_shared_groups (space_id, shared_with) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		spaceID, sharedWith,
	)
	require.NoError(t, err)
}

// ResetDB clears all booking state between subtests.
func ResetDB(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), `
		TRUNCATE reservation_audit, access_codes, reservations, space_shared_groups, spaces CASCADE`)
	return err
}
