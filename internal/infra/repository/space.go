package repository

import (
	"context"
	"database/sql"
	"errors"

	"space-booking/internal/domain/space"
	"space-booking/internal/infra"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpaceRepository struct {
	db DBTX
}

func NewSpaceRepository(db DBTX) shared.SpaceRepository {
	return &SpaceRepository{db: db}
}

const findSpaceByIDQuery = `
SELECT id, name, space_type, status,
       owner_rate_cents, tenant_rate_cents, cleaning_fee_cents, deposit_cents,
       currency, min_duration_days, max_duration_days,
       max_annual_reservations, used_annual_count, quota_scope, device_id
FROM spaces
WHERE id = $1`

func (r *SpaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*space.Space, error) {
	row := r.db.QueryRowContext(ctx, findSpaceByIDQuery, id)

	var (
		spaceID           uuid.UUID
		name              string
		spaceType, status string
		ownerRate         int64
		tenantRate        int64
		cleaningFee       int64
		deposit           int64
		currency          string
		minDays, maxDays  int
		maxAnnual         int
		usedAnnual        int
		quotaScope        string
		deviceID          sql.NullString
	)
	err := row.Scan(
		&spaceID, &name, &spaceType, &status,
		&ownerRate, &tenantRate, &cleaningFee, &deposit,
		&currency, &minDays, &maxDays,
		&maxAnnual, &usedAnnual, &quotaScope, &deviceID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "space not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find space", err)
	}

	sharedWith, err := r.sharedWith(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	var devicePtr *string
	if deviceID.Valid {
		devicePtr = &deviceID.String
	}

	return space.Reconstruct(
		spaceID, name, space.Type(spaceType), space.Status(status),
		ownerRate, tenantRate, cleaningFee, deposit,
		currency, minDays, maxDays,
		maxAnnual, usedAnnual, space.QuotaScope(quotaScope),
		sharedWith, devicePtr,
	), nil
}

// Shared links are stored one-directional; both directions are read so the
// closure is symmetric regardless of which side declared the link.
const sharedGroupQuery = `
SELECT shared_with FROM space_shared_groups WHERE space_id = $1
UNION
SELECT space_id FROM space_shared_groups WHERE shared_with = $1`

func (r *SpaceRepository) sharedWith(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, sharedGroupQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load shared group", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var sharedID uuid.UUID
		if err := rows.Scan(&sharedID); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan shared group", err)
		}
		ids = append(ids, sharedID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read shared group", err)
	}
	return ids, nil
}

func (r *SpaceRepository) SharedGroupIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	sharedIDs, err := r.sharedWith(ctx, id)
	if err != nil {
		return nil, err
	}
	return append([]uuid.UUID{id}, sharedIDs...), nil
}

const updateAnnualCountQuery = `
UPDATE spaces SET used_annual_count = $2, updated_at = now() WHERE id = $1`

func (r *SpaceRepository) UpdateAnnualCount(ctx context.Context, sp *space.Space) error {
	result, err := r.db.ExecContext(ctx, updateAnnualCountQuery, sp.ID(), sp.UsedAnnualCount())
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update annual count", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "space not found", nil)
	}
	return nil
}
