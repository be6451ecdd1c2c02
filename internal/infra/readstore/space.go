package readstore

import (
	"context"
	"database/sql"
	"errors"

	"space-booking/internal/infra"
	"space-booking/internal/infra/repository"
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SpaceReadStore struct {
	db repository.DBTX
}

func NewSpaceReadStore(db repository.DBTX) queries.SpaceViewRepo {
	return &SpaceReadStore{db: db}
}

const spaceViewColumns = `
id, name, space_type, status,
owner_rate_cents, tenant_rate_cents, cleaning_fee_cents, deposit_cents,
currency, min_duration_days, max_duration_days, max_annual_reservations`

func (s *SpaceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SpaceView, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+spaceViewColumns+` FROM spaces WHERE id = $1`, id)

	var view queries.SpaceView
	err := row.Scan(
		&view.ID, &view.Name, &view.SpaceType, &view.Status,
		&view.OwnerRateCents, &view.TenantRateCents, &view.CleaningFeeCents, &view.DepositCents,
		&view.Currency, &view.MinDurationDays, &view.MaxDurationDays, &view.MaxAnnualReservations,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "space not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find space view", err)
	}
	return &view, nil
}

func (s *SpaceReadStore) List(ctx context.Context) ([]*queries.SpaceView, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+spaceViewColumns+` FROM spaces ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list spaces", err)
	}
	defer rows.Close()

	var views []*queries.SpaceView
	for rows.Next() {
		var view queries.SpaceView
		err := rows.Scan(
			&view.ID, &view.Name, &view.SpaceType, &view.Status,
			&view.OwnerRateCents, &view.TenantRateCents, &view.CleaningFeeCents, &view.DepositCents,
			&view.Currency, &view.MinDurationDays, &view.MaxDurationDays, &view.MaxAnnualReservations,
		)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan space row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read space rows", err)
	}
	return views, nil
}
