package queries

import (
	"context"
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/infra"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpaceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	List(ctx context.Context) ([]*SpaceView, error)
	// IsAvailable checks the requested dates against every reservation in
	// the space's shared group.
	IsAvailable(ctx context.Context, spaceID uuid.UUID, start, end time.Time) (bool, error)
	// PreviewPrice quotes a stay without reserving anything.
	PreviewPrice(ctx context.Context, spaceID uuid.UUID, start, end time.Time, privileged bool) (*PriceQuote, error)
}

type SpaceViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SpaceView, error)
	List(ctx context.Context) ([]*SpaceView, error)
}

type spaceQueriesImpl struct {
	views        SpaceViewRepo
	spaces       shared.SpaceRepository
	reservations shared.ReservationRepository
	factory      *reservation.Factory
}

func NewSpaceQueries(
	views SpaceViewRepo,
	spaces shared.SpaceRepository,
	reservations shared.ReservationRepository,
	factory *reservation.Factory,
) SpaceQueries {
	return &spaceQueriesImpl{
		views:        views,
		spaces:       spaces,
		reservations: reservations,
		factory:      factory,
	}
}

func (q *spaceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SpaceView, error) {
	view, err := q.views.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, spaceNotFound(id)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *spaceQueriesImpl) List(ctx context.Context) ([]*SpaceView, error) {
	return q.views.List(ctx)
}

func (q *spaceQueriesImpl) IsAvailable(ctx context.Context, spaceID uuid.UUID, start, end time.Time) (bool, error) {
	stay, err := reservation.NewStay(start, end)
	if err != nil {
		return false, errs.NewCoded(errs.CodeInvalidDateRange, "end date must not be before start date", errs.ErrValidation, nil)
	}

	groupIDs, err := q.spaces.SharedGroupIDs(ctx, spaceID)
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	conflict, err := q.reservations.ExistsOverlapping(ctx, groupIDs, stay, nil)
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return !conflict, nil
}

func (q *spaceQueriesImpl) PreviewPrice(ctx context.Context, spaceID uuid.UUID, start, end time.Time, privileged bool) (*PriceQuote, error) {
	sp, err := q.spaces.FindByID(ctx, spaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, spaceNotFound(spaceID)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	stay, err := reservation.NewStay(start, end)
	if err != nil {
		return nil, errs.NewCoded(errs.CodeInvalidDateRange, "end date must not be before start date", errs.ErrValidation, nil)
	}

	price := q.factory.Price(sp, stay, privileged)
	return &PriceQuote{
		NightlyRateCents: price.NightlyRate.Cents(),
		Days:             price.Days,
		DaysTotalCents:   price.DaysTotal.Cents(),
		CleaningFeeCents: price.CleaningFee.Cents(),
		DepositCents:     price.Deposit.Cents(),
		PlatformFeeCents: price.PlatformFee.Cents(),
		FixedFeeCents:    price.FixedFee.Cents(),
		TotalCents:       price.Total.Cents(),
		Currency:         price.Currency,
	}, nil
}

func spaceNotFound(id uuid.UUID) error {
	return errs.NewCoded(errs.CodeSpaceNotFound, "space not found",
		errs.ErrSpaceNotFound, map[string]any{"spaceId": id.String()})
}
