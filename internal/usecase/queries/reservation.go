package queries

import (
	"context"

	"space-booking/internal/infra"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
	ListByUnit(ctx context.Context, unitID uuid.UUID) ([]*ReservationListItem, error)
	ListAudit(ctx context.Context, actor shared.Actor, id uuid.UUID) ([]*AuditEntryView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error)
	FindByUnitID(ctx context.Context, unitID uuid.UUID) ([]*ReservationListItem, error)
	FindAuditByReservationID(ctx context.Context, id uuid.UUID) ([]*AuditEntryView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.find(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*ReservationListItem, error) {
	return q.repo.FindByUserID(ctx, userID)
}

func (q *reservationQueriesImpl) ListByUnit(ctx context.Context, unitID uuid.UUID) ([]*ReservationListItem, error) {
	return q.repo.FindByUnitID(ctx, unitID)
}

func (q *reservationQueriesImpl) ListAudit(ctx context.Context, actor shared.Actor, id uuid.UUID) ([]*AuditEntryView, error) {
	if _, err := q.find(ctx, actor, id); err != nil {
		return nil, err
	}
	return q.repo.FindAuditByReservationID(ctx, id)
}

// find loads the view and hides reservations the actor may not see behind a
// not-found error.
func (q *reservationQueriesImpl) find(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, notFound(id)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !actor.CanManage(view.UserID) && actor.UnitID != view.UnitID {
		return nil, notFound(id)
	}
	return view, nil
}

func notFound(id uuid.UUID) error {
	return errs.NewCoded(errs.CodeReservationNotFound, "reservation not found",
		errs.ErrReservationNotFound, map[string]any{"reservationId": id.String()})
}
