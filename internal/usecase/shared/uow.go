package shared

import (
	"context"
	"time"

	"space-booking/internal/domain/accesscode"
	"space-booking/internal/domain/audit"
	"space-booking/internal/domain/reservation"
	"space-booking/internal/domain/space"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Spaces() SpaceRepository
	Reservations() ReservationRepository
	AccessCodes() AccessCodeRepository
	Audit() AuditRepository
}

type SpaceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*space.Space, error)
	// SharedGroupIDs resolves the symmetric closure of spaces that share
	// physical capacity with the given one, the space itself included.
	SharedGroupIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	UpdateAnnualCount(ctx context.Context, sp *space.Space) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, res *reservation.Reservation) error
	// ExistsOverlapping reports whether any blocking reservation on the
	// given spaces overlaps the stay, excluding excludeID if non-nil.
	ExistsOverlapping(ctx context.Context, spaceIDs []uuid.UUID, stay reservation.Stay, excludeID *uuid.UUID) (bool, error)
	// CountForUnitYear counts quota-relevant reservations a unit holds on a
	// space in a calendar year.
	CountForUnitYear(ctx context.Context, spaceID, unitID uuid.UUID, year int) (int, error)
	FindExpiredPending(ctx context.Context, now time.Time) ([]*reservation.Reservation, error)
	FindConfirmedStartingOn(ctx context.Context, day time.Time) ([]*reservation.Reservation, error)
	FindActiveEndedBefore(ctx context.Context, day time.Time) ([]*reservation.Reservation, error)
}

type AccessCodeRepository interface {
	Create(ctx context.Context, code *accesscode.AccessCode) error
	FindActiveByReservation(ctx context.Context, reservationID uuid.UUID) (*accesscode.AccessCode, error)
	Update(ctx context.Context, code *accesscode.AccessCode) error
}

type AuditRepository interface {
	Append(ctx context.Context, entry audit.Entry) error
}
