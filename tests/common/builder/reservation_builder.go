//go:build unit || e2e

package builder

import (
	"time"

	"space-booking/internal/domain/reservation"
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID               uuid.UUID
	SpaceID          uuid.UUID
	UnitID           uuid.UUID
	UserID           uuid.UUID
	Start            time.Time
	End              time.Time
	Status           reservation.Status
	PaymentStatus    reservation.PaymentStatus
	Price            reservation.PriceBreakdown
	PaymentIntentID  *string
	PaymentExpiresAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiresAt := now.Add(reservation.PaymentWindow)
	return &ReservationBuilder{
		ID:               uuid.New(),
		SpaceID:          uuid.New(),
		UnitID:           uuid.New(),
		UserID:           uuid.New(),
		Start:            time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		End:              time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		Status:           reservation.StatusPendingPayment,
		PaymentStatus:    reservation.PaymentPending,
		PaymentExpiresAt: &expiresAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// BuildView renders the read model the same stay would produce, priced at
// the default tenant rate.
func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:            b.ID,
		SpaceID:       b.SpaceID,
		SpaceName:     "Guest Room A",
		UnitID:        b.UnitID,
		UserID:        b.UserID,
		StartDate:     b.Start,
		EndDate:       b.End,
		Status:        b.Status.String(),
		PaymentStatus: b.PaymentStatus.String(),
		Price: queries.PriceQuote{
			NightlyRateCents: 4500,
			Days:             3,
			DaysTotalCents:   13500,
			CleaningFeeCents: 3000,
			DepositCents:     10000,
			PlatformFeeCents: 825,
			FixedFeeCents:    150,
			TotalCents:       27475,
			Currency:         "EUR",
		},
		PaymentExpiresAt: b.PaymentExpiresAt,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	stay, err := reservation.NewStay(b.Start, b.End)
	if err != nil {
		panic(err)
	}
	return reservation.Reconstruct(
		b.ID, b.SpaceID, b.UnitID, b.UserID,
		stay,
		b.Status,
		b.PaymentStatus,
		b.Price,
		b.PaymentIntentID,
		b.PaymentExpiresAt, nil,
		nil, nil,
		b.CreatedAt, b.UpdatedAt,
	)
}
