package reservation

import (
	"time"

	"space-booking/internal/domain/space"
	"space-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

// Factory builds priced reservations from a space and a requested stay.
// Availability and quota depend on persisted state and are checked by the
// command layer inside the same transaction.
type Factory struct {
	Clock      clock.Clock
	Calculator *Calculator
}

func NewFactory(clk clock.Clock, calculator *Calculator) *Factory {
	return &Factory{
		Clock:      clk,
		Calculator: calculator,
	}
}

// ValidateRequest runs the stateless checks in order: date range, past
// start, space active, duration bounds.
func (f *Factory) ValidateRequest(sp *space.Space, start, end time.Time) (Stay, error) {
	stay, err := NewFutureStay(start, end, clock.Today(f.Clock))
	if err != nil {
		return Stay{}, err
	}
	if !sp.IsActive() {
		return Stay{}, space.ErrInactive
	}
	if err := sp.ValidateDuration(stay.Days()); err != nil {
		return Stay{}, err
	}
	return stay, nil
}

// Price produces the deterministic breakdown for a validated stay.
func (f *Factory) Price(sp *space.Space, stay Stay, privileged bool) PriceBreakdown {
	return f.Calculator.Calculate(
		sp.NightlyRateCents(privileged),
		sp.CleaningFeeCents(),
		sp.DepositCents(),
		stay.Days(),
		sp.Currency(),
	)
}

// CreateReservation assembles the pending reservation once all persisted
// checks have passed.
func (f *Factory) CreateReservation(
	sp *space.Space,
	unitID, userID uuid.UUID,
	stay Stay,
	privileged bool,
) *Reservation {
	price := f.Price(sp, stay, privileged)
	return NewReservation(sp.ID(), unitID, userID, stay, price, f.Clock.Now())
}
