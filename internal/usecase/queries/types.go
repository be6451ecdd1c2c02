package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID               uuid.UUID  `json:"id"`
	SpaceID          uuid.UUID  `json:"space_id"`
	SpaceName        string     `json:"space_name"`
	UnitID           uuid.UUID  `json:"unit_id"`
	UserID           uuid.UUID  `json:"user_id"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	Price            PriceQuote `json:"price"`
	PaymentIntentID  *string    `json:"payment_intent_id,omitempty"`
	PaymentExpiresAt *time.Time `json:"payment_expires_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CancelReason     *string    `json:"cancel_reason,omitempty"`
	CancelledBy      *string    `json:"cancelled_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID `json:"id"`
	SpaceID    uuid.UUID `json:"space_id"`
	SpaceName  string    `json:"space_name"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

type SpaceView struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	SpaceType             string    `json:"space_type"`
	Status                string    `json:"status"`
	OwnerRateCents        int64     `json:"owner_rate_cents"`
	TenantRateCents       int64     `json:"tenant_rate_cents"`
	CleaningFeeCents      int64     `json:"cleaning_fee_cents"`
	DepositCents          int64     `json:"deposit_cents"`
	Currency              string    `json:"currency"`
	MinDurationDays       int       `json:"min_duration_days"`
	MaxDurationDays       int       `json:"max_duration_days"`
	MaxAnnualReservations int       `json:"max_annual_reservations"`
}

// PriceQuote is the itemized price for a stay; total always equals the sum
// of the components.
type PriceQuote struct {
	NightlyRateCents int64  `json:"nightly_rate_cents"`
	Days             int    `json:"days"`
	DaysTotalCents   int64  `json:"days_total_cents"`
	CleaningFeeCents int64  `json:"cleaning_fee_cents"`
	DepositCents     int64  `json:"deposit_cents"`
	PlatformFeeCents int64  `json:"platform_fee_cents"`
	FixedFeeCents    int64  `json:"fixed_fee_cents"`
	TotalCents       int64  `json:"total_cents"`
	Currency         string `json:"currency"`
}

type AuditEntryView struct {
	ID            string    `json:"id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	EventType     string    `json:"event_type"`
	OldValue      *string   `json:"old_value,omitempty"`
	NewValue      *string   `json:"new_value,omitempty"`
	Message       string    `json:"message"`
	Actor         string    `json:"actor"`
	CreatedAt     time.Time `json:"created_at"`
}
