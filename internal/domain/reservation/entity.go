package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PaymentWindow is how long a new reservation may remain unpaid before the
// expiry sweep cancels it.
const PaymentWindow = 15 * time.Minute

// ActorSystem marks transitions triggered by background jobs rather than a
// person.
const ActorSystem = "system"

var ErrInvalidTransition = errors.New("invalid reservation state transition")

type Reservation struct {
	id               uuid.UUID
	spaceID          uuid.UUID
	unitID           uuid.UUID
	userID           uuid.UUID
	stay             Stay
	status           Status
	paymentStatus    PaymentStatus
	price            PriceBreakdown
	paymentIntentID  *string
	paymentExpiresAt *time.Time
	cancelledAt      *time.Time
	cancelReason     *string
	cancelledBy      *string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewReservation creates a reservation awaiting payment. The payment window
// starts immediately.
func NewReservation(
	spaceID, unitID, userID uuid.UUID,
	stay Stay,
	price PriceBreakdown,
	now time.Time,
) *Reservation {
	expiresAt := now.Add(PaymentWindow)
	return &Reservation{
		id:               uuid.New(),
		spaceID:          spaceID,
		unitID:           unitID,
		userID:           userID,
		stay:             stay,
		status:           StatusPendingPayment,
		paymentStatus:    PaymentPending,
		price:            price,
		paymentExpiresAt: &expiresAt,
		createdAt:        now,
		updatedAt:        now,
	}
}

func Reconstruct(
	id, spaceID, unitID, userID uuid.UUID,
	stay Stay,
	status Status,
	paymentStatus PaymentStatus,
	price PriceBreakdown,
	paymentIntentID *string,
	paymentExpiresAt, cancelledAt *time.Time,
	cancelReason, cancelledBy *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:               id,
		spaceID:          spaceID,
		unitID:           unitID,
		userID:           userID,
		stay:             stay,
		status:           status,
		paymentStatus:    paymentStatus,
		price:            price,
		paymentIntentID:  paymentIntentID,
		paymentExpiresAt: paymentExpiresAt,
		cancelledAt:      cancelledAt,
		cancelReason:     cancelReason,
		cancelledBy:      cancelledBy,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) SpaceID() uuid.UUID           { return r.spaceID }
func (r *Reservation) UnitID() uuid.UUID            { return r.unitID }
func (r *Reservation) UserID() uuid.UUID            { return r.userID }
func (r *Reservation) Stay() Stay                   { return r.stay }
func (r *Reservation) Status() Status               { return r.status }
func (r *Reservation) PaymentStatus() PaymentStatus { return r.paymentStatus }
func (r *Reservation) Price() PriceBreakdown        { return r.price }
func (r *Reservation) PaymentIntentID() *string     { return r.paymentIntentID }
func (r *Reservation) PaymentExpiresAt() *time.Time { return r.paymentExpiresAt }
func (r *Reservation) CancelledAt() *time.Time      { return r.cancelledAt }
func (r *Reservation) CancelReason() *string        { return r.cancelReason }
func (r *Reservation) CancelledBy() *string         { return r.cancelledBy }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time         { return r.updatedAt }

func (r *Reservation) transitionErr(to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.status, to)
}

// Confirm records a successful payment and moves the reservation out of the
// payment window.
func (r *Reservation) Confirm(paymentIntentID *string, now time.Time) error {
	if r.status != StatusPendingPayment {
		return r.transitionErr(StatusConfirmed)
	}
	r.status = StatusConfirmed
	r.paymentStatus = PaymentSucceeded
	if paymentIntentID != nil {
		r.paymentIntentID = paymentIntentID
	}
	r.paymentExpiresAt = nil
	r.updatedAt = now
	return nil
}

// AttachPaymentIntent records the provider's session reference opened at
// booking time.
func (r *Reservation) AttachPaymentIntent(intentID string, now time.Time) {
	r.paymentIntentID = &intentID
	r.updatedAt = now
}

// Activate starts the stay. Only valid on the start date itself.
func (r *Reservation) Activate(today, now time.Time) error {
	if r.status != StatusConfirmed || !r.stay.StartsOn(today) {
		return r.transitionErr(StatusActive)
	}
	r.status = StatusActive
	r.updatedAt = now
	return nil
}

// Complete closes an active reservation whose end date has passed.
func (r *Reservation) Complete(today, now time.Time) error {
	if r.status != StatusActive || !r.stay.EndedBefore(today) {
		return r.transitionErr(StatusCompleted)
	}
	r.status = StatusCompleted
	r.updatedAt = now
	return nil
}

// Cancel is allowed from any non-terminal state except COMPLETED and records
// who cancelled and why.
func (r *Reservation) Cancel(reason, actor string, now time.Time) error {
	if r.status == StatusCancelled || r.status == StatusCompleted {
		return r.transitionErr(StatusCancelled)
	}
	r.status = StatusCancelled
	r.cancelReason = &reason
	r.cancelledBy = &actor
	r.cancelledAt = &now
	r.updatedAt = now
	return nil
}

// Expire is the system-driven equivalent of Cancel for reservations whose
// payment window ran out.
func (r *Reservation) Expire(reason string, now time.Time) error {
	if r.status != StatusPendingPayment && r.status != StatusPaymentFailed {
		return r.transitionErr(StatusExpired)
	}
	actor := ActorSystem
	r.status = StatusExpired
	r.cancelReason = &reason
	r.cancelledBy = &actor
	r.cancelledAt = &now
	r.updatedAt = now
	return nil
}

// IsPaymentWindowExpired reports whether the unpaid reservation's window has
// elapsed.
func (r *Reservation) IsPaymentWindowExpired(now time.Time) bool {
	return r.paymentExpiresAt != nil && now.After(*r.paymentExpiresAt)
}

// RetryPayment re-opens the payment window without changing status, so a
// previously failed attempt restarts the clock.
func (r *Reservation) RetryPayment(now time.Time) error {
	if r.status != StatusPendingPayment && r.status != StatusPaymentFailed {
		return r.transitionErr(StatusPendingPayment)
	}
	expiresAt := now.Add(PaymentWindow)
	r.paymentExpiresAt = &expiresAt
	r.updatedAt = now
	return nil
}

// MarkPaymentFailed records a failed payment attempt. The reservation stays
// retryable until the expiry sweep picks it up.
func (r *Reservation) MarkPaymentFailed(now time.Time) error {
	if r.status != StatusPendingPayment {
		return r.transitionErr(StatusPaymentFailed)
	}
	r.status = StatusPaymentFailed
	r.paymentStatus = PaymentFailed
	r.updatedAt = now
	return nil
}

// MarkRefunded records a refund of a confirmed reservation, releasing both
// the dates and the quota slot.
func (r *Reservation) MarkRefunded(now time.Time) error {
	if r.status != StatusConfirmed {
		return r.transitionErr(StatusRefunded)
	}
	r.status = StatusRefunded
	r.paymentStatus = PaymentRefunded
	r.updatedAt = now
	return nil
}

// HasStarted reports whether the stay's first day has been reached.
func (r *Reservation) HasStarted(today time.Time) bool {
	return !today.Before(r.stay.Start())
}
