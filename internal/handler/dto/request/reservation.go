package request

import (
	"strings"
	"time"

	"space-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	SpaceID   uuid.UUID `json:"spaceId" binding:"required"`
	StartDate string    `json:"startDate" binding:"required"`
	EndDate   string    `json:"endDate" binding:"required"`
}

// Dates parses the date-only fields. Range validation happens in the
// domain layer.
func (r CreateReservationRequest) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, reservation.ErrInvalidDateRange
	}
	end, err := time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, reservation.ErrInvalidDateRange
	}
	return start, end, nil
}

type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (r CancelReservationRequest) TrimmedReason() string {
	return strings.TrimSpace(r.Reason)
}

type ValidateCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

const (
	PaymentEventSucceeded        = "payment.succeeded"
	PaymentEventFailed           = "payment.failed"
	PaymentEventRefunded         = "payment.refunded"
	PaymentEventSessionCompleted = "session.completed"
	PaymentEventSessionExpired   = "session.expired"
)

// PaymentWebhookRequest is the payload the payment provider posts back
// once a payment intent settles.
type PaymentWebhookRequest struct {
	ReservationID   uuid.UUID `json:"reservationId" binding:"required"`
	Event           string    `json:"event" binding:"required"`
	PaymentIntentID *string   `json:"paymentIntentId,omitempty"`
}
