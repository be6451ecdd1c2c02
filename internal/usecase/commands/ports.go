package commands

import (
	"context"
	"time"

	"space-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// Notification is a message for the reserving user, delivered out-of-band
// after the transaction commits. Delivery failures never fail the command.
type Notification struct {
	Kind          string
	ReservationID uuid.UUID
	UserID        uuid.UUID
	SpaceName     string
	AccessCode    string
	StartDate     time.Time
	EndDate       time.Time
}

const (
	NotifyReservationConfirmed = "reservation_confirmed"
	NotifyReservationCancelled = "reservation_cancelled"
	NotifyReservationExpired   = "reservation_expired"
	NotifyStayReminder         = "stay_reminder"
	NotifyAccessCode           = "access_code"
)

type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

type DeviceStatus string

const (
	DeviceOnline  DeviceStatus = "online"
	DeviceOffline DeviceStatus = "offline"
)

// DeviceGateway provisions access codes on the physical lock behind a space.
type DeviceGateway interface {
	// ProvisionCode pushes a code to the device and returns the gateway's
	// reference for later revocation.
	ProvisionCode(ctx context.Context, deviceID, code string, validUntil time.Time) (string, error)
	// UpdateCode swaps the code behind an existing reference in place.
	UpdateCode(ctx context.Context, deviceID, ref, code string, validUntil time.Time) error
	RevokeCode(ctx context.Context, deviceID, ref string) error
	Status(ctx context.Context, deviceID string) (DeviceStatus, error)
}

// PaymentGateway covers the money flows the booking flow triggers itself;
// successful and failed payments arrive asynchronously via webhook.
type PaymentGateway interface {
	// CreateIntent opens a payment session for a freshly created reservation
	// and returns the provider's reference.
	CreateIntent(ctx context.Context, res *reservation.Reservation) (string, error)
	// VerifySuccess asks the provider whether the session settled, for cases
	// where the webhook may not have landed yet.
	VerifySuccess(ctx context.Context, res *reservation.Reservation) (bool, error)
	Refund(ctx context.Context, paymentIntentID string) error
}
