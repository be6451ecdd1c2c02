package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// EventType classifies audit trail entries.
type EventType string

const (
	EventCreated       EventType = "RESERVATION_CREATED"
	EventStatusChanged EventType = "STATUS_CHANGED"
	EventConfirmed     EventType = "RESERVATION_CONFIRMED"
	EventCancelled     EventType = "RESERVATION_CANCELLED"
	EventPayment       EventType = "PAYMENT_RECEIVED"
	EventCodeIssued    EventType = "ACCESS_CODE_GENERATED"
	EventCodeRotated   EventType = "ACCESS_CODE_REGENERATED"
)

// Entry is a single append-only audit record. Entries are ordered by their
// ULID, which encodes creation time. Transitions carry the old and new value
// as structured fields so consumers never have to parse the message.
type Entry struct {
	id            ulid.ULID
	reservationID uuid.UUID
	eventType     EventType
	oldValue      *string
	newValue      *string
	message       string
	actor         string
	createdAt     time.Time
}

func newEntry(reservationID uuid.UUID, eventType EventType, oldValue, newValue *string, message, actor string, now time.Time) Entry {
	return Entry{
		id:            ulid.Make(),
		reservationID: reservationID,
		eventType:     eventType,
		oldValue:      oldValue,
		newValue:      newValue,
		message:       message,
		actor:         actor,
		createdAt:     now,
	}
}

func Reconstruct(id ulid.ULID, reservationID uuid.UUID, eventType EventType, oldValue, newValue *string, message, actor string, createdAt time.Time) Entry {
	return Entry{
		id:            id,
		reservationID: reservationID,
		eventType:     eventType,
		oldValue:      oldValue,
		newValue:      newValue,
		message:       message,
		actor:         actor,
		createdAt:     createdAt,
	}
}

func (e Entry) ID() ulid.ULID            { return e.id }
func (e Entry) ReservationID() uuid.UUID { return e.reservationID }
func (e Entry) EventType() EventType     { return e.eventType }
func (e Entry) OldValue() *string        { return e.oldValue }
func (e Entry) NewValue() *string        { return e.newValue }
func (e Entry) Message() string          { return e.message }
func (e Entry) Actor() string            { return e.actor }
func (e Entry) CreatedAt() time.Time     { return e.createdAt }

func Created(reservationID uuid.UUID, actor string, now time.Time) Entry {
	return newEntry(reservationID, EventCreated, nil, nil, "Reservation created", actor, now)
}

func StatusChanged(reservationID uuid.UUID, from, to, actor string, now time.Time) Entry {
	msg := fmt.Sprintf("Reservation status changed from %s to %s", from, to)
	return newEntry(reservationID, EventStatusChanged, &from, &to, msg, actor, now)
}

func Confirmed(reservationID uuid.UUID, actor string, now time.Time) Entry {
	return newEntry(reservationID, EventConfirmed, nil, nil, "Reservation confirmed.", actor, now)
}

func Cancelled(reservationID uuid.UUID, reason, actor string, now time.Time) Entry {
	msg := fmt.Sprintf("Reservation cancelled. Reason: %s", reason)
	return newEntry(reservationID, EventCancelled, nil, nil, msg, actor, now)
}

func PaymentReceived(reservationID uuid.UUID, paymentIntentID, actor string, now time.Time) Entry {
	msg := fmt.Sprintf("Payment received. Payment Intent ID: %s", paymentIntentID)
	return newEntry(reservationID, EventPayment, nil, &paymentIntentID, msg, actor, now)
}

func CodeIssued(reservationID uuid.UUID, code, actor string, now time.Time) Entry {
	msg := fmt.Sprintf("Access code generated: %s", code)
	return newEntry(reservationID, EventCodeIssued, nil, &code, msg, actor, now)
}

func CodeRotated(reservationID uuid.UUID, oldCode, newCode, actor string, now time.Time) Entry {
	msg := fmt.Sprintf("Access code regenerated from %s to %s", oldCode, newCode)
	return newEntry(reservationID, EventCodeRotated, &oldCode, &newCode, msg, actor, now)
}
