package accesscode

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
)

const (
	codeCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	codeLength     = 6
)

// minValidity keeps a freshly issued code usable for at least an hour even
// when the stay ends sooner.
const minValidity = time.Hour

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type AccessCode struct {
	id            uuid.UUID
	reservationID uuid.UUID
	spaceID       uuid.UUID
	code          string
	status        Status
	validUntil    time.Time
	deviceRef     *string
	regeneratedBy *string
	regeneratedAt *time.Time
	createdAt     time.Time
}

// NewAccessCode issues a fresh random code valid until the end of the stay's
// last day, or an hour from now if that is later.
func NewAccessCode(reservationID, spaceID uuid.UUID, stayEnd, now time.Time) (*AccessCode, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	return &AccessCode{
		id:            uuid.New(),
		reservationID: reservationID,
		spaceID:       spaceID,
		code:          code,
		status:        StatusActive,
		validUntil:    validUntil(stayEnd, now),
		createdAt:     now,
	}, nil
}

func Reconstruct(
	id, reservationID, spaceID uuid.UUID,
	code string,
	status Status,
	validUntil time.Time,
	deviceRef *string,
	regeneratedBy *string,
	regeneratedAt *time.Time,
	createdAt time.Time,
) *AccessCode {
	return &AccessCode{
		id:            id,
		reservationID: reservationID,
		spaceID:       spaceID,
		code:          code,
		status:        status,
		validUntil:    validUntil,
		deviceRef:     deviceRef,
		regeneratedBy: regeneratedBy,
		regeneratedAt: regeneratedAt,
		createdAt:     createdAt,
	}
}

func (a *AccessCode) ID() uuid.UUID             { return a.id }
func (a *AccessCode) ReservationID() uuid.UUID  { return a.reservationID }
func (a *AccessCode) SpaceID() uuid.UUID        { return a.spaceID }
func (a *AccessCode) Code() string              { return a.code }
func (a *AccessCode) Status() Status            { return a.status }
func (a *AccessCode) ValidUntil() time.Time     { return a.validUntil }
func (a *AccessCode) DeviceRef() *string        { return a.deviceRef }
func (a *AccessCode) RegeneratedBy() *string    { return a.regeneratedBy }
func (a *AccessCode) RegeneratedAt() *time.Time { return a.regeneratedAt }
func (a *AccessCode) CreatedAt() time.Time      { return a.createdAt }

func (a *AccessCode) IsActive() bool {
	return a.status == StatusActive
}

// IsValidAt reports whether the code opens the door at the given instant.
func (a *AccessCode) IsValidAt(now time.Time) bool {
	return a.status == StatusActive && !now.After(a.validUntil)
}

// AttachDevice records the gateway's identifier for the provisioned code so
// it can be revoked later.
func (a *AccessCode) AttachDevice(ref string) {
	a.deviceRef = &ref
}

func (a *AccessCode) Deactivate() {
	a.status = StatusInactive
}

// Regenerate replaces the code value in place, keeping identity and validity,
// and records who requested the rotation and when.
func (a *AccessCode) Regenerate(by string, now time.Time) (old string, err error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	old = a.code
	a.code = code
	a.regeneratedBy = &by
	a.regeneratedAt = &now
	return old, nil
}

func validUntil(stayEnd, now time.Time) time.Time {
	endOfDay := time.Date(stayEnd.Year(), stayEnd.Month(), stayEnd.Day(), 23, 59, 59, 0, time.UTC)
	floor := now.Add(minValidity)
	if endOfDay.After(floor) {
		return endOfDay
	}
	return floor
}

func generateCode() (string, error) {
	max := big.NewInt(int64(len(codeCharacters)))
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeCharacters[n.Int64()]
	}
	return string(buf), nil
}
