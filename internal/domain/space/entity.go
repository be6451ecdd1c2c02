package space

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInactive         = errors.New("space is not active")
	ErrDurationTooShort = errors.New("stay is shorter than the minimum duration")
	ErrDurationTooLong  = errors.New("stay is longer than the maximum duration")
)

type Type string

const (
	TypeGuestRoom  Type = "guest_room"
	TypeParking    Type = "parking"
	TypeCoworking  Type = "coworking"
	TypeCommonRoom Type = "common_room"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeGuestRoom, TypeParking, TypeCoworking, TypeCommonRoom:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// QuotaScope controls how the annual reservation ceiling is counted:
// a single shared counter on the space, or one count per reserving unit.
type QuotaScope string

const (
	QuotaScopeGlobal QuotaScope = "global"
	QuotaScopeUnit   QuotaScope = "unit"
)

type Space struct {
	id                    uuid.UUID
	name                  string
	spaceType             Type
	status                Status
	ownerRateCents        int64
	tenantRateCents       int64
	cleaningFeeCents      int64
	depositCents          int64
	currency              string
	minDurationDays       int
	maxDurationDays       int
	maxAnnualReservations int
	usedAnnualCount       int
	quotaScope            QuotaScope
	sharedWith            []uuid.UUID
	deviceID              *string
}

func Reconstruct(
	id uuid.UUID,
	name string,
	spaceType Type,
	status Status,
	ownerRateCents, tenantRateCents, cleaningFeeCents, depositCents int64,
	currency string,
	minDurationDays, maxDurationDays int,
	maxAnnualReservations, usedAnnualCount int,
	quotaScope QuotaScope,
	sharedWith []uuid.UUID,
	deviceID *string,
) *Space {
	return &Space{
		id:                    id,
		name:                  name,
		spaceType:             spaceType,
		status:                status,
		ownerRateCents:        ownerRateCents,
		tenantRateCents:       tenantRateCents,
		cleaningFeeCents:      cleaningFeeCents,
		depositCents:          depositCents,
		currency:              currency,
		minDurationDays:       minDurationDays,
		maxDurationDays:       maxDurationDays,
		maxAnnualReservations: maxAnnualReservations,
		usedAnnualCount:       usedAnnualCount,
		quotaScope:            quotaScope,
		sharedWith:            sharedWith,
		deviceID:              deviceID,
	}
}

func (s *Space) ID() uuid.UUID              { return s.id }
func (s *Space) Name() string               { return s.name }
func (s *Space) Type() Type                 { return s.spaceType }
func (s *Space) Status() Status             { return s.status }
func (s *Space) OwnerRateCents() int64      { return s.ownerRateCents }
func (s *Space) TenantRateCents() int64     { return s.tenantRateCents }
func (s *Space) CleaningFeeCents() int64    { return s.cleaningFeeCents }
func (s *Space) DepositCents() int64        { return s.depositCents }
func (s *Space) Currency() string           { return s.currency }
func (s *Space) MinDurationDays() int       { return s.minDurationDays }
func (s *Space) MaxDurationDays() int       { return s.maxDurationDays }
func (s *Space) MaxAnnualReservations() int { return s.maxAnnualReservations }
func (s *Space) UsedAnnualCount() int       { return s.usedAnnualCount }
func (s *Space) QuotaScope() QuotaScope     { return s.quotaScope }
func (s *Space) SharedWith() []uuid.UUID    { return s.sharedWith }
func (s *Space) DeviceID() *string          { return s.deviceID }

func (s *Space) IsActive() bool {
	return s.status == StatusActive
}

// NightlyRateCents picks the rate for the reserving party. Privileged actors
// (owners, board members) pay the owner rate, everybody else the tenant rate.
func (s *Space) NightlyRateCents(privileged bool) int64 {
	if privileged {
		return s.ownerRateCents
	}
	return s.tenantRateCents
}

// ValidateDuration checks the number of reserved days against the space's
// configured bounds. A zero bound disables the corresponding check.
func (s *Space) ValidateDuration(days int) error {
	if s.minDurationDays > 0 && days < s.minDurationDays {
		return ErrDurationTooShort
	}
	if s.maxDurationDays > 0 && days > s.maxDurationDays {
		return ErrDurationTooLong
	}
	return nil
}

// HasAnnualQuota reports whether annual reservation counting applies at all.
func (s *Space) HasAnnualQuota() bool {
	return s.maxAnnualReservations > 0
}

// QuotaAllows checks the ceiling against the relevant count: the derived
// per-unit count for unit scope, otherwise the space's own counter.
func (s *Space) QuotaAllows(unitCount int) bool {
	if !s.HasAnnualQuota() {
		return true
	}
	if s.quotaScope == QuotaScopeUnit {
		return unitCount < s.maxAnnualReservations
	}
	return s.usedAnnualCount < s.maxAnnualReservations
}

// IncrementAnnualCount bumps the shared counter; per-unit scope derives its
// count from reservations, so the counter is left alone.
func (s *Space) IncrementAnnualCount() {
	if s.quotaScope == QuotaScopeGlobal {
		s.usedAnnualCount++
	}
}

// DecrementAnnualCount releases a slot on the shared counter, clamped at zero.
func (s *Space) DecrementAnnualCount() {
	if s.quotaScope == QuotaScopeGlobal && s.usedAnnualCount > 0 {
		s.usedAnnualCount--
	}
}
