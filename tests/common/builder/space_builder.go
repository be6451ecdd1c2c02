//go:build unit || e2e

package builder

import (
	"space-booking/internal/domain/space"

	"github.com/google/uuid"
)

type SpaceBuilder struct {
	ID                    uuid.UUID
	Name                  string
	SpaceType             space.Type
	Status                space.Status
	OwnerRateCents        int64
	TenantRateCents       int64
	CleaningFeeCents      int64
	DepositCents          int64
	Currency              string
	MinDurationDays       int
	MaxDurationDays       int
	MaxAnnualReservations int
	UsedAnnualCount       int
	QuotaScope            space.QuotaScope
	SharedWith            []uuid.UUID
	DeviceID              *string
}

func NewSpaceBuilder() *SpaceBuilder {
	return &SpaceBuilder{
		ID:                    uuid.New(),
		Name:                  "Guest Room A",
		SpaceType:             space.TypeGuestRoom,
		Status:                space.StatusActive,
		OwnerRateCents:        2500,
		TenantRateCents:       4500,
		CleaningFeeCents:      3000,
		DepositCents:          10000,
		Currency:              "EUR",
		MinDurationDays:       1,
		MaxDurationDays:       14,
		MaxAnnualReservations: 10,
		UsedAnnualCount:       0,
		QuotaScope:            space.QuotaScopeGlobal,
	}
}

func (b *SpaceBuilder) With(mutate func(*SpaceBuilder)) *SpaceBuilder {
	mutate(b)
	return b
}

func (b *SpaceBuilder) BuildDomain() *space.Space {
	return space.Reconstruct(
		b.ID,
		b.Name,
		b.SpaceType,
		b.Status,
		b.OwnerRateCents,
		b.TenantRateCents,
		b.CleaningFeeCents,
		b.DepositCents,
		b.Currency,
		b.MinDurationDays,
		b.MaxDurationDays,
		b.MaxAnnualReservations,
		b.UsedAnnualCount,
		b.QuotaScope,
		b.SharedWith,
		b.DeviceID,
	)
}
