package response

import (
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SpaceResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	SpaceType             string    `json:"spaceType"`
	Status                string    `json:"status"`
	OwnerRateCents        int64     `json:"ownerRateCents"`
	TenantRateCents       int64     `json:"tenantRateCents"`
	CleaningFeeCents      int64     `json:"cleaningFeeCents"`
	DepositCents          int64     `json:"depositCents"`
	Currency              string    `json:"currency"`
	MinDurationDays       int       `json:"minDurationDays"`
	MaxDurationDays       int       `json:"maxDurationDays"`
	MaxAnnualReservations int       `json:"maxAnnualReservations"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

func FromSpaceView(sm *queries.SpaceView) *SpaceResponse {
	return &SpaceResponse{
		ID:                    sm.ID,
		Name:                  sm.Name,
		SpaceType:             sm.SpaceType,
		Status:                sm.Status,
		OwnerRateCents:        sm.OwnerRateCents,
		TenantRateCents:       sm.TenantRateCents,
		CleaningFeeCents:      sm.CleaningFeeCents,
		DepositCents:          sm.DepositCents,
		Currency:              sm.Currency,
		MinDurationDays:       sm.MinDurationDays,
		MaxDurationDays:       sm.MaxDurationDays,
		MaxAnnualReservations: sm.MaxAnnualReservations,
	}
}
