package response

import (
	"time"

	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID               uuid.UUID      `json:"id"`
	SpaceID          uuid.UUID      `json:"spaceId"`
	SpaceName        string         `json:"spaceName"`
	UnitID           uuid.UUID      `json:"unitId"`
	UserID           uuid.UUID      `json:"userId"`
	StartDate        string         `json:"startDate"`
	EndDate          string         `json:"endDate"`
	Status           string         `json:"status"`
	PaymentStatus    string         `json:"paymentStatus"`
	Price            PriceResponse  `json:"price"`
	PaymentIntentID  *string        `json:"paymentIntentId,omitempty"`
	PaymentExpiresAt *time.Time     `json:"paymentExpiresAt,omitempty"`
	CancelledAt      *time.Time     `json:"cancelledAt,omitempty"`
	CancelReason     *string        `json:"cancelReason,omitempty"`
	CancelledBy      *string        `json:"cancelledBy,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

type ReservationListResponse struct {
	ID         uuid.UUID `json:"id"`
	SpaceID    uuid.UUID `json:"spaceId"`
	SpaceName  string    `json:"spaceName"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"createdAt"`
}

type PriceResponse struct {
	NightlyRateCents int64  `json:"nightlyRateCents"`
	Days             int    `json:"days"`
	DaysTotalCents   int64  `json:"daysTotalCents"`
	CleaningFeeCents int64  `json:"cleaningFeeCents"`
	DepositCents     int64  `json:"depositCents"`
	PlatformFeeCents int64  `json:"platformFeeCents"`
	FixedFeeCents    int64  `json:"fixedFeeCents"`
	TotalCents       int64  `json:"totalCents"`
	Currency         string `json:"currency"`
}

type AuditEntryResponse struct {
	ID            string    `json:"id"`
	ReservationID uuid.UUID `json:"reservationId"`
	EventType     string    `json:"eventType"`
	OldValue      *string   `json:"oldValue,omitempty"`
	NewValue      *string   `json:"newValue,omitempty"`
	Message       string    `json:"message"`
	Actor         string    `json:"actor"`
	CreatedAt     time.Time `json:"createdAt"`
}

type AccessCodeValidationResponse struct {
	Valid bool `json:"valid"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:               rm.ID,
		SpaceID:          rm.SpaceID,
		SpaceName:        rm.SpaceName,
		UnitID:           rm.UnitID,
		UserID:           rm.UserID,
		StartDate:        rm.StartDate.Format(time.DateOnly),
		EndDate:          rm.EndDate.Format(time.DateOnly),
		Status:           rm.Status,
		PaymentStatus:    rm.PaymentStatus,
		Price:            FromPriceQuote(&rm.Price),
		PaymentIntentID:  rm.PaymentIntentID,
		PaymentExpiresAt: rm.PaymentExpiresAt,
		CancelledAt:      rm.CancelledAt,
		CancelReason:     rm.CancelReason,
		CancelledBy:      rm.CancelledBy,
		CreatedAt:        rm.CreatedAt,
		UpdatedAt:        rm.UpdatedAt,
	}
}

func FromReservationListItem(rm *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:         rm.ID,
		SpaceID:    rm.SpaceID,
		SpaceName:  rm.SpaceName,
		StartDate:  rm.StartDate.Format(time.DateOnly),
		EndDate:    rm.EndDate.Format(time.DateOnly),
		Status:     rm.Status,
		TotalCents: rm.TotalCents,
		Currency:   rm.Currency,
		CreatedAt:  rm.CreatedAt,
	}
}

func FromPriceQuote(q *queries.PriceQuote) PriceResponse {
	return PriceResponse{
		NightlyRateCents: q.NightlyRateCents,
		Days:             q.Days,
		DaysTotalCents:   q.DaysTotalCents,
		CleaningFeeCents: q.CleaningFeeCents,
		DepositCents:     q.DepositCents,
		PlatformFeeCents: q.PlatformFeeCents,
		FixedFeeCents:    q.FixedFeeCents,
		TotalCents:       q.TotalCents,
		Currency:         q.Currency,
	}
}

func FromAuditEntryView(e *queries.AuditEntryView) *AuditEntryResponse {
	return &AuditEntryResponse{
		ID:            e.ID,
		ReservationID: e.ReservationID,
		EventType:     e.EventType,
		OldValue:      e.OldValue,
		NewValue:      e.NewValue,
		Message:       e.Message,
		Actor:         e.Actor,
		CreatedAt:     e.CreatedAt,
	}
}
