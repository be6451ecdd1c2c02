// Package payment bridges to the payment provider. The booking flow never
// charges synchronously: payment outcomes arrive through webhooks, so the
// outbound surface is intent creation, settlement checks and refunds.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"space-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

// DeferredGateway mints local session references and leaves settlement to
// the provider's asynchronous flow. Swap in a real provider client here once
// one is contracted.
type DeferredGateway struct{}

func NewDeferredGateway() *DeferredGateway {
	return &DeferredGateway{}
}

func (g *DeferredGateway) CreateIntent(_ context.Context, res *reservation.Reservation) (string, error) {
	intentID := fmt.Sprintf("pi_%s", uuid.NewString())
	slog.Info("payment session opened",
		"reservation_id", res.ID(),
		"payment_intent_id", intentID,
		"amount_cents", res.Price().Total.Cents())
	return intentID, nil
}

// VerifySuccess always answers no: without a provider query API the webhook
// is the single source of settlement truth.
func (g *DeferredGateway) VerifySuccess(_ context.Context, _ *reservation.Reservation) (bool, error) {
	return false, nil
}

func (g *DeferredGateway) Refund(_ context.Context, paymentIntentID string) error {
	slog.Info("refund requested", "payment_intent_id", paymentIntentID)
	return nil
}
