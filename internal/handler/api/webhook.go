package api

import (
	"net/http"

	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/handler/httperr"
	"space-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives settlement callbacks from the payment provider.
// The provider retries on non-2xx responses, so every event must be safe to
// replay.
type WebhookHandler struct {
	commands commands.ReservationCommands
}

func NewWebhookHandler(cmds commands.ReservationCommands) *WebhookHandler {
	return &WebhookHandler{commands: cmds}
}

// @Summary Payment webhook
// @Description Apply a payment provider event to the reservation lifecycle
// @Tags webhooks
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentWebhookRequest true "Payment event"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /webhooks/payment [post]
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}

	ctx := c.Request.Context()
	var err error
	switch req.Event {
	case reqdto.PaymentEventSucceeded, reqdto.PaymentEventSessionCompleted:
		_, err = h.commands.Confirm(ctx, req.ReservationID, req.PaymentIntentID)
	case reqdto.PaymentEventFailed:
		err = h.commands.MarkPaymentFailed(ctx, req.ReservationID)
	case reqdto.PaymentEventRefunded:
		err = h.commands.MarkRefunded(ctx, req.ReservationID)
	case reqdto.PaymentEventSessionExpired:
		err = h.commands.Expire(ctx, req.ReservationID, "Payment session expired")
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event type"})
		return
	}
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "processed"})
}
