package api

import (
	"net/http"

	reqdto "space-booking/internal/handler/dto/request"
	resdto "space-booking/internal/handler/dto/response"
	"space-booking/internal/handler/httperr"
	"space-booking/internal/handler/middleware"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	codes    commands.AccessCodeCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	codes commands.AccessCodeCommands,
	qs queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		codes:    codes,
		queries:  qs,
	}
}

// @Summary Create reservation
// @Description Reserve a space for an inclusive date range
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}
	start, end, err := req.Dates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, errs.CodeInvalidDateRange, "Dates must be formatted as YYYY-MM-DD", nil)
		return
	}

	created, err := h.commands.Create(c.Request.Context(), actor, commands.CreateReservationInput{
		SpaceID:   req.SpaceID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, created.ID())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary List my reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.queries.ListByUser(c.Request.Context(), actor.UserID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	responses := make([]*resdto.ReservationListResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, resdto.FromReservationListItem(item))
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary List reservations for my unit
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Router /reservations/unit [get]
func (h *ReservationHandler) ListByUnit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.queries.ListByUnit(c.Request.Context(), actor.UnitID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	responses := make([]*resdto.ReservationListResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, resdto.FromReservationListItem(item))
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	id, err := parseID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid reservation ID", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Reservation audit trail
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.AuditEntryResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/audit [get]
func (h *ReservationHandler) ListAudit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	id, err := parseID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid reservation ID", nil)
		return
	}

	entries, err := h.queries.ListAudit(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	responses := make([]*resdto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, resdto.FromAuditEntryView(entry))
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Cancel reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest true "Cancellation reason"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	id, err := parseID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid reservation ID", nil)
		return
	}

	var req reqdto.CancelReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}

	if err := h.commands.Cancel(c.Request.Context(), id, actor, req.TrimmedReason()); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Retry payment
// @Description Restart the payment window for a pending or failed payment
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/retry-payment [post]
func (h *ReservationHandler) RetryPayment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	id, err := parseID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid reservation ID", nil)
		return
	}

	if err := h.commands.RetryPayment(c.Request.Context(), id, actor); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Regenerate access code
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/access-code/regenerate [post]
func (h *ReservationHandler) RegenerateCode(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	id, err := parseID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid reservation ID", nil)
		return
	}

	code, err := h.codes.Regenerate(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code.Code()})
}

// @Summary Validate access code
// @Description Device-facing check that a presented code currently opens the space
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ValidateCodeRequest true "Code to check"
// @Success 200 {object} resdto.AccessCodeValidationResponse
// @Router /reservations/{id}/access-code/validate [post]
func (h *ReservationHandler) ValidateCode(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid reservation ID", nil)
		return
	}

	var req reqdto.ValidateCodeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "INVALID_REQUEST", "Invalid request format", nil)
		return
	}

	valid, err := h.codes.Validate(c.Request.Context(), id, req.Code)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AccessCodeValidationResponse{Valid: valid})
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}
