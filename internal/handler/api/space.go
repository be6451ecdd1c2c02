package api

import (
	"net/http"

	reqdto "space-booking/internal/handler/dto/request"
	resdto "space-booking/internal/handler/dto/response"
	"space-booking/internal/handler/httperr"
	"space-booking/internal/handler/middleware"
	"space-booking/internal/pkg/errs"
	"space-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SpaceHandler struct {
	queries queries.SpaceQueries
}

func NewSpaceHandler(qs queries.SpaceQueries) *SpaceHandler {
	return &SpaceHandler{queries: qs}
}

// @Summary List spaces
// @Tags spaces
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SpaceResponse
// @Router /spaces [get]
func (h *SpaceHandler) List(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	responses := make([]*resdto.SpaceResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, resdto.FromSpaceView(view))
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Get space
// @Tags spaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Space ID"
// @Success 200 {object} resdto.SpaceResponse
// @Failure 404 {object} httperr.Response
// @Router /spaces/{id} [get]
func (h *SpaceHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid space ID", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSpaceView(view))
}

// @Summary Check availability
// @Description Check a date range against every reservation in the space's shared group
// @Tags spaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Space ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /spaces/{id}/availability [get]
func (h *SpaceHandler) Availability(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid space ID", nil)
		return
	}

	var query reqdto.DateRangeQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "INVALID_REQUEST", "start and end query parameters are required", nil)
		return
	}
	start, end, err := query.Dates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, errs.CodeInvalidDateRange, "Dates must be formatted as YYYY-MM-DD", nil)
		return
	}

	available, err := h.queries.IsAvailable(c.Request.Context(), id, start, end)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailabilityResponse{Available: available})
}

// @Summary Preview price
// @Description Quote a stay without reserving anything
// @Tags spaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Space ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} resdto.PriceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /spaces/{id}/quote [get]
func (h *SpaceHandler) Quote(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	id, err := parseID(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "INVALID_REQUEST", "Invalid space ID", nil)
		return
	}

	var query reqdto.DateRangeQuery
	if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "INVALID_REQUEST", "start and end query parameters are required", nil)
		return
	}
	start, end, err := query.Dates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, errs.CodeInvalidDateRange, "Dates must be formatted as YYYY-MM-DD", nil)
		return
	}

	quote, err := h.queries.PreviewPrice(c.Request.Context(), id, start, end, actor.Privileged())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPriceQuote(quote))
}
