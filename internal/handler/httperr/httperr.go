package httperr

import (
	"errors"
	"net/http"

	"space-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code      string         `json:"code"`
		Message   string         `json:"message"`
		Variables map[string]any `json:"variables,omitempty"`
	} `json:"error"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, variables map[string]any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Error.Variables = variables

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps a usecase error onto the wire format. Coded errors keep their
// code and variables; anything unrecognized becomes a 500.
func Abort(c *gin.Context, err error) {
	status := statusFor(err)

	var coded *errs.CodedError
	if errors.As(err, &coded) {
		AbortWithError(c, status, err, coded.Code, coded.Message, coded.Variables)
		return
	}
	AbortWithError(c, status, err, "INTERNAL_ERROR", "Internal server error", nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrSpaceNotFound),
		errors.Is(err, errs.ErrReservationNotFound),
		errors.Is(err, errs.ErrAccessCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAvailabilityConflict),
		errors.Is(err, errs.ErrQuotaExceeded):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidStateTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrExternalIntegration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
