package server

import (
	"errors"
	"net/http"

	clientdomain "github.com/finhive/gstdesk/internal/client/domain"
	filingdomain "github.com/finhive/gstdesk/internal/filing/domain"
	gstr1domain "github.com/finhive/gstdesk/internal/gstr1/domain"
	invoicedomain "github.com/finhive/gstdesk/internal/invoice/domain"
	"github.com/gin-gonic/gin"
)

// ErrInvalidRequest covers malformed request bodies and query strings
// before a domain error can be assigned.
var ErrInvalidRequest = errors.New("invalid_request")

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, clientdomain.ErrInvalidName),
		errors.Is(err, clientdomain.ErrInvalidGstin),
		errors.Is(err, clientdomain.ErrInvalidStateCode),
		errors.Is(err, clientdomain.ErrInvalidFrequency),
		errors.Is(err, clientdomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidClient),
		errors.Is(err, invoicedomain.ErrInvalidPeriod),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrMissingWorkbook),
		errors.Is(err, invoicedomain.ErrEmptyWorkbook),
		errors.Is(err, invoicedomain.ErrTooManyRows),
		errors.Is(err, gstr1domain.ErrInvalidClient),
		errors.Is(err, gstr1domain.ErrInvalidPeriod),
		errors.Is(err, gstr1domain.ErrInvalidID),
		errors.Is(err, filingdomain.ErrInvalidPeriod):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}

	case errors.Is(err, clientdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrClientNotFound),
		errors.Is(err, gstr1domain.ErrNotFound),
		errors.Is(err, gstr1domain.ErrClientNotFound),
		errors.Is(err, filingdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}

	case errors.Is(err, clientdomain.ErrGstinExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}

	case errors.Is(err, invoicedomain.ErrNoInvoices),
		errors.Is(err, gstr1domain.ErrNoValidInvoices),
		errors.Is(err, gstr1domain.ErrPeriodHasErrors),
		errors.Is(err, gstr1domain.ErrPeriodNotValidated),
		errors.Is(err, filingdomain.ErrNotGenerated):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "precondition_failed",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}
