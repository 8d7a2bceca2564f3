package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	admindomain "github.com/passgate/passgate/internal/admin/domain"
	authdomain "github.com/passgate/passgate/internal/auth/domain"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
	paymentdomain "github.com/passgate/passgate/internal/payment/domain"
	"github.com/passgate/passgate/internal/payment/webhook"
	"github.com/passgate/passgate/internal/providers/image"
	"github.com/passgate/passgate/internal/providers/paystack"
	settingsdomain "github.com/passgate/passgate/internal/sitesettings/domain"
	ticketdomain "github.com/passgate/passgate/internal/ticket/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrServiceUnavailable = errors.New("service_unavailable")
	ErrTooManyRequests    = errors.New("too_many_requests")
)

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

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrTokenInvalid),
		errors.Is(err, authdomain.ErrTokenExpired),
		errors.Is(err, webhook.ErrInvalidSignature):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, ErrConflict),
		errors.Is(err, ticketdomain.ErrAlreadyCheckedIn),
		errors.Is(err, admindomain.ErrEmailTaken),
		errors.Is(err, admindomain.ErrSelfDelete),
		errors.Is(err, paymentdomain.ErrDuplicateReference),
		errors.Is(err, eventdomain.ErrHasTickets):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, paystack.ErrPaymentNotSuccessful):
		return http.StatusPaymentRequired, errorPayload{
			Type:    "payment_not_successful",
			Message: "payment was not successful",
		}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "too many requests, try again later",
		}
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, paystack.ErrNotConfigured),
		errors.Is(err, image.ErrNotConfigured):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable, try again later",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, ticketdomain.ErrAlreadyCheckedIn):
		return "ticket already checked in"
	case errors.Is(err, admindomain.ErrEmailTaken):
		return "email already in use"
	case errors.Is(err, admindomain.ErrSelfDelete):
		return "cannot delete your own account"
	case errors.Is(err, eventdomain.ErrHasTickets):
		return "event has issued tickets"
	default:
		return "conflict"
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, webhook.ErrMissingSignature),
		errors.Is(err, webhook.ErrMalformedPayload),
		errors.Is(err, eventdomain.ErrInvalidID),
		errors.Is(err, eventdomain.ErrInvalidName),
		errors.Is(err, eventdomain.ErrInvalidVenue),
		errors.Is(err, eventdomain.ErrInvalidDates),
		errors.Is(err, eventdomain.ErrInvalidPrice),
		errors.Is(err, admindomain.ErrInvalidID),
		errors.Is(err, admindomain.ErrInvalidName),
		errors.Is(err, admindomain.ErrInvalidEmail),
		errors.Is(err, admindomain.ErrWeakPassword),
		errors.Is(err, admindomain.ErrUnknownPermission),
		errors.Is(err, ticketdomain.ErrTooManyCodes),
		errors.Is(err, ticketdomain.ErrInvalidEventID):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, eventdomain.ErrNotFound),
		errors.Is(err, webhook.ErrUnknownEvent),
		errors.Is(err, ticketdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, admindomain.ErrNotFound),
		errors.Is(err, settingsdomain.ErrNotSeeded),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	if errors.Is(err, webhook.ErrMissingSignature) {
		return "missing_signature"
	}
	if errors.Is(err, webhook.ErrMalformedPayload) {
		return "malformed_payload"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if code == "invalid_request" {
		return "request"
	}
	return ""
}

// classifyErrorForLog feeds the request logger's error_type/error_code
// fields.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "server_error", payload.Type
	case status >= 400:
		return "client_error", payload.Type
	default:
		return "", ""
	}
}
