package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/passgate/passgate/internal/payment/domain"
	"github.com/passgate/passgate/internal/providers/paystack"
	"github.com/shopspring/decimal"
)

type initiatePaymentRequest struct {
	EventID string `json:"eventId"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

func (s *Server) initiatePayment(c *gin.Context) {
	var req initiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Email == "" {
		AbortWithError(c, newValidationError("email", "required", "email is required"))
		return
	}

	event, err := s.events.GetByID(c.Request.Context(), req.EventID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	amountMinor := event.Price.Mul(decimal.NewFromInt(100)).IntPart()
	resp, err := s.paystack.Initiate(c.Request.Context(), paystack.InitiateRequest{
		Email:       req.Email,
		AmountMinor: amountMinor,
		CallbackURL: s.cfg.BaseURL + "/payment/callback",
		Metadata: map[string]any{
			"eventId": event.ID.String(),
			"phone":   req.Phone,
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authorizationUrl": resp.AuthorizationURL,
		"accessCode":       resp.AccessCode,
		"reference":        resp.Reference,
	})
}

// verifyPayment confirms the transaction with the provider and then
// returns the locally issued ticket. A 404 after a successful provider
// verification means the webhook has not landed yet; the success page
// polls until the ticket exists. Issuance itself always goes through the
// webhook so the buyer polling here cannot race a second issuance.
func (s *Server) verifyPayment(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("reference"))
	if reference == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	if _, err := s.paystack.Verify(c.Request.Context(), reference); err != nil {
		AbortWithError(c, err)
		return
	}

	payment, err := s.payments.GetByReference(c.Request.Context(), reference)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	ticket, err := s.tickets.ByPayment(c.Request.Context(), payment.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (s *Server) listPayments(c *gin.Context) {
	var req paymentdomain.ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.payments.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
