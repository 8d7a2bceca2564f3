package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	paystackSignatureHeader = "x-paystack-signature"
	maxWebhookBody          = 1 << 20
)

func (s *Server) handlePaystackWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	signature := c.GetHeader(paystackSignatureHeader)
	if err := s.webhook.VerifySignature(body, signature); err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.webhook.Process(c.Request.Context(), body)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := gin.H{"status": string(result.Status)}
	if result.Ticket != nil {
		resp["ticketCode"] = result.Ticket.TicketCode
	}
	c.JSON(http.StatusOK, resp)
}
