package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/passgate/passgate/internal/providers/pdf"
	ticketdomain "github.com/passgate/passgate/internal/ticket/domain"
)

type validateTicketRequest struct {
	Code string `json:"code"`
}

type bulkValidateRequest struct {
	Codes []string `json:"codes"`
}

func (s *Server) validateTicket(c *gin.Context) {
	var req validateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		AbortWithError(c, newValidationError("code", "required", "code is required"))
		return
	}

	adminID, ok := s.actorID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	result, err := s.tickets.Validate(c.Request.Context(), req.Code, adminID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(checkinHTTPStatus(result.Status), result)
}

func (s *Server) bulkValidateTickets(c *gin.Context) {
	var req bulkValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(req.Codes) == 0 {
		AbortWithError(c, newValidationError("codes", "required", "codes are required"))
		return
	}

	adminID, ok := s.actorID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	result, err := s.tickets.BulkValidate(c.Request.Context(), req.Codes, adminID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) lookupTicket(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		AbortWithError(c, newValidationError("code", "required", "code is required"))
		return
	}

	ticket, err := s.tickets.Lookup(c.Request.Context(), code)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// renderTicket serves the ticket document for a code so buyers can
// re-download it after the original delivery email is gone.
func (s *Server) renderTicket(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		AbortWithError(c, newValidationError("code", "required", "code is required"))
		return
	}

	ticket, err := s.tickets.Lookup(c.Request.Context(), code)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if ticket.Event == nil {
		AbortWithError(c, ticketdomain.ErrNotFound)
		return
	}

	rendered, err := s.pdf.RenderTicket(c.Request.Context(), pdf.TicketData{
		EventName:  ticket.Event.Name,
		Venue:      ticket.Event.Venue,
		Date:       ticket.Event.StartDate.Format("Mon, 2 Jan 2006 15:04"),
		TicketCode: ticket.TicketCode,
		Amount:     ticket.Event.Price.StringFixed(2),
		Email:      ticket.Email,
		QRDataURL:  ticket.QRCodeURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+rendered.Filename+`"`)
	c.Data(http.StatusOK, rendered.ContentType, rendered.Data)
}

func (s *Server) scanStats(c *gin.Context) {
	stats, err := s.tickets.ScanStats(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) checkinList(c *gin.Context) {
	tickets, err := s.tickets.CheckinList(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (s *Server) listEventTickets(c *gin.Context) {
	tickets, err := s.tickets.ListByEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// actorID resolves the authenticated admin's snowflake ID from the
// session claims.
func (s *Server) actorID(c *gin.Context) (snowflake.ID, bool) {
	claims, ok := claimsFrom(c)
	if !ok {
		return 0, false
	}
	id, err := snowflake.ParseString(claims.AdminID)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func checkinHTTPStatus(status ticketdomain.CheckinStatus) int {
	switch status {
	case ticketdomain.CheckinSuccess:
		return http.StatusOK
	case ticketdomain.CheckinAlreadyChecked:
		return http.StatusConflict
	case ticketdomain.CheckinInvalidTicket:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
