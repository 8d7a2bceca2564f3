package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
)

type dashboardResponse struct {
	TotalEvents      int    `json:"totalEvents"`
	LiveEvents       int    `json:"liveEvents"`
	UpcomingEvents   int    `json:"upcomingEvents"`
	TotalPayments    int64  `json:"totalPayments"`
	TotalRevenue     string `json:"totalRevenue"`
	TotalTickets     int64  `json:"totalTickets"`
	CheckedInTickets int64  `json:"checkedInTickets"`
	TotalAdmins      int64  `json:"totalAdmins"`
}

func (s *Server) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	events, err := s.events.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := dashboardResponse{TotalEvents: len(events)}
	for _, e := range events {
		switch e.Status {
		case eventdomain.StatusLive:
			resp.LiveEvents++
		case eventdomain.StatusUpcoming:
			resp.UpcomingEvents++
		}
	}

	if resp.TotalPayments, err = s.payments.Count(ctx); err != nil {
		AbortWithError(c, err)
		return
	}
	if resp.TotalRevenue, err = s.payments.TotalRevenue(ctx); err != nil {
		AbortWithError(c, err)
		return
	}
	if resp.TotalTickets, err = s.tickets.Count(ctx); err != nil {
		AbortWithError(c, err)
		return
	}
	if resp.CheckedInTickets, err = s.tickets.CheckedInCount(ctx); err != nil {
		AbortWithError(c, err)
		return
	}
	if resp.TotalAdmins, err = s.admins.Count(ctx); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
