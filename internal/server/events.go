package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	eventdomain "github.com/passgate/passgate/internal/event/domain"
)

func (s *Server) listPublicEvents(c *gin.Context) {
	events, err := s.events.ListPublic(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) listFeaturedEvents(c *gin.Context) {
	events, err := s.events.ListFeatured(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) getPublicEvent(c *gin.Context) {
	event, err := s.events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if event.Status == eventdomain.StatusDraft || event.Status == eventdomain.StatusCancelled {
		AbortWithError(c, eventdomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) listEvents(c *gin.Context) {
	events, err := s.events.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) getEvent(c *gin.Context) {
	event, err := s.events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) createEvent(c *gin.Context) {
	var req eventdomain.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	event, err := s.events.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) updateEvent(c *gin.Context) {
	var req eventdomain.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	event, err := s.events.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) deleteEvent(c *gin.Context) {
	if err := s.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// sweepEventStatuses forces a status sweep, bypassing the throttle used
// on regular traffic.
func (s *Server) sweepEventStatuses(c *gin.Context) {
	result, err := s.events.SweepStatuses(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
