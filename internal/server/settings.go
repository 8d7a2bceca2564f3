package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settingsdomain "github.com/passgate/passgate/internal/sitesettings/domain"
)

func (s *Server) getSiteSettings(c *gin.Context) {
	settings, err := s.settings.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) updateSiteSettings(c *gin.Context) {
	var req settingsdomain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	settings, err := s.settings.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
