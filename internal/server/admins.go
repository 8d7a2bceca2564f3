package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	admindomain "github.com/passgate/passgate/internal/admin/domain"
	"go.uber.org/zap"
)

func (s *Server) listAdmins(c *gin.Context) {
	admins, err := s.admins.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

func (s *Server) getAdmin(c *gin.Context) {
	admin, err := s.admins.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (s *Server) createAdmin(c *gin.Context) {
	var req admindomain.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	admin, err := s.admins.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.log.Info("admin created",
		zap.String("admin_id", admin.ID.String()),
		zap.String("email", admin.Email),
	)
	c.JSON(http.StatusCreated, admin)
}

func (s *Server) updateAdmin(c *gin.Context) {
	var req admindomain.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	admin, err := s.admins.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (s *Server) deleteAdmin(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.admins.Delete(c.Request.Context(), c.Param("id"), claims.AdminID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) listPermissions(c *gin.Context) {
	permissions, err := s.admins.ListPermissions(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"permissions": permissions})
}
