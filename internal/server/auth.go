package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/passgate/passgate/internal/auth/domain"
	"go.uber.org/zap"
)

type meResponse struct {
	AdminID     string   `json:"adminId"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

func (s *Server) login(c *gin.Context) {
	if !s.loginAttempts.allow(c.ClientIP()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	claims, token, expiresAt, err := s.auth.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, token, expiresAt)
	s.log.Info("admin logged in",
		zap.String("admin_id", claims.AdminID),
		zap.String("email", claims.Email),
	)

	c.JSON(http.StatusOK, meResponse{
		AdminID:     claims.AdminID,
		Email:       claims.Email,
		Permissions: claims.PermissionSet().Strings(),
	})
}

func (s *Server) logout(c *gin.Context) {
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) me(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, meResponse{
		AdminID:     claims.AdminID,
		Email:       claims.Email,
		Permissions: claims.PermissionSet().Strings(),
	})
}
