package domain

import (
	"errors"
	"time"

	"github.com/passgate/passgate/internal/permission"
)

// AdminClaims is the payload carried by the session cookie.
type AdminClaims struct {
	AdminID     string    `json:"adminId"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (c AdminClaims) PermissionSet() permission.Set {
	return permission.NewSet(c.Permissions)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrTokenInvalid       = errors.New("session_token_invalid")
	ErrTokenExpired       = errors.New("session_token_expired")
)
