package domain

import (
	"context"
	"time"
)

type Service interface {
	// Login verifies credentials and returns the claims plus a signed
	// session token.
	Login(ctx context.Context, req LoginRequest) (AdminClaims, string, time.Time, error)

	// Authenticate verifies a session token and returns its claims.
	Authenticate(token string) (AdminClaims, error)

	// Refresh re-signs claims for a full lifetime when the token is
	// inside the refresh window. It returns ok=false when no refresh is
	// due.
	Refresh(claims AdminClaims) (token string, expiresAt time.Time, ok bool)
}
