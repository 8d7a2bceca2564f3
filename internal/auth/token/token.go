package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/passgate/passgate/internal/auth/domain"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/config"
)

// sessionClaims duplicates the expiry inside the payload so it is checked
// independently of the library's registered-claim validation.
type sessionClaims struct {
	AdminID     string   `json:"adminId"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
	ExpiresAt   int64    `json:"expiresAt"`
	jwt.RegisteredClaims
}

// Signer signs and verifies HS256 session tokens.
type Signer struct {
	secret  []byte
	ttl     time.Duration
	refresh time.Duration
	clock   clock.Clock
}

func NewSigner(cfg config.Config, clk clock.Clock) (*Signer, error) {
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}
	return &Signer{
		secret:  []byte(cfg.SessionSecret),
		ttl:     cfg.SessionTTL,
		refresh: cfg.SessionRefresh,
		clock:   clk,
	}, nil
}

// Sign issues a token for the claims with a fresh expiry of now+ttl.
func (s *Signer) Sign(claims domain.AdminClaims) (string, time.Time, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.ttl)

	jwtClaims := sessionClaims{
		AdminID:     claims.AdminID,
		Email:       claims.Email,
		Permissions: claims.Permissions,
		ExpiresAt:   expiresAt.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.AdminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the signature, the registered expiry, and the embedded
// expiresAt payload field.
func (s *Signer) Verify(tokenStr string) (domain.AdminClaims, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.AdminClaims{}, domain.ErrTokenExpired
		}
		return domain.AdminClaims{}, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return domain.AdminClaims{}, domain.ErrTokenInvalid
	}

	expiresAt := time.Unix(claims.ExpiresAt, 0).UTC()
	if !s.clock.Now().Before(expiresAt) {
		return domain.AdminClaims{}, domain.ErrTokenExpired
	}

	return domain.AdminClaims{
		AdminID:     claims.AdminID,
		Email:       claims.Email,
		Permissions: claims.Permissions,
		ExpiresAt:   expiresAt,
	}, nil
}

// ShouldRefresh reports whether the token is inside the refresh window.
func (s *Signer) ShouldRefresh(claims domain.AdminClaims) bool {
	return claims.ExpiresAt.Sub(s.clock.Now()) < s.refresh
}
