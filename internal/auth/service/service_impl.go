package service

import (
	"context"
	"errors"
	"time"

	admindomain "github.com/passgate/passgate/internal/admin/domain"
	"github.com/passgate/passgate/internal/auth/domain"
	"github.com/passgate/passgate/internal/auth/password"
	"github.com/passgate/passgate/internal/auth/token"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log    *zap.Logger
	Signer *token.Signer
	Admins admindomain.Service
}

type Service struct {
	log    *zap.Logger
	signer *token.Signer
	admins admindomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:    p.Log.Named("auth.service"),
		signer: p.Signer,
		admins: p.Admins,
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.AdminClaims, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, admindomain.ErrNotFound) || errors.Is(err, admindomain.ErrInvalidEmail) {
			return domain.AdminClaims{}, "", time.Time{}, domain.ErrInvalidCredentials
		}
		return domain.AdminClaims{}, "", time.Time{}, err
	}

	if !password.Verify(req.Password, admin.PasswordHash) {
		s.log.Warn("login rejected", zap.String("email", admin.Email))
		return domain.AdminClaims{}, "", time.Time{}, domain.ErrInvalidCredentials
	}

	claims := domain.AdminClaims{
		AdminID:     admin.ID.String(),
		Email:       admin.Email,
		Permissions: admin.PermissionSet().Strings(),
	}
	signed, expiresAt, err := s.signer.Sign(claims)
	if err != nil {
		return domain.AdminClaims{}, "", time.Time{}, err
	}
	claims.ExpiresAt = expiresAt

	s.log.Info("admin logged in", zap.String("admin_id", claims.AdminID))
	return claims, signed, expiresAt, nil
}

func (s *Service) Authenticate(tokenStr string) (domain.AdminClaims, error) {
	return s.signer.Verify(tokenStr)
}

func (s *Service) Refresh(claims domain.AdminClaims) (string, time.Time, bool) {
	if !s.signer.ShouldRefresh(claims) {
		return "", time.Time{}, false
	}
	signed, expiresAt, err := s.signer.Sign(claims)
	if err != nil {
		s.log.Warn("session refresh failed", zap.Error(err))
		return "", time.Time{}, false
	}
	return signed, expiresAt, true
}
