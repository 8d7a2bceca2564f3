package service

import (
	"context"
	"strings"

	"github.com/passgate/passgate/internal/payment/domain"
	"github.com/passgate/passgate/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("payment.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentsRequest) (domain.ListPaymentsResponse, error) {
	page := req.Page.Normalize()
	search := strings.TrimSpace(req.Search)

	payments, total, err := s.repo.List(ctx, s.db, page, search)
	if err != nil {
		return domain.ListPaymentsResponse{}, err
	}
	return domain.ListPaymentsResponse{
		Payments: payments,
		PageInfo: pagination.BuildPageInfo(total, page),
	}, nil
}

func (s *Service) GetByReference(ctx context.Context, reference string) (domain.Payment, error) {
	payment, err := s.repo.FindByReference(ctx, s.db, strings.TrimSpace(reference))
	if err != nil {
		return domain.Payment{}, err
	}
	if payment == nil {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *payment, nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, s.db)
}

func (s *Service) TotalRevenue(ctx context.Context) (string, error) {
	return s.repo.SumAmount(ctx, s.db)
}
