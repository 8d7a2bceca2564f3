package repository

import (
	"context"
	"errors"

	"github.com/passgate/passgate/internal/payment/domain"
	"github.com/passgate/passgate/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).First(&payment, "reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Page, search string) ([]domain.Payment, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Payment{}).
		Joins("LEFT JOIN events ON events.id = payments.event_id")
	if search != "" {
		like := "%" + search + "%"
		stmt = stmt.Where(
			"payments.email LIKE ? OR payments.reference LIKE ? OR events.name LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	err := page.Apply(stmt).
		Preload("Event").
		Order("payments.created_at desc").
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Payment{}).Count(&count).Error
	return count, err
}

func (r *repo) SumAmount(ctx context.Context, db *gorm.DB) (string, error) {
	var total *string
	err := db.WithContext(ctx).Model(&domain.Payment{}).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil {
		return "0", err
	}
	if total == nil {
		return "0", nil
	}
	return *total, nil
}
