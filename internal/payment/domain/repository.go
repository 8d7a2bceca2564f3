package domain

import (
	"context"

	"github.com/passgate/passgate/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Payment, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Page, search string) ([]Payment, int64, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	SumAmount(ctx context.Context, db *gorm.DB) (string, error)
}
