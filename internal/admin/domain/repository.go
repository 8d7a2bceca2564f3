package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, admin *Admin) error
	Update(ctx context.Context, db *gorm.DB, admin *Admin) error
	ReplacePermissions(ctx context.Context, db *gorm.DB, admin *Admin, perms []Permission) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Admin, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Admin, error)
	List(ctx context.Context, db *gorm.DB) ([]Admin, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)

	ListPermissions(ctx context.Context, db *gorm.DB) ([]Permission, error)
	FindPermissionsByNames(ctx context.Context, db *gorm.DB, names []string) ([]Permission, error)
}
