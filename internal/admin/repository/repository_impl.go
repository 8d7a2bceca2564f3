package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/admin/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, admin *domain.Admin) error {
	return db.WithContext(ctx).Create(admin).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, admin *domain.Admin) error {
	return db.WithContext(ctx).Omit("Permissions").Save(admin).Error
}

func (r *repo) ReplacePermissions(ctx context.Context, db *gorm.DB, admin *domain.Admin, perms []domain.Permission) error {
	return db.WithContext(ctx).Model(admin).Association("Permissions").Replace(perms)
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM admin_permissions WHERE admin_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Admin{}, "id = ?", id).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Admin, error) {
	var admin domain.Admin
	err := db.WithContext(ctx).
		Preload("Permissions").
		First(&admin, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Admin, error) {
	var admin domain.Admin
	err := db.WithContext(ctx).
		Preload("Permissions").
		First(&admin, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Admin, error) {
	var admins []domain.Admin
	err := db.WithContext(ctx).
		Preload("Permissions").
		Order("created_at asc").
		Find(&admins).Error
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Admin{}).Count(&count).Error
	return count, err
}

func (r *repo) ListPermissions(ctx context.Context, db *gorm.DB) ([]domain.Permission, error) {
	var perms []domain.Permission
	err := db.WithContext(ctx).Order("name asc").Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *repo) FindPermissionsByNames(ctx context.Context, db *gorm.DB, names []string) ([]domain.Permission, error) {
	var perms []domain.Permission
	err := db.WithContext(ctx).Where("name IN ?", names).Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}
