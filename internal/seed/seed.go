package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	admindomain "github.com/passgate/passgate/internal/admin/domain"
	"github.com/passgate/passgate/internal/auth/password"
	"github.com/passgate/passgate/internal/config"
	"github.com/passgate/passgate/internal/permission"
	settingsdomain "github.com/passgate/passgate/internal/sitesettings/domain"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail   = "admin@passgate.local"
	defaultAdminName    = "Passgate Admin"
	defaultHeroTitle    = "Find your next event"
	defaultHeroSubtitle = "Tickets for the best live experiences near you."
)

// EnsurePermissions inserts any missing rows of the fixed permission
// vocabulary. Existing rows are left untouched.
func EnsurePermissions(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range permission.All() {
			var existing admindomain.Permission
			err := tx.Where("name = ?", string(p)).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			row := admindomain.Permission{
				ID:          node.Generate(),
				Name:        string(p),
				Description: permission.Descriptions[p],
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureSuperAdmin creates the bootstrap admin holding every permission
// when no admin exists yet. Credentials come from the environment with a
// local-only default.
func EnsureSuperAdmin(db *gorm.DB, node *snowflake.Node, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	email := cfg.SeedAdminEmail
	if email == "" {
		if cfg.IsProduction() {
			return nil
		}
		email = defaultAdminEmail
	}
	adminPassword := cfg.SeedAdminPassword
	if adminPassword == "" {
		if cfg.IsProduction() {
			return nil
		}
		adminPassword = "admin"
	}
	name := cfg.SeedAdminName
	if name == "" {
		name = defaultAdminName
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&admindomain.Admin{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		var perms []admindomain.Permission
		if err := tx.Find(&perms).Error; err != nil {
			return err
		}

		hash, err := password.Hash(adminPassword)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		admin := admindomain.Admin{
			ID:           node.Generate(),
			FullName:     name,
			Email:        email,
			PasswordHash: hash,
			Permissions:  perms,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.Create(&admin).Error
	})
}

// EnsureSiteSettings creates the singleton settings row.
func EnsureSiteSettings(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	var existing settingsdomain.SiteSettings
	err := db.WithContext(ctx).First(&existing, "id = ?", settingsdomain.SettingsID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row := settingsdomain.SiteSettings{
		ID:           settingsdomain.SettingsID,
		HeroTitle:    defaultHeroTitle,
		HeroSubtitle: defaultHeroSubtitle,
		UpdatedAt:    time.Now().UTC(),
	}
	return db.WithContext(ctx).Create(&row).Error
}
