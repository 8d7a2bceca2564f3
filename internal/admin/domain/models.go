package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/permission"
)

// Permission is the persisted form of the capability vocabulary. Rows are
// seeded from permission.All and never created through the API.
type Permission struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null;uniqueIndex" json:"name"`
	Description string       `json:"description"`
}

type Admin struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	FullName     string       `gorm:"not null" json:"fullName"`
	Email        string       `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string       `gorm:"not null" json:"-"`
	Permissions  []Permission `gorm:"many2many:admin_permissions" json:"permissions"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (a Admin) PermissionNames() []string {
	names := make([]string, 0, len(a.Permissions))
	for _, p := range a.Permissions {
		names = append(names, p.Name)
	}
	return names
}

func (a Admin) PermissionSet() permission.Set {
	return permission.NewSet(a.PermissionNames())
}
