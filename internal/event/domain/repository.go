package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, event *Event) error
	Update(ctx context.Context, db *gorm.DB, event *Event) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Event, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Event, error)
	CountTickets(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)

	// AdvanceStatuses runs the two conditional transitions in one call and
	// returns the affected row counts.
	AdvanceStatuses(ctx context.Context, db *gorm.DB, now time.Time) (SweepResult, error)
}

type ListFilter struct {
	PublicOnly   bool
	FeaturedOnly bool
}
