package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, ticket *Ticket) error
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Ticket, error)
	FindByPaymentID(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) (*Ticket, error)
	SetQRCodeURL(ctx context.Context, db *gorm.DB, id snowflake.ID, dataURL string) error

	// CheckIn flips checked_in conditioned on the current state and
	// reports whether this call won the transition.
	CheckIn(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)

	InsertLog(ctx context.Context, db *gorm.DB, log *CheckinLog) error

	ListByEvent(ctx context.Context, db *gorm.DB, eventID snowflake.ID, checkedInOnly bool) ([]Ticket, error)
	StatsByEvent(ctx context.Context, db *gorm.DB, eventID snowflake.ID) (total, checkedIn int64, err error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	CountCheckedIn(ctx context.Context, db *gorm.DB) (int64, error)
}
