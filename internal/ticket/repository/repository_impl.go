package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/ticket/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, ticket *domain.Ticket) error {
	return db.WithContext(ctx).Create(ticket).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := db.WithContext(ctx).
		Preload("Event").
		First(&ticket, "ticket_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repo) FindByPaymentID(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := db.WithContext(ctx).
		Preload("Event").
		First(&ticket, "payment_id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repo) SetQRCodeURL(ctx context.Context, db *gorm.DB, id snowflake.ID, dataURL string) error {
	return db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ?", id).
		Update("qr_code_url", dataURL).Error
}

func (r *repo) CheckIn(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ? AND checked_in = ?", id, false).
		Update("checked_in", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) InsertLog(ctx context.Context, db *gorm.DB, log *domain.CheckinLog) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *repo) ListByEvent(ctx context.Context, db *gorm.DB, eventID snowflake.ID, checkedInOnly bool) ([]domain.Ticket, error) {
	stmt := db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at desc")
	if checkedInOnly {
		stmt = stmt.Where("checked_in = ?", true)
	}
	var tickets []domain.Ticket
	if err := stmt.Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *repo) StatsByEvent(ctx context.Context, db *gorm.DB, eventID snowflake.ID) (int64, int64, error) {
	var total, checkedIn int64
	err := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("event_id = ?", eventID).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("event_id = ? AND checked_in = ?", eventID, true).
		Count(&checkedIn).Error
	if err != nil {
		return 0, 0, err
	}
	return total, checkedIn, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Ticket{}).Count(&count).Error
	return count, err
}

func (r *repo) CountCheckedIn(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("checked_in = ?", true).
		Count(&count).Error
	return count, err
}
