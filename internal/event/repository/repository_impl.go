package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/event/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, event *domain.Event) error {
	return db.WithContext(ctx).Create(event).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, event *domain.Event) error {
	return db.WithContext(ctx).Save(event).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Event{}, "id = ?", id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Event, error) {
	var event domain.Event
	err := db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Event, error) {
	var events []domain.Event
	stmt := db.WithContext(ctx).Model(&domain.Event{})
	if filter.PublicOnly {
		stmt = stmt.Where("status IN ?", []domain.Status{domain.StatusUpcoming, domain.StatusLive, domain.StatusEnded})
	}
	if filter.FeaturedOnly {
		stmt = stmt.Where("is_featured = ?", true)
	}
	err := stmt.Order("start_date desc").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repo) CountTickets(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("tickets").
		Where("event_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repo) AdvanceStatuses(ctx context.Context, db *gorm.DB, now time.Time) (domain.SweepResult, error) {
	var result domain.SweepResult

	toLive := db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("status = ? AND start_date <= ? AND end_date > ?", domain.StatusUpcoming, now, now).
		Update("status", domain.StatusLive)
	if toLive.Error != nil {
		return result, toLive.Error
	}
	result.UpcomingToLive = toLive.RowsAffected

	toEnded := db.WithContext(ctx).
		Model(&domain.Event{}).
		Where("status IN ? AND end_date <= ?", []domain.Status{domain.StatusUpcoming, domain.StatusLive}, now).
		Update("status", domain.StatusEnded)
	if toEnded.Error != nil {
		return result, toEnded.Error
	}
	result.LiveToEnded = toEnded.RowsAffected

	return result, nil
}
