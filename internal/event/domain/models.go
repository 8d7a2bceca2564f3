package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusUpcoming  Status = "UPCOMING"
	StatusLive      Status = "LIVE"
	StatusEnded     Status = "ENDED"
	StatusCancelled Status = "CANCELLED"
)

type Event struct {
	ID             snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"not null" json:"name"`
	Slug           string          `gorm:"not null;uniqueIndex" json:"slug"`
	Venue          string          `gorm:"not null" json:"venue"`
	StartDate      time.Time       `gorm:"not null;index" json:"startDate"`
	EndDate        time.Time       `gorm:"not null;index" json:"endDate"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Status         Status          `gorm:"not null;index;default:UPCOMING" json:"status"`
	IsFeatured     bool            `gorm:"not null;default:false" json:"isFeatured"`
	BannerImage    string          `json:"bannerImage,omitempty"`
	AboutHTML      string          `gorm:"column:about_html" json:"aboutHtml,omitempty"`
	SEOTitle       string          `gorm:"column:seo_title" json:"seoTitle,omitempty"`
	SEODescription string          `gorm:"column:seo_description" json:"seoDescription,omitempty"`
	CreatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// ExpectedStatus derives the status an event should carry at the given
// instant. DRAFT and CANCELLED are never advanced by the sweep.
func (e Event) ExpectedStatus(now time.Time) Status {
	switch e.Status {
	case StatusDraft, StatusCancelled:
		return e.Status
	}
	if now.Before(e.StartDate) {
		return StatusUpcoming
	}
	if now.Before(e.EndDate) {
		return StatusLive
	}
	return StatusEnded
}
