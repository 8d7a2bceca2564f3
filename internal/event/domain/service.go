package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type CreateEventRequest struct {
	Name           string          `json:"name"`
	Venue          string          `json:"venue"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	Price          decimal.Decimal `json:"price"`
	IsFeatured     bool            `json:"isFeatured"`
	BannerImage    string          `json:"bannerImage"`
	AboutHTML      string          `json:"aboutHtml"`
	SEOTitle       string          `json:"seoTitle"`
	SEODescription string          `json:"seoDescription"`
}

type UpdateEventRequest struct {
	Name           *string          `json:"name"`
	Venue          *string          `json:"venue"`
	StartDate      *time.Time       `json:"startDate"`
	EndDate        *time.Time       `json:"endDate"`
	Price          *decimal.Decimal `json:"price"`
	Status         *Status          `json:"status"`
	IsFeatured     *bool            `json:"isFeatured"`
	BannerImage    *string          `json:"bannerImage"`
	AboutHTML      *string          `json:"aboutHtml"`
	SEOTitle       *string          `json:"seoTitle"`
	SEODescription *string          `json:"seoDescription"`
}

// SweepResult reports how many events each transition moved.
type SweepResult struct {
	UpcomingToLive int64 `json:"upcomingToLive"`
	LiveToEnded    int64 `json:"liveToEnded"`
}

type Service interface {
	Create(ctx context.Context, req CreateEventRequest) (Event, error)
	Update(ctx context.Context, id string, req UpdateEventRequest) (Event, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Event, error)
	List(ctx context.Context) ([]Event, error)
	ListPublic(ctx context.Context) ([]Event, error)
	ListFeatured(ctx context.Context) ([]Event, error)

	// SweepStatuses advances UPCOMING->LIVE->ENDED based on the stored
	// dates. MaybeSweep applies the throttle guard first.
	SweepStatuses(ctx context.Context) (SweepResult, error)
	MaybeSweep(ctx context.Context)
}

var (
	ErrNotFound     = errors.New("event_not_found")
	ErrInvalidID    = errors.New("invalid_event_id")
	ErrInvalidName  = errors.New("invalid_event_name")
	ErrInvalidVenue = errors.New("invalid_event_venue")
	ErrInvalidDates = errors.New("invalid_event_dates")
	ErrInvalidPrice = errors.New("invalid_event_price")
	ErrHasTickets   = errors.New("event_has_tickets")
)
