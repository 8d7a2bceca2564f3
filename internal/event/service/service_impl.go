package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/event/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository

	sweep sweepGuard
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("event.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEventRequest) (domain.Event, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 3 {
		return domain.Event{}, domain.ErrInvalidName
	}
	venue := strings.TrimSpace(req.Venue)
	if len(venue) < 3 {
		return domain.Event{}, domain.ErrInvalidVenue
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || !req.EndDate.After(req.StartDate) {
		return domain.Event{}, domain.ErrInvalidDates
	}
	if req.Price.IsNegative() {
		return domain.Event{}, domain.ErrInvalidPrice
	}

	now := s.clock.Now()
	event := domain.Event{
		ID:             s.genID.Generate(),
		Name:           name,
		Venue:          venue,
		StartDate:      req.StartDate.UTC(),
		EndDate:        req.EndDate.UTC(),
		Price:          req.Price,
		Status:         domain.StatusUpcoming,
		IsFeatured:     req.IsFeatured,
		BannerImage:    strings.TrimSpace(req.BannerImage),
		AboutHTML:      req.AboutHTML,
		SEOTitle:       strings.TrimSpace(req.SEOTitle),
		SEODescription: strings.TrimSpace(req.SEODescription),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	event.Slug = s.buildSlug(name, event.ID)
	event.Status = event.ExpectedStatus(now)

	if err := s.repo.Insert(ctx, s.db, &event); err != nil {
		return domain.Event{}, err
	}

	s.log.Info("event created", zap.String("event_id", event.ID.String()), zap.String("slug", event.Slug))
	return event, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateEventRequest) (domain.Event, error) {
	eventID, err := s.parseID(id)
	if err != nil {
		return domain.Event{}, err
	}

	event, err := s.repo.FindByID(ctx, s.db, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if event == nil {
		return domain.Event{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 3 {
			return domain.Event{}, domain.ErrInvalidName
		}
		event.Name = name
		event.Slug = s.buildSlug(name, event.ID)
	}
	if req.Venue != nil {
		venue := strings.TrimSpace(*req.Venue)
		if len(venue) < 3 {
			return domain.Event{}, domain.ErrInvalidVenue
		}
		event.Venue = venue
	}
	if req.StartDate != nil {
		event.StartDate = req.StartDate.UTC()
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate.UTC()
	}
	if !event.EndDate.After(event.StartDate) {
		return domain.Event{}, domain.ErrInvalidDates
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return domain.Event{}, domain.ErrInvalidPrice
		}
		event.Price = *req.Price
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.IsFeatured != nil {
		event.IsFeatured = *req.IsFeatured
	}
	if req.BannerImage != nil {
		event.BannerImage = strings.TrimSpace(*req.BannerImage)
	}
	if req.AboutHTML != nil {
		event.AboutHTML = *req.AboutHTML
	}
	if req.SEOTitle != nil {
		event.SEOTitle = strings.TrimSpace(*req.SEOTitle)
	}
	if req.SEODescription != nil {
		event.SEODescription = strings.TrimSpace(*req.SEODescription)
	}
	event.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, event); err != nil {
		return domain.Event{}, err
	}
	return *event, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	eventID, err := s.parseID(id)
	if err != nil {
		return err
	}

	event, err := s.repo.FindByID(ctx, s.db, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return domain.ErrNotFound
	}

	// Events with issued tickets are retained for the audit trail.
	tickets, err := s.repo.CountTickets(ctx, s.db, eventID)
	if err != nil {
		return err
	}
	if tickets > 0 {
		return domain.ErrHasTickets
	}

	return s.repo.Delete(ctx, s.db, eventID)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Event, error) {
	eventID, err := s.parseID(id)
	if err != nil {
		return domain.Event{}, err
	}

	event, err := s.repo.FindByID(ctx, s.db, eventID)
	if err != nil {
		return domain.Event{}, err
	}
	if event == nil {
		return domain.Event{}, domain.ErrNotFound
	}
	return *event, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx, s.db, domain.ListFilter{})
}

func (s *Service) ListPublic(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx, s.db, domain.ListFilter{PublicOnly: true})
}

func (s *Service) ListFeatured(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx, s.db, domain.ListFilter{PublicOnly: true, FeaturedOnly: true})
}

func (s *Service) SweepStatuses(ctx context.Context) (domain.SweepResult, error) {
	now := s.clock.Now()
	result, err := s.repo.AdvanceStatuses(ctx, s.db, now)
	if err != nil {
		return result, err
	}
	if result.UpcomingToLive > 0 || result.LiveToEnded > 0 {
		s.log.Info("event statuses advanced",
			zap.Int64("to_live", result.UpcomingToLive),
			zap.Int64("to_ended", result.LiveToEnded),
		)
	}
	return result, nil
}

func (s *Service) MaybeSweep(ctx context.Context) {
	if !s.sweep.tryAcquire(s.clock.Now()) {
		return
	}
	if _, err := s.SweepStatuses(ctx); err != nil {
		s.log.Warn("event status sweep failed", zap.Error(err))
	}
}

func (s *Service) buildSlug(name string, id snowflake.ID) string {
	base := slug.Make(name)
	if base == "" {
		base = "event"
	}
	return base + "-" + id.String()
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
