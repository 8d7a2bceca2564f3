package service

import (
	"context"
	"errors"

	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/sitesettings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("sitesettings.service"),
		clock: p.Clock,
	}
}

func (s *Service) Get(ctx context.Context) (domain.SiteSettings, error) {
	var settings domain.SiteSettings
	err := s.db.WithContext(ctx).First(&settings, "id = ?", domain.SettingsID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SiteSettings{}, domain.ErrNotSeeded
		}
		return domain.SiteSettings{}, err
	}
	return settings, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.SiteSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return domain.SiteSettings{}, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&settings.HeroTitle, req.HeroTitle)
	apply(&settings.HeroSubtitle, req.HeroSubtitle)
	apply(&settings.AboutHTML, req.AboutHTML)
	apply(&settings.ContactEmail, req.ContactEmail)
	apply(&settings.ContactPhone, req.ContactPhone)
	apply(&settings.FacebookURL, req.FacebookURL)
	apply(&settings.InstagramURL, req.InstagramURL)
	apply(&settings.TwitterURL, req.TwitterURL)
	apply(&settings.SEOTitle, req.SEOTitle)
	apply(&settings.SEODescription, req.SEODescription)
	settings.UpdatedAt = s.clock.Now()

	if err := s.db.WithContext(ctx).Save(&settings).Error; err != nil {
		return domain.SiteSettings{}, err
	}
	s.log.Info("site settings updated")
	return settings, nil
}
