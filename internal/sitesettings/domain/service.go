package domain

import (
	"context"
	"errors"
)

type UpdateSettingsRequest struct {
	HeroTitle      *string `json:"heroTitle"`
	HeroSubtitle   *string `json:"heroSubtitle"`
	AboutHTML      *string `json:"aboutHtml"`
	ContactEmail   *string `json:"contactEmail"`
	ContactPhone   *string `json:"contactPhone"`
	FacebookURL    *string `json:"facebookUrl"`
	InstagramURL   *string `json:"instagramUrl"`
	TwitterURL     *string `json:"twitterUrl"`
	SEOTitle       *string `json:"seoTitle"`
	SEODescription *string `json:"seoDescription"`
}

type Service interface {
	Get(ctx context.Context) (SiteSettings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SiteSettings, error)
}

var ErrNotSeeded = errors.New("site_settings_not_seeded")
