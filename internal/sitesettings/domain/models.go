package domain

import "time"

// SettingsID keys the singleton row.
const SettingsID = 1

type SiteSettings struct {
	ID             int       `gorm:"primaryKey" json:"-"`
	HeroTitle      string    `json:"heroTitle"`
	HeroSubtitle   string    `json:"heroSubtitle"`
	AboutHTML      string    `gorm:"column:about_html" json:"aboutHtml"`
	ContactEmail   string    `json:"contactEmail"`
	ContactPhone   string    `json:"contactPhone"`
	FacebookURL    string    `gorm:"column:facebook_url" json:"facebookUrl"`
	InstagramURL   string    `gorm:"column:instagram_url" json:"instagramUrl"`
	TwitterURL     string    `gorm:"column:twitter_url" json:"twitterUrl"`
	SEOTitle       string    `gorm:"column:seo_title" json:"seoTitle"`
	SEODescription string    `gorm:"column:seo_description" json:"seoDescription"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (SiteSettings) TableName() string {
	return "site_settings"
}
