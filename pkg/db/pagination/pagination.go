package pagination

import "gorm.io/gorm"

// Page is the offset pagination contract used by the admin listing
// endpoints.
type Page struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

const maxLimit = 100

// Normalize clamps page and limit to sane bounds.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Apply adds LIMIT/OFFSET to a gorm statement.
func (p Page) Apply(stmt *gorm.DB) *gorm.DB {
	return stmt.Offset(p.Offset()).Limit(p.Limit)
}

// PageInfo is returned alongside paginated rows.
type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func BuildPageInfo(total int64, p Page) PageInfo {
	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}
	return PageInfo{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}
