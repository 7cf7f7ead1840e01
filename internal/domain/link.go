package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Link представляет кнопку-ссылку на странице профиля
type Link struct {
	ID        string     `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	ProfileID string     `gorm:"column:profile_id;not null;index:idx_links_profile_sort,priority:1" json:"profileId"`
	Label     string     `gorm:"column:label;not null;size:60" json:"label"`
	URL       string     `gorm:"column:url;not null;size:2048" json:"url"`
	Badge     *string    `gorm:"column:badge;size:24" json:"badge,omitempty"`
	Icon      *string    `gorm:"column:icon;size:40" json:"icon,omitempty"`
	Sort      int        `gorm:"column:sort;not null;default:0;index:idx_links_profile_sort,priority:2" json:"sort"`
	Enabled   bool       `gorm:"column:enabled;not null" json:"enabled"`
	StartAt   *time.Time `gorm:"column:start_at" json:"startAt,omitempty"`
	EndAt     *time.Time `gorm:"column:end_at" json:"endAt,omitempty"`
	Clicks    int64      `gorm:"column:clicks;not null;default:0" json:"clicks"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName возвращает название таблицы для GORM
func (Link) TableName() string {
	return "links"
}

// BeforeCreate проставляет идентификатор ссылки
func (l *Link) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// IsVisible reports whether the link is shown publicly at now.
// Both schedule bounds are inclusive.
func (l *Link) IsVisible(now time.Time) bool {
	if !l.Enabled {
		return false
	}
	if l.StartAt != nil && now.Before(*l.StartAt) {
		return false
	}
	if l.EndAt != nil && now.After(*l.EndAt) {
		return false
	}
	return true
}

// FilterVisible returns the links visible at now, preserving input order.
func FilterVisible(links []Link, now time.Time) []Link {
	visible := make([]Link, 0, len(links))
	for i := range links {
		if links[i].IsVisible(now) {
			visible = append(visible, links[i])
		}
	}
	return visible
}

// ValidateSchedule rejects windows that end before they start.
func ValidateSchedule(startAt, endAt *time.Time) error {
	if startAt != nil && endAt != nil && startAt.After(*endAt) {
		return NewValidationError("endAt", "must not be before startAt")
	}
	return nil
}

// SortItem is the (id, sort) pair used by ordering operations.
type SortItem struct {
	ID   string
	Sort int
}

// LinkStat is a link ranked by click count.
type LinkStat struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	URL    string `json:"url"`
	Clicks int64  `json:"clicks"`
	Sort   int    `json:"-"`
}
