package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventKind distinguishes the two engagement event streams.
type EventKind string

const (
	EventView  EventKind = "view"
	EventClick EventKind = "click"
)

// DeviceUnknown is recorded when the user agent is absent or unparseable.
const DeviceUnknown = "unknown"

// ViewEvent фиксирует один просмотр публичной страницы
type ViewEvent struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	ProfileID  string    `gorm:"column:profile_id;not null;index:idx_view_events_profile_created,priority:1" json:"profileId"`
	Referrer   *string   `gorm:"column:referrer;size:2048" json:"referrer,omitempty"`
	UserAgent  *string   `gorm:"column:user_agent;type:text" json:"userAgent,omitempty"`
	IPHash     *string   `gorm:"column:ip_hash;size:4" json:"ipHash,omitempty"`
	DeviceType string    `gorm:"column:device_type;not null;default:unknown;size:10" json:"deviceType"` // 'desktop', 'mobile', 'tablet', 'bot'
	CreatedAt  time.Time `gorm:"column:created_at;not null;index:idx_view_events_profile_created,priority:2" json:"createdAt"`
}

// TableName возвращает название таблицы для GORM
func (ViewEvent) TableName() string {
	return "view_events"
}

// BeforeCreate проставляет идентификатор события
func (e *ViewEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// ClickEvent фиксирует один клик по ссылке
type ClickEvent struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	ProfileID  string    `gorm:"column:profile_id;not null;index:idx_click_events_profile_created,priority:1" json:"profileId"`
	LinkID     string    `gorm:"column:link_id;not null;index" json:"linkId"`
	Referrer   *string   `gorm:"column:referrer;size:2048" json:"referrer,omitempty"`
	UserAgent  *string   `gorm:"column:user_agent;type:text" json:"userAgent,omitempty"`
	IPHash     *string   `gorm:"column:ip_hash;size:4" json:"ipHash,omitempty"`
	DeviceType string    `gorm:"column:device_type;not null;default:unknown;size:10" json:"deviceType"`
	CreatedAt  time.Time `gorm:"column:created_at;not null;index:idx_click_events_profile_created,priority:2" json:"createdAt"`
}

// TableName возвращает название таблицы для GORM
func (ClickEvent) TableName() string {
	return "click_events"
}

// BeforeCreate проставляет идентификатор события
func (e *ClickEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// DeviceCount is the number of clicks attributed to one device type.
type DeviceCount struct {
	DeviceType string `json:"deviceType"`
	Count      int64  `json:"count"`
}
