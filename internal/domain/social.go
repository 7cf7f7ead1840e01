package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Platform is a known social network.
type Platform string

const (
	PlatformTwitter   Platform = "twitter"
	PlatformGitHub    Platform = "github"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformYouTube   Platform = "youtube"
	PlatformTwitch    Platform = "twitch"
	PlatformDiscord   Platform = "discord"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTikTok    Platform = "tiktok"
)

var platforms = map[Platform]struct{}{
	PlatformTwitter: {}, PlatformGitHub: {}, PlatformLinkedIn: {},
	PlatformYouTube: {}, PlatformTwitch: {}, PlatformDiscord: {},
	PlatformInstagram: {}, PlatformFacebook: {}, PlatformTikTok: {},
}

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	_, ok := platforms[p]
	return ok
}

// Social представляет иконку соцсети на странице профиля
type Social struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	ProfileID string    `gorm:"column:profile_id;not null;index:idx_socials_profile_sort,priority:1" json:"profileId"`
	Platform  Platform  `gorm:"column:platform;not null;size:16" json:"platform"`
	URL       string    `gorm:"column:url;not null;size:2048" json:"url"`
	Sort      int       `gorm:"column:sort;not null;default:0;index:idx_socials_profile_sort,priority:2" json:"sort"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName возвращает название таблицы для GORM
func (Social) TableName() string {
	return "socials"
}

// BeforeCreate проставляет идентификатор
func (s *Social) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
