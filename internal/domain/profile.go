package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Density управляет плотностью отображения ссылок на публичной странице
type Density string

const (
	DensityCompact     Density = "compact"
	DensityComfortable Density = "comfortable"
	DensityRelaxed     Density = "relaxed"
)

// Valid reports whether d is one of the known densities.
func (d Density) Valid() bool {
	switch d {
	case DensityCompact, DensityComfortable, DensityRelaxed:
		return true
	}
	return false
}

// Profile представляет публичную страницу пользователя
type Profile struct {
	ID          string                    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	UserID      string                    `gorm:"column:user_id;not null;index" json:"userId"`
	Handle      string                    `gorm:"column:handle;not null;uniqueIndex;size:64" json:"handle"`
	DisplayName string                    `gorm:"column:display_name;not null;size:80" json:"displayName"`
	Bio         *string                   `gorm:"column:bio;size:240" json:"bio,omitempty"`
	AvatarURL   *string                   `gorm:"column:avatar_url;size:2048" json:"avatarUrl,omitempty"`
	Theme       datatypes.JSONType[Theme] `gorm:"column:theme;not null" json:"theme"`
	Density     Density                   `gorm:"column:density;not null;default:comfortable;size:16" json:"density"`
	Verified    bool                      `gorm:"column:verified;not null;default:false" json:"verified"`
	Views       int64                     `gorm:"column:views;not null;default:0" json:"views"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	// Relationships
	Links   []Link   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"links,omitempty"`
	Socials []Social `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"socials,omitempty"`
}

// TableName возвращает название таблицы для GORM
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate проставляет идентификатор и значения по умолчанию
func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Density == "" {
		p.Density = DensityComfortable
	}
	return nil
}

// OwnedBy reports whether the profile belongs to userID.
func (p *Profile) OwnedBy(userID string) bool {
	return p.UserID == userID
}
