package postgres

import (
	"LinkHub-Backend/internal/domain"
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Profile Methods ---

// CreateProfile сохраняет новый профиль
func (s *PostgresStorage) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	err := s.db.WithContext(ctx).Omit("Links", "Socials").Create(profile).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrHandleTaken
	}
	if err != nil {
		s.log.Error("failed to create profile", zap.String("handle", profile.Handle), zap.Error(err))
		return wrapErr("create profile", err)
	}

	s.log.Info("created profile", zap.String("profile_id", profile.ID), zap.String("user_id", profile.UserID))
	return nil
}

// GetProfile получает профиль по ID
func (s *PostgresStorage) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, wrapErr("get profile", err)
	}
	return &profile, nil
}

// GetProfileByHandle получает профиль по публичному хэндлу
func (s *PostgresStorage) GetProfileByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := s.db.WithContext(ctx).Where("handle = ?", handle).First(&profile).Error; err != nil {
		return nil, wrapErr("get profile by handle", err)
	}
	return &profile, nil
}

// ListUserProfiles возвращает профили пользователя, первым идет основной
func (s *PostgresStorage) ListUserProfiles(ctx context.Context, userID string) ([]domain.Profile, error) {
	var profiles []domain.Profile
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&profiles).Error
	if err != nil {
		s.log.Error("failed to list user profiles", zap.String("user_id", userID), zap.Error(err))
		return nil, wrapErr("list user profiles", err)
	}
	return profiles, nil
}

// UpdateProfile обновляет редактируемые поля профиля
func (s *PostgresStorage) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	result := s.db.WithContext(ctx).
		Model(profile).
		Select("display_name", "bio", "avatar_url", "theme", "density", "verified").
		Updates(profile)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return domain.ErrHandleTaken
	}
	if result.Error != nil {
		s.log.Error("failed to update profile", zap.String("profile_id", profile.ID), zap.Error(result.Error))
		return wrapErr("update profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
