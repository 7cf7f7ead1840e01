package postgres

import (
	"LinkHub-Backend/internal/domain"
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Engagement Methods ---

// RecordView увеличивает счетчик просмотров и записывает событие в одной транзакции
func (s *PostgresStorage) RecordView(ctx context.Context, event *domain.ViewEvent) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Profile{}).
			Where("id = ?", event.ProfileID).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Create(event).Error
	})
	if err != nil {
		s.log.Debug("view not recorded", zap.String("profile_id", event.ProfileID), zap.Error(err))
		return wrapErr("record view", err)
	}
	return nil
}

// RecordClick увеличивает счетчик кликов ссылки и записывает событие с ID профиля
func (s *PostgresStorage) RecordClick(ctx context.Context, event *domain.ClickEvent) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link domain.Link
		if err := tx.Select("id", "profile_id").Where("id = ?", event.LinkID).First(&link).Error; err != nil {
			return err
		}

		result := tx.Model(&domain.Link{}).
			Where("id = ?", link.ID).
			UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		event.ProfileID = link.ProfileID
		return tx.Create(event).Error
	})
	if err != nil {
		s.log.Debug("click not recorded", zap.String("link_id", event.LinkID), zap.Error(err))
		return wrapErr("record click", err)
	}
	return nil
}

// --- Analytics Methods ---

// CountEvents считает события профиля начиная с since включительно
func (s *PostgresStorage) CountEvents(ctx context.Context, profileID string, kind domain.EventKind, since time.Time) (int64, error) {
	var model any
	switch kind {
	case domain.EventView:
		model = &domain.ViewEvent{}
	case domain.EventClick:
		model = &domain.ClickEvent{}
	default:
		return 0, domain.NewValidationError("kind", "unknown event kind")
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(model).
		Where("profile_id = ? AND created_at >= ?", profileID, since).
		Count(&count).Error
	if err != nil {
		s.log.Error("failed to count events", zap.String("profile_id", profileID), zap.String("kind", string(kind)), zap.Error(err))
		return 0, wrapErr("count events", err)
	}
	return count, nil
}

// TopLinks возвращает ссылки с наибольшим числом кликов, при равенстве по sort
func (s *PostgresStorage) TopLinks(ctx context.Context, profileID string, limit int) ([]domain.LinkStat, error) {
	stats := make([]domain.LinkStat, 0, limit)
	if limit <= 0 {
		return stats, nil
	}

	err := s.db.WithContext(ctx).
		Model(&domain.Link{}).
		Select("id, label, url, clicks, sort").
		Where("profile_id = ?", profileID).
		Order("clicks DESC, sort ASC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		s.log.Error("failed to get top links", zap.String("profile_id", profileID), zap.Error(err))
		return nil, wrapErr("top links", err)
	}
	return stats, nil
}

// ClicksByDevice возвращает распределение кликов профиля по типам устройств
func (s *PostgresStorage) ClicksByDevice(ctx context.Context, profileID string, since time.Time) ([]domain.DeviceCount, error) {
	counts := make([]domain.DeviceCount, 0)
	err := s.db.WithContext(ctx).
		Model(&domain.ClickEvent{}).
		Select("COALESCE(device_type, 'unknown') AS device_type, count(*) AS count").
		Where("profile_id = ? AND created_at >= ?", profileID, since).
		Group("device_type").
		Order("count DESC, device_type ASC").
		Scan(&counts).Error
	if err != nil {
		s.log.Error("failed to get clicks by device", zap.String("profile_id", profileID), zap.Error(err))
		return nil, wrapErr("clicks by device", err)
	}
	return counts, nil
}
