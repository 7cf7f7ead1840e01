package postgres

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Link Methods ---

// CreateLink добавляет ссылку в конец списка профиля с проверкой квоты
func (s *PostgresStorage) CreateLink(ctx context.Context, link *domain.Link, check repository.QuotaCheck) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProfile(tx, link.ProfileID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&domain.Link{}).Where("profile_id = ?", link.ProfileID).Count(&count).Error; err != nil {
			return err
		}
		if check != nil {
			if err := check(int(count)); err != nil {
				return err
			}
		}

		link.Sort = int(count)
		return tx.Create(link).Error
	})
	if err != nil {
		s.log.Debug("link not created", zap.String("profile_id", link.ProfileID), zap.Error(err))
		return wrapErr("create link", err)
	}

	s.log.Info("created link", zap.String("link_id", link.ID), zap.String("profile_id", link.ProfileID))
	return nil
}

// GetLink получает ссылку по ID
func (s *PostgresStorage) GetLink(ctx context.Context, id string) (*domain.Link, error) {
	var link domain.Link
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		return nil, wrapErr("get link", err)
	}
	return &link, nil
}

// ListLinks возвращает ссылки профиля по возрастанию sort
func (s *PostgresStorage) ListLinks(ctx context.Context, profileID string) ([]domain.Link, error) {
	var links []domain.Link
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("sort ASC, id ASC").
		Find(&links).Error
	if err != nil {
		s.log.Error("failed to list links", zap.String("profile_id", profileID), zap.Error(err))
		return nil, wrapErr("list links", err)
	}
	return links, nil
}

// UpdateLink обновляет редактируемые поля ссылки
func (s *PostgresStorage) UpdateLink(ctx context.Context, link *domain.Link) error {
	result := s.db.WithContext(ctx).
		Model(link).
		Select("label", "url", "badge", "icon", "enabled", "start_at", "end_at").
		Updates(link)
	if result.Error != nil {
		s.log.Error("failed to update link", zap.String("link_id", link.ID), zap.Error(result.Error))
		return wrapErr("update link", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- Social Methods ---

// CreateSocial добавляет соцсеть в конец списка профиля с проверкой квоты
func (s *PostgresStorage) CreateSocial(ctx context.Context, social *domain.Social, check repository.QuotaCheck) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProfile(tx, social.ProfileID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&domain.Social{}).Where("profile_id = ?", social.ProfileID).Count(&count).Error; err != nil {
			return err
		}
		if check != nil {
			if err := check(int(count)); err != nil {
				return err
			}
		}

		social.Sort = int(count)
		return tx.Create(social).Error
	})
	if err != nil {
		s.log.Debug("social not created", zap.String("profile_id", social.ProfileID), zap.Error(err))
		return wrapErr("create social", err)
	}

	s.log.Info("created social", zap.String("social_id", social.ID), zap.String("profile_id", social.ProfileID))
	return nil
}

// GetSocial получает соцсеть по ID
func (s *PostgresStorage) GetSocial(ctx context.Context, id string) (*domain.Social, error) {
	var social domain.Social
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&social).Error; err != nil {
		return nil, wrapErr("get social", err)
	}
	return &social, nil
}

// ListSocials возвращает соцсети профиля по возрастанию sort
func (s *PostgresStorage) ListSocials(ctx context.Context, profileID string) ([]domain.Social, error) {
	var socials []domain.Social
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("sort ASC, id ASC").
		Find(&socials).Error
	if err != nil {
		s.log.Error("failed to list socials", zap.String("profile_id", profileID), zap.Error(err))
		return nil, wrapErr("list socials", err)
	}
	return socials, nil
}

// UpdateSocial обновляет платформу и URL соцсети
func (s *PostgresStorage) UpdateSocial(ctx context.Context, social *domain.Social) error {
	result := s.db.WithContext(ctx).
		Model(social).
		Select("platform", "url").
		Updates(social)
	if result.Error != nil {
		s.log.Error("failed to update social", zap.String("social_id", social.ID), zap.Error(result.Error))
		return wrapErr("update social", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- Ordering Methods ---

// ApplySort применяет план сортировки: одно UPDATE на каждый измененный элемент
func (s *PostgresStorage) ApplySort(ctx context.Context, kind domain.ItemKind, profileID string, plan repository.SortPlan) error {
	model, err := itemModel(kind)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []domain.SortItem
		if err := tx.Model(model).
			Select("id, sort").
			Where("profile_id = ?", profileID).
			Order("sort ASC, id ASC").
			Scan(&items).Error; err != nil {
			return err
		}

		changed, err := plan(items)
		if err != nil {
			return err
		}

		for _, item := range changed {
			if err := tx.Model(model).
				Where("id = ? AND profile_id = ?", item.ID, profileID).
				Update("sort", item.Sort).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Debug("sort not applied", zap.String("kind", string(kind)), zap.String("profile_id", profileID), zap.Error(err))
		return wrapErr("apply sort", err)
	}
	return nil
}

// DeleteItem удаляет элемент и уплотняет sort оставшихся. Отсутствующий элемент не ошибка.
func (s *PostgresStorage) DeleteItem(ctx context.Context, kind domain.ItemKind, id string) error {
	model, err := itemModel(kind)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item struct {
			ProfileID string
			Sort      int
		}
		result := tx.Model(model).Select("profile_id, sort").Where("id = ?", id).Limit(1).Scan(&item)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := lockProfile(tx, item.ProfileID); err != nil {
			return err
		}

		deleted := tx.Where("id = ?", id).Delete(model)
		if deleted.Error != nil {
			return deleted.Error
		}
		if deleted.RowsAffected == 0 {
			return nil // удален параллельным запросом
		}

		return tx.Model(model).
			Where("profile_id = ? AND sort > ?", item.ProfileID, item.Sort).
			Update("sort", gorm.Expr("sort - 1")).Error
	})
	if err != nil {
		s.log.Error("failed to delete item", zap.String("kind", string(kind)), zap.String("id", id), zap.Error(err))
		return wrapErr("delete item", err)
	}
	return nil
}
