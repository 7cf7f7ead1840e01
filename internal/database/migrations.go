package database

import (
	"LinkHub-Backend/internal/domain"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DemoUserID владелец демонстрационного профиля
const DemoUserID = "demo-user"

// AutoMigrate выполняет автоматические миграции для всех доменных моделей
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	// Порядок миграций важен из-за внешних ключей
	models := []interface{}{
		&domain.Profile{},    // Сначала профили
		&domain.Link{},       // Ссылки (каскадно удаляются с профилем)
		&domain.Social{},     // Соцсети (каскадно удаляются с профилем)
		&domain.ViewEvent{},  // События просмотров (без внешних ключей)
		&domain.ClickEvent{}, // События кликов (переживают удаление ссылки)
	}

	for i, model := range models {
		modelName := fmt.Sprintf("%T", model)
		log.Debug("migrating model",
			zap.String("model", modelName),
			zap.Int("step", i+1),
			zap.Int("total", len(models)))

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
	}

	log.Info("database auto-migration completed successfully", zap.Int("migrated_models", len(models)))
	return nil
}

// SeedData создает демонстрационный профиль, если его еще нет
func SeedData(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&domain.Profile{}).Where("handle = ?", "demo").Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check demo profile: %w", err)
	}
	if count > 0 {
		log.Info("demo profile already exists, skipping seeding")
		return nil
	}

	bio := "Everything I build, in one place."
	profile := domain.Profile{
		UserID:      DemoUserID,
		Handle:      "demo",
		DisplayName: "LinkHUB Demo",
		Bio:         &bio,
		Theme:       datatypes.NewJSONType(domain.DefaultTheme()),
		Density:     domain.DensityComfortable,
		Verified:    true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Links", "Socials").Create(&profile).Error; err != nil {
			return err
		}

		links := []domain.Link{
			{ProfileID: profile.ID, Label: "Product Hunt", URL: "https://producthunt.com", Sort: 0, Enabled: true},
			{ProfileID: profile.ID, Label: "GitHub", URL: "https://github.com", Sort: 1, Enabled: true},
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}

		social := domain.Social{ProfileID: profile.ID, Platform: domain.PlatformTwitter, URL: "https://twitter.com/linkhub", Sort: 0}
		return tx.Create(&social).Error
	})
	if err != nil {
		log.Error("failed to seed demo profile", zap.Error(err))
		return fmt.Errorf("failed to seed demo profile: %w", err)
	}

	log.Info("database seeding completed successfully", zap.String("profile_id", profile.ID))
	return nil
}
