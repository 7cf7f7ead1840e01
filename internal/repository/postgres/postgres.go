package postgres

import (
	"LinkHub-Backend/internal/domain"
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStorage реализует интерфейс Storage для PostgreSQL
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New создает новый экземпляр PostgreSQL storage
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// Ping проверяет доступность базы данных
func (s *PostgresStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// --- Helper Methods ---

// wrapErr переводит ошибки GORM и драйвера в доменные
func wrapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case isDomainErr(err):
		return err
	case isUnavailable(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isDomainErr(err error) bool {
	var vErr *domain.ValidationError
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrQuotaExceeded) ||
		errors.Is(err, domain.ErrHandleTaken) ||
		errors.As(err, &vErr)
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// lockProfile берет блокировку строки профиля до конца транзакции
func lockProfile(tx *gorm.DB, profileID string) error {
	var profile domain.Profile
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", profileID).
		First(&profile).Error
}

// itemModel возвращает модель GORM для вида элемента профиля
func itemModel(kind domain.ItemKind) (any, error) {
	switch kind {
	case domain.KindLink:
		return &domain.Link{}, nil
	case domain.KindSocial:
		return &domain.Social{}, nil
	}
	return nil, fmt.Errorf("unknown item kind %q", kind)
}
