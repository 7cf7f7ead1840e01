package repository

import (
	"LinkHub-Backend/internal/domain"
	"context"
	"time"
)

// QuotaCheck is evaluated inside the create transaction with the number of
// items the profile currently holds. A non-nil error aborts the insert.
type QuotaCheck func(current int) error

// SortPlan receives the profile's items ordered by sort and returns the
// items whose sort must change. It runs inside the ordering transaction.
type SortPlan func(items []domain.SortItem) ([]domain.SortItem, error)

type Storage interface {
	// Profile methods
	CreateProfile(ctx context.Context, profile *domain.Profile) error
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	GetProfileByHandle(ctx context.Context, handle string) (*domain.Profile, error)
	ListUserProfiles(ctx context.Context, userID string) ([]domain.Profile, error)
	UpdateProfile(ctx context.Context, profile *domain.Profile) error

	// Link methods
	CreateLink(ctx context.Context, link *domain.Link, check QuotaCheck) error
	GetLink(ctx context.Context, id string) (*domain.Link, error)
	ListLinks(ctx context.Context, profileID string) ([]domain.Link, error)
	UpdateLink(ctx context.Context, link *domain.Link) error

	// Social methods
	CreateSocial(ctx context.Context, social *domain.Social, check QuotaCheck) error
	GetSocial(ctx context.Context, id string) (*domain.Social, error)
	ListSocials(ctx context.Context, profileID string) ([]domain.Social, error)
	UpdateSocial(ctx context.Context, social *domain.Social) error

	// Ordering methods
	ApplySort(ctx context.Context, kind domain.ItemKind, profileID string, plan SortPlan) error
	DeleteItem(ctx context.Context, kind domain.ItemKind, id string) error

	// Engagement methods
	RecordView(ctx context.Context, event *domain.ViewEvent) error
	RecordClick(ctx context.Context, event *domain.ClickEvent) error

	// Analytics methods
	CountEvents(ctx context.Context, profileID string, kind domain.EventKind, since time.Time) (int64, error)
	TopLinks(ctx context.Context, profileID string, limit int) ([]domain.LinkStat, error)
	ClicksByDevice(ctx context.Context, profileID string, since time.Time) ([]domain.DeviceCount, error)

	Ping(ctx context.Context) error
}
