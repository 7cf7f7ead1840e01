package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/metrics"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/validation"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LinkInput is the payload for creating a link.
type LinkInput struct {
	Label   string     `json:"label" validate:"required,min=1,max=60"`
	URL     string     `json:"url" validate:"required,publicurl"`
	Badge   *string    `json:"badge" validate:"omitempty,max=24"`
	Icon    *string    `json:"icon" validate:"omitempty,max=40"`
	Enabled *bool      `json:"enabled"`
	StartAt *time.Time `json:"startAt"`
	EndAt   *time.Time `json:"endAt"`
}

// LinkPatch partially updates a link. Nullable fields may be cleared with null.
type LinkPatch struct {
	Label   *string             `json:"label"`
	URL     *string             `json:"url"`
	Badge   Nullable[string]    `json:"badge"`
	Icon    Nullable[string]    `json:"icon"`
	Enabled *bool               `json:"enabled"`
	StartAt Nullable[time.Time] `json:"startAt"`
	EndAt   Nullable[time.Time] `json:"endAt"`
}

type LinkService struct {
	storage  repository.Storage
	owner    *Ownership
	ordering *OrderingService
	log      *zap.Logger
}

func NewLinkService(storage repository.Storage, ordering *OrderingService, log *zap.Logger) *LinkService {
	return &LinkService{
		storage:  storage,
		owner:    NewOwnership(storage),
		ordering: ordering,
		log:      log,
	}
}

// Create appends a link to the user's primary profile within plan limits.
func (s *LinkService) Create(ctx context.Context, user domain.SessionUser, in LinkInput) (*domain.Link, error) {
	in.Label = strings.TrimSpace(in.Label)
	in.URL = strings.TrimSpace(in.URL)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	if err := domain.ValidateSchedule(in.StartAt, in.EndAt); err != nil {
		return nil, err
	}

	profile, err := s.owner.PrimaryProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	link := &domain.Link{
		ProfileID: profile.ID,
		Label:     in.Label,
		URL:       in.URL,
		Badge:     in.Badge,
		Icon:      in.Icon,
		Enabled:   in.Enabled == nil || *in.Enabled,
		StartAt:   in.StartAt,
		EndAt:     in.EndAt,
	}

	err = s.storage.CreateLink(ctx, link, quotaCheck(domain.KindLink, user.Plan))
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			s.log.Info("link limit reached", zap.String("user_id", user.ID), zap.String("profile_id", profile.ID))
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return link, nil
}

// Update applies patch to a link owned by the user.
func (s *LinkService) Update(ctx context.Context, user domain.SessionUser, id string, patch LinkPatch) (*domain.Link, error) {
	link, err := s.storage.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.owner.AssertOwnsLink(ctx, user, link); err != nil {
		return nil, err
	}

	if patch.Label != nil {
		link.Label = strings.TrimSpace(*patch.Label)
	}
	if patch.URL != nil {
		link.URL = strings.TrimSpace(*patch.URL)
	}
	if patch.Enabled != nil {
		link.Enabled = *patch.Enabled
	}
	link.Badge = patch.Badge.Apply(link.Badge)
	link.Icon = patch.Icon.Apply(link.Icon)
	link.StartAt = patch.StartAt.Apply(link.StartAt)
	link.EndAt = patch.EndAt.Apply(link.EndAt)

	merged := LinkInput{
		Label:   link.Label,
		URL:     link.URL,
		Badge:   link.Badge,
		Icon:    link.Icon,
		StartAt: link.StartAt,
		EndAt:   link.EndAt,
	}
	if err := validation.Struct(&merged); err != nil {
		return nil, err
	}
	if err := domain.ValidateSchedule(link.StartAt, link.EndAt); err != nil {
		return nil, err
	}

	if err := s.storage.UpdateLink(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}
	return link, nil
}

// Delete removes a link; deleting an unknown link succeeds.
func (s *LinkService) Delete(ctx context.Context, user domain.SessionUser, id string) error {
	return s.ordering.Delete(ctx, user, domain.KindLink, id)
}

// Move shifts a link one position up or down.
func (s *LinkService) Move(ctx context.Context, user domain.SessionUser, id string, dir Direction) error {
	return s.ordering.Move(ctx, user, domain.KindLink, id, dir)
}

// Reorder sets explicit positions for two links.
func (s *LinkService) Reorder(ctx context.Context, user domain.SessionUser, positions []Position) error {
	return s.ordering.Reorder(ctx, user, domain.KindLink, positions)
}

// quotaCheck builds the check evaluated inside the create transaction.
func quotaCheck(kind domain.ItemKind, plan domain.Plan) repository.QuotaCheck {
	return func(current int) error {
		err := domain.CheckQuota(kind, current, plan)
		if err != nil {
			metrics.QuotaDenials.WithLabelValues(string(kind)).Inc()
		}
		return err
	}
}
