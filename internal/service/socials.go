package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/validation"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// SocialInput is the payload for creating a social handle.
type SocialInput struct {
	Platform domain.Platform `json:"platform" validate:"required,platform"`
	URL      string          `json:"url" validate:"required,publicurl"`
}

// SocialPatch partially updates a social handle.
type SocialPatch struct {
	Platform *domain.Platform `json:"platform"`
	URL      *string          `json:"url"`
}

type SocialService struct {
	storage  repository.Storage
	owner    *Ownership
	ordering *OrderingService
	log      *zap.Logger
}

func NewSocialService(storage repository.Storage, ordering *OrderingService, log *zap.Logger) *SocialService {
	return &SocialService{
		storage:  storage,
		owner:    NewOwnership(storage),
		ordering: ordering,
		log:      log,
	}
}

// Create appends a social to the user's primary profile within plan limits.
func (s *SocialService) Create(ctx context.Context, user domain.SessionUser, in SocialInput) (*domain.Social, error) {
	in.URL = strings.TrimSpace(in.URL)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	profile, err := s.owner.PrimaryProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	social := &domain.Social{
		ProfileID: profile.ID,
		Platform:  in.Platform,
		URL:       in.URL,
	}
	if err := s.storage.CreateSocial(ctx, social, quotaCheck(domain.KindSocial, user.Plan)); err != nil {
		return nil, fmt.Errorf("failed to create social: %w", err)
	}

	s.log.Debug("created social", zap.String("social_id", social.ID), zap.String("platform", string(social.Platform)))
	return social, nil
}

// Update applies patch to a social owned by the user.
func (s *SocialService) Update(ctx context.Context, user domain.SessionUser, id string, patch SocialPatch) (*domain.Social, error) {
	social, err := s.storage.GetSocial(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.owner.AssertOwnsSocial(ctx, user, social); err != nil {
		return nil, err
	}

	if patch.Platform != nil {
		social.Platform = *patch.Platform
	}
	if patch.URL != nil {
		social.URL = strings.TrimSpace(*patch.URL)
	}

	merged := SocialInput{Platform: social.Platform, URL: social.URL}
	if err := validation.Struct(&merged); err != nil {
		return nil, err
	}

	if err := s.storage.UpdateSocial(ctx, social); err != nil {
		return nil, fmt.Errorf("failed to update social: %w", err)
	}
	return social, nil
}

// Delete removes a social; deleting an unknown social succeeds.
func (s *SocialService) Delete(ctx context.Context, user domain.SessionUser, id string) error {
	return s.ordering.Delete(ctx, user, domain.KindSocial, id)
}

// Move shifts a social one position up or down.
func (s *SocialService) Move(ctx context.Context, user domain.SessionUser, id string, dir Direction) error {
	return s.ordering.Move(ctx, user, domain.KindSocial, id, dir)
}

// Reorder sets explicit positions for two socials.
func (s *SocialService) Reorder(ctx context.Context, user domain.SessionUser, positions []Position) error {
	return s.ordering.Reorder(ctx, user, domain.KindSocial, positions)
}
