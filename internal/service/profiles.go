package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/validation"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// CreateProfileInput is the payload for creating a profile.
type CreateProfileInput struct {
	Handle      string `json:"handle" validate:"required,min=3,max=30"`
	DisplayName string `json:"displayName" validate:"omitempty,max=80"`
}

// UpdateProfileInput patches the primary profile. Absent fields are kept.
type UpdateProfileInput struct {
	DisplayName *string          `json:"displayName" validate:"omitempty,min=1,max=80"`
	Bio         Nullable[string] `json:"bio"`
	AvatarURL   Nullable[string] `json:"avatarUrl"`
	Theme       *domain.Theme    `json:"theme"`
	Density     *domain.Density  `json:"density" validate:"omitempty,density"`
	Verified    *bool            `json:"verified"`
}

// profileFields is validated after a patch has been merged.
type profileFields struct {
	DisplayName string  `json:"displayName" validate:"required,min=1,max=80"`
	Bio         *string `json:"bio" validate:"omitempty,max=240"`
	AvatarURL   *string `json:"avatarUrl" validate:"omitempty,url"`
}

// PublicPage is what a visitor sees at /p/{handle}.
type PublicPage struct {
	Profile *domain.Profile `json:"profile"`
	Links   []domain.Link   `json:"links"`
	Socials []domain.Social `json:"socials"`
}

// Dashboard is the signed-in user's view of their profiles.
type Dashboard struct {
	User     domain.SessionUser `json:"-"`
	Profiles []domain.Profile   `json:"profiles"`
}

type ProfileService struct {
	storage repository.Storage
	owner   *Ownership
	log     *zap.Logger
	now     func() time.Time
}

func NewProfileService(storage repository.Storage, log *zap.Logger) *ProfileService {
	return &ProfileService{
		storage: storage,
		owner:   NewOwnership(storage),
		log:     log,
		now:     time.Now,
	}
}

// WithClock replaces the time source used for visibility.
func (s *ProfileService) WithClock(now func() time.Time) *ProfileService {
	s.now = now
	return s
}

// Create binds a new handle to the user.
func (s *ProfileService) Create(ctx context.Context, user domain.SessionUser, in CreateProfileInput) (*domain.Profile, error) {
	in.Handle = strings.ToLower(strings.TrimSpace(in.Handle))
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	displayName := in.DisplayName
	if displayName == "" {
		displayName = in.Handle
	}

	profile := &domain.Profile{
		UserID:      user.ID,
		Handle:      in.Handle,
		DisplayName: displayName,
		Theme:       datatypes.NewJSONType(domain.DefaultTheme()),
		Density:     domain.DensityComfortable,
	}
	if err := s.storage.CreateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// Update patches the user's primary profile.
func (s *ProfileService) Update(ctx context.Context, user domain.SessionUser, in UpdateProfileInput) (*domain.Profile, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	profile, err := s.owner.PrimaryProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := AssertOwnsProfile(user, profile); err != nil {
		return nil, err
	}

	if in.Verified != nil && *in.Verified && !user.Plan.IsPro() {
		return nil, &domain.ForbiddenError{Reason: "verified badge requires Pro"}
	}

	if in.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	profile.Bio = in.Bio.Apply(profile.Bio)
	profile.AvatarURL = in.AvatarURL.Apply(profile.AvatarURL)
	if in.Density != nil {
		profile.Density = *in.Density
	}
	if in.Verified != nil {
		profile.Verified = *in.Verified
	}
	if in.Theme != nil {
		theme, err := domain.ResolveTheme(*in.Theme)
		if err != nil {
			return nil, err
		}
		profile.Theme = datatypes.NewJSONType(theme)
	}

	fields := profileFields{DisplayName: profile.DisplayName, Bio: profile.Bio, AvatarURL: profile.AvatarURL}
	if err := validation.Struct(&fields); err != nil {
		return nil, err
	}

	if err := s.storage.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.log.Info("updated profile", zap.String("profile_id", profile.ID), zap.String("user_id", user.ID))
	return profile, nil
}

// Dashboard lists the user's profiles, primary first, with their links and socials.
func (s *ProfileService) Dashboard(ctx context.Context, user domain.SessionUser) (*Dashboard, error) {
	profiles, err := s.storage.ListUserProfiles(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	for i := range profiles {
		if profiles[i].Links, err = s.storage.ListLinks(ctx, profiles[i].ID); err != nil {
			return nil, fmt.Errorf("failed to list links: %w", err)
		}
		if profiles[i].Socials, err = s.storage.ListSocials(ctx, profiles[i].ID); err != nil {
			return nil, fmt.Errorf("failed to list socials: %w", err)
		}
	}

	return &Dashboard{User: user, Profiles: profiles}, nil
}

// PublicPage returns the profile bound to handle with only the links
// visible right now.
func (s *ProfileService) PublicPage(ctx context.Context, handle string) (*PublicPage, error) {
	profile, err := s.storage.GetProfileByHandle(ctx, strings.ToLower(strings.TrimSpace(handle)))
	if err != nil {
		return nil, err
	}

	links, err := s.storage.ListLinks(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	socials, err := s.storage.ListSocials(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list socials: %w", err)
	}

	return &PublicPage{
		Profile: profile,
		Links:   domain.FilterVisible(links, s.now()),
		Socials: socials,
	}, nil
}
