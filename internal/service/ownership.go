package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
)

// Ownership centralizes the capability checks every mutation goes through.
type Ownership struct {
	storage repository.Storage
}

func NewOwnership(storage repository.Storage) *Ownership {
	return &Ownership{storage: storage}
}

// AssertOwnsProfile returns ErrForbidden unless user owns profile.
func AssertOwnsProfile(user domain.SessionUser, profile *domain.Profile) error {
	if user.ID == "" || !profile.OwnedBy(user.ID) {
		return &domain.ForbiddenError{Reason: "profile belongs to another user"}
	}
	return nil
}

// AssertOwnsLink loads the link's profile and checks user owns it.
func (o *Ownership) AssertOwnsLink(ctx context.Context, user domain.SessionUser, link *domain.Link) (*domain.Profile, error) {
	return o.assertOwnsProfileID(ctx, user, link.ProfileID)
}

// AssertOwnsSocial loads the social's profile and checks user owns it.
func (o *Ownership) AssertOwnsSocial(ctx context.Context, user domain.SessionUser, social *domain.Social) (*domain.Profile, error) {
	return o.assertOwnsProfileID(ctx, user, social.ProfileID)
}

// AssertOwnsItem resolves the profile of a link or social by id and checks
// ownership. It returns the owning profile id.
func (o *Ownership) AssertOwnsItem(ctx context.Context, user domain.SessionUser, kind domain.ItemKind, id string) (string, error) {
	switch kind {
	case domain.KindLink:
		link, err := o.storage.GetLink(ctx, id)
		if err != nil {
			return "", err
		}
		if _, err := o.AssertOwnsLink(ctx, user, link); err != nil {
			return "", err
		}
		return link.ProfileID, nil
	case domain.KindSocial:
		social, err := o.storage.GetSocial(ctx, id)
		if err != nil {
			return "", err
		}
		if _, err := o.AssertOwnsSocial(ctx, user, social); err != nil {
			return "", err
		}
		return social.ProfileID, nil
	}
	return "", fmt.Errorf("unknown item kind %q", kind)
}

// PrimaryProfile returns the earliest created profile of user.
func (o *Ownership) PrimaryProfile(ctx context.Context, user domain.SessionUser) (*domain.Profile, error) {
	profiles, err := o.storage.ListUserProfiles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, domain.ErrNotFound
	}
	return &profiles[0], nil
}

func (o *Ownership) assertOwnsProfileID(ctx context.Context, user domain.SessionUser, profileID string) (*domain.Profile, error) {
	profile, err := o.storage.GetProfile(ctx, profileID)
	if errors.Is(err, domain.ErrNotFound) {
		// orphaned item, nobody may touch it
		return nil, &domain.ForbiddenError{Reason: "profile not found"}
	}
	if err != nil {
		return nil, err
	}
	if err := AssertOwnsProfile(user, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
