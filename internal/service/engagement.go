package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/identity"
	"LinkHub-Backend/internal/metrics"
	"LinkHub-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	maxReferrerLength  = 2048
	maxUserAgentLength = 512
)

// RequestMeta is what the transport layer captured from the triggering request.
type RequestMeta struct {
	IP        string
	Referrer  string
	UserAgent string
}

// DeviceClassifier maps a User-Agent string to a coarse device type.
type DeviceClassifier interface {
	Classify(userAgent string) string
}

// EngagementService records views and clicks. Each call bumps the counter
// and appends one event atomically; repeated calls are never deduplicated.
type EngagementService struct {
	storage    repository.Storage
	hasher     *identity.Hasher
	classifier DeviceClassifier
	log        *zap.Logger
	now        func() time.Time
}

func NewEngagementService(storage repository.Storage, hasher *identity.Hasher, classifier DeviceClassifier, log *zap.Logger) *EngagementService {
	return &EngagementService{
		storage:    storage,
		hasher:     hasher,
		classifier: classifier,
		log:        log,
		now:        time.Now,
	}
}

// WithClock replaces the time source used to stamp events.
func (s *EngagementService) WithClock(now func() time.Time) *EngagementService {
	s.now = now
	return s
}

// RecordView counts one view of the profile.
func (s *EngagementService) RecordView(ctx context.Context, profileID string, meta RequestMeta) error {
	if strings.TrimSpace(profileID) == "" {
		return domain.NewValidationError("profileId", "is required")
	}

	event := &domain.ViewEvent{
		ProfileID:  profileID,
		Referrer:   optional(meta.Referrer, maxReferrerLength),
		UserAgent:  optional(meta.UserAgent, maxUserAgentLength),
		IPHash:     s.hasher.Hash(meta.IP),
		DeviceType: s.deviceType(meta.UserAgent),
		CreatedAt:  s.now().UTC(),
	}

	err := s.storage.RecordView(ctx, event)
	metrics.RecordEvent(string(domain.EventView), err, errors.Is(err, domain.ErrNotFound))
	if err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// RecordClick counts one click of the link and stamps the event with the
// owning profile.
func (s *EngagementService) RecordClick(ctx context.Context, linkID string, meta RequestMeta) error {
	if strings.TrimSpace(linkID) == "" {
		return domain.NewValidationError("linkId", "is required")
	}

	event := &domain.ClickEvent{
		LinkID:     linkID,
		Referrer:   optional(meta.Referrer, maxReferrerLength),
		UserAgent:  optional(meta.UserAgent, maxUserAgentLength),
		IPHash:     s.hasher.Hash(meta.IP),
		DeviceType: s.deviceType(meta.UserAgent),
		CreatedAt:  s.now().UTC(),
	}

	err := s.storage.RecordClick(ctx, event)
	metrics.RecordEvent(string(domain.EventClick), err, errors.Is(err, domain.ErrNotFound))
	if err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}

	s.log.Debug("recorded click",
		zap.String("link_id", linkID),
		zap.String("profile_id", event.ProfileID),
		zap.String("device_type", event.DeviceType))
	return nil
}

func (s *EngagementService) deviceType(userAgent string) string {
	if s.classifier == nil || userAgent == "" {
		return domain.DeviceUnknown
	}
	return s.classifier.Classify(userAgent)
}

// optional cleans a header value for storage: invalid UTF-8 is dropped and
// the result is cut to at most maxLen bytes on a rune boundary.
func optional(v string, maxLen int) *string {
	v = strings.TrimSpace(strings.ToValidUTF8(v, ""))
	if v == "" {
		return nil
	}
	if len(v) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(v[cut]) {
			cut--
		}
		v = v[:cut]
	}
	return &v
}
