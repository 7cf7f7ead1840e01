package memory

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/repository"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemStorage keeps all state in maps guarded by a single mutex. Every
// method holds the lock for its whole duration, which gives the same
// all-or-nothing behavior the PostgreSQL transactions provide.
type MemStorage struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile
	handles  map[string]string
	links    map[string]*domain.Link
	socials  map[string]*domain.Social
	views    []domain.ViewEvent
	clicks   []domain.ClickEvent

	lastProfileAt time.Time
}

var _ repository.Storage = (*MemStorage)(nil)

func New() *MemStorage {
	return &MemStorage{
		profiles: make(map[string]*domain.Profile),
		handles:  make(map[string]string),
		links:    make(map[string]*domain.Link),
		socials:  make(map[string]*domain.Social),
	}
}

func (s *MemStorage) Ping(context.Context) error { return nil }

// --- Profile Methods ---

func (s *MemStorage) CreateProfile(_ context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.handles[profile.Handle]; taken {
		return domain.ErrHandleTaken
	}
	_ = profile.BeforeCreate(nil)
	now := time.Now()
	if !now.After(s.lastProfileAt) {
		now = s.lastProfileAt.Add(time.Nanosecond) // keeps primary profile selection stable
	}
	s.lastProfileAt = now
	profile.CreatedAt, profile.UpdatedAt = now, now

	stored := *profile
	stored.Links, stored.Socials = nil, nil
	s.profiles[stored.ID] = &stored
	s.handles[stored.Handle] = stored.ID
	return nil
}

func (s *MemStorage) GetProfile(_ context.Context, id string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemStorage) GetProfileByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	s.mu.RLock()
	id, ok := s.handles[handle]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.GetProfile(ctx, id)
}

func (s *MemStorage) ListUserProfiles(_ context.Context, userID string) ([]domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]domain.Profile, 0)
	for _, p := range s.profiles {
		if p.UserID == userID {
			profiles = append(profiles, *p)
		}
	}
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].CreatedAt.Equal(profiles[j].CreatedAt) {
			return profiles[i].ID < profiles[j].ID
		}
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})
	return profiles, nil
}

func (s *MemStorage) UpdateProfile(_ context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.profiles[profile.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.DisplayName = profile.DisplayName
	stored.Bio = profile.Bio
	stored.AvatarURL = profile.AvatarURL
	stored.Theme = profile.Theme
	stored.Density = profile.Density
	stored.Verified = profile.Verified
	stored.UpdatedAt = time.Now()
	return nil
}

// --- Link Methods ---

func (s *MemStorage) CreateLink(_ context.Context, link *domain.Link, check repository.QuotaCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[link.ProfileID]; !ok {
		return domain.ErrNotFound
	}
	count := 0
	for _, l := range s.links {
		if l.ProfileID == link.ProfileID {
			count++
		}
	}
	if check != nil {
		if err := check(count); err != nil {
			return err
		}
	}

	_ = link.BeforeCreate(nil)
	link.Sort = count
	now := time.Now()
	link.CreatedAt, link.UpdatedAt = now, now
	stored := *link
	s.links[stored.ID] = &stored
	return nil
}

func (s *MemStorage) GetLink(_ context.Context, id string) (*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.links[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *MemStorage) ListLinks(_ context.Context, profileID string) ([]domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profileLinks(profileID), nil
}

func (s *MemStorage) UpdateLink(_ context.Context, link *domain.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.links[link.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Label = link.Label
	stored.URL = link.URL
	stored.Badge = link.Badge
	stored.Icon = link.Icon
	stored.Enabled = link.Enabled
	stored.StartAt = link.StartAt
	stored.EndAt = link.EndAt
	stored.UpdatedAt = time.Now()
	return nil
}

// --- Social Methods ---

func (s *MemStorage) CreateSocial(_ context.Context, social *domain.Social, check repository.QuotaCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[social.ProfileID]; !ok {
		return domain.ErrNotFound
	}
	count := 0
	for _, sc := range s.socials {
		if sc.ProfileID == social.ProfileID {
			count++
		}
	}
	if check != nil {
		if err := check(count); err != nil {
			return err
		}
	}

	_ = social.BeforeCreate(nil)
	social.Sort = count
	now := time.Now()
	social.CreatedAt, social.UpdatedAt = now, now
	stored := *social
	s.socials[stored.ID] = &stored
	return nil
}

func (s *MemStorage) GetSocial(_ context.Context, id string) (*domain.Social, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.socials[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sc
	return &cp, nil
}

func (s *MemStorage) ListSocials(_ context.Context, profileID string) ([]domain.Social, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profileSocials(profileID), nil
}

func (s *MemStorage) UpdateSocial(_ context.Context, social *domain.Social) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.socials[social.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Platform = social.Platform
	stored.URL = social.URL
	stored.UpdatedAt = time.Now()
	return nil
}

// --- Ordering Methods ---

func (s *MemStorage) ApplySort(_ context.Context, kind domain.ItemKind, profileID string, plan repository.SortPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.sortItems(kind, profileID)
	if err != nil {
		return err
	}
	changed, err := plan(items)
	if err != nil {
		return err
	}

	for _, item := range changed {
		switch kind {
		case domain.KindLink:
			if l, ok := s.links[item.ID]; ok && l.ProfileID == profileID {
				l.Sort = item.Sort
			}
		case domain.KindSocial:
			if sc, ok := s.socials[item.ID]; ok && sc.ProfileID == profileID {
				sc.Sort = item.Sort
			}
		}
	}
	return nil
}

func (s *MemStorage) DeleteItem(_ context.Context, kind domain.ItemKind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case domain.KindLink:
		l, ok := s.links[id]
		if !ok {
			return nil
		}
		delete(s.links, id)
		for _, other := range s.links {
			if other.ProfileID == l.ProfileID && other.Sort > l.Sort {
				other.Sort--
			}
		}
	case domain.KindSocial:
		sc, ok := s.socials[id]
		if !ok {
			return nil
		}
		delete(s.socials, id)
		for _, other := range s.socials {
			if other.ProfileID == sc.ProfileID && other.Sort > sc.Sort {
				other.Sort--
			}
		}
	default:
		return fmt.Errorf("unknown item kind %q", kind)
	}
	return nil
}

// --- Engagement Methods ---

func (s *MemStorage) RecordView(_ context.Context, event *domain.ViewEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[event.ProfileID]
	if !ok {
		return domain.ErrNotFound
	}
	_ = event.BeforeCreate(nil)
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	p.Views++
	s.views = append(s.views, *event)
	return nil
}

func (s *MemStorage) RecordClick(_ context.Context, event *domain.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.links[event.LinkID]
	if !ok {
		return domain.ErrNotFound
	}
	_ = event.BeforeCreate(nil)
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	event.ProfileID = l.ProfileID
	l.Clicks++
	s.clicks = append(s.clicks, *event)
	return nil
}

// ViewEvents returns a copy of the recorded view events.
func (s *MemStorage) ViewEvents() []domain.ViewEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ViewEvent(nil), s.views...)
}

// ClickEvents returns a copy of the recorded click events.
func (s *MemStorage) ClickEvents() []domain.ClickEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ClickEvent(nil), s.clicks...)
}

// --- Analytics Methods ---

func (s *MemStorage) CountEvents(_ context.Context, profileID string, kind domain.EventKind, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	switch kind {
	case domain.EventView:
		for _, e := range s.views {
			if e.ProfileID == profileID && !e.CreatedAt.Before(since) {
				count++
			}
		}
	case domain.EventClick:
		for _, e := range s.clicks {
			if e.ProfileID == profileID && !e.CreatedAt.Before(since) {
				count++
			}
		}
	default:
		return 0, domain.NewValidationError("kind", "unknown event kind")
	}
	return count, nil
}

func (s *MemStorage) TopLinks(_ context.Context, profileID string, limit int) ([]domain.LinkStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := s.profileLinks(profileID)
	sort.SliceStable(links, func(i, j int) bool {
		if links[i].Clicks != links[j].Clicks {
			return links[i].Clicks > links[j].Clicks
		}
		return links[i].Sort < links[j].Sort
	})

	stats := make([]domain.LinkStat, 0, len(links))
	for i := 0; i < len(links) && i < limit; i++ {
		stats = append(stats, domain.LinkStat{
			ID:     links[i].ID,
			Label:  links[i].Label,
			URL:    links[i].URL,
			Clicks: links[i].Clicks,
			Sort:   links[i].Sort,
		})
	}
	return stats, nil
}

func (s *MemStorage) ClicksByDevice(_ context.Context, profileID string, since time.Time) ([]domain.DeviceCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDevice := make(map[string]int64)
	for _, e := range s.clicks {
		if e.ProfileID == profileID && !e.CreatedAt.Before(since) {
			device := e.DeviceType
			if device == "" {
				device = domain.DeviceUnknown
			}
			byDevice[device]++
		}
	}

	counts := make([]domain.DeviceCount, 0, len(byDevice))
	for device, n := range byDevice {
		counts = append(counts, domain.DeviceCount{DeviceType: device, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].DeviceType < counts[j].DeviceType
	})
	return counts, nil
}

// --- Helper Methods ---

func (s *MemStorage) profileLinks(profileID string) []domain.Link {
	links := make([]domain.Link, 0)
	for _, l := range s.links {
		if l.ProfileID == profileID {
			links = append(links, *l)
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Sort != links[j].Sort {
			return links[i].Sort < links[j].Sort
		}
		return links[i].ID < links[j].ID
	})
	return links
}

func (s *MemStorage) profileSocials(profileID string) []domain.Social {
	socials := make([]domain.Social, 0)
	for _, sc := range s.socials {
		if sc.ProfileID == profileID {
			socials = append(socials, *sc)
		}
	}
	sort.Slice(socials, func(i, j int) bool {
		if socials[i].Sort != socials[j].Sort {
			return socials[i].Sort < socials[j].Sort
		}
		return socials[i].ID < socials[j].ID
	})
	return socials
}

func (s *MemStorage) sortItems(kind domain.ItemKind, profileID string) ([]domain.SortItem, error) {
	var items []domain.SortItem
	switch kind {
	case domain.KindLink:
		for _, l := range s.profileLinks(profileID) {
			items = append(items, domain.SortItem{ID: l.ID, Sort: l.Sort})
		}
	case domain.KindSocial:
		for _, sc := range s.profileSocials(profileID) {
			items = append(items, domain.SortItem{ID: sc.ID, Sort: sc.Sort})
		}
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}
	return items, nil
}
