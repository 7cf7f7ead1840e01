package service

import (
	"LinkHub-Backend/internal/domain"
	"LinkHub-Backend/internal/metrics"
	"LinkHub-Backend/internal/repository"
	"LinkHub-Backend/internal/validation"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Direction is a one-step move within an ordered list.
type Direction int

const (
	MoveUp   Direction = -1
	MoveDown Direction = 1
)

// ParseDirection maps "up"/"down" to a Direction.
func ParseDirection(raw string) (Direction, error) {
	switch raw {
	case "up":
		return MoveUp, nil
	case "down":
		return MoveDown, nil
	}
	return 0, domain.NewValidationError("direction", "must be up or down")
}

// Position is an explicit sort value requested for one item.
type Position struct {
	ID   string `json:"id" validate:"required"`
	Sort int    `json:"sort" validate:"min=0"`
}

type reorderInput struct {
	Positions []Position `json:"positions" validate:"len=2,dive"`
}

// PlanMove swaps the sort value of id with its neighbour in direction dir.
// items must be ordered by sort. Moving past either end changes nothing.
func PlanMove(items []domain.SortItem, id string, dir Direction) ([]domain.SortItem, error) {
	idx := indexOf(items, id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	neighbour := idx + int(dir)
	if neighbour < 0 || neighbour >= len(items) {
		return nil, nil
	}

	return []domain.SortItem{
		{ID: items[idx].ID, Sort: items[neighbour].Sort},
		{ID: items[neighbour].ID, Sort: items[idx].Sort},
	}, nil
}

// PlanReorder assigns explicit positions to exactly two items. The requested
// values must be a permutation of the two items' current values, so the
// rest of the list stays untouched.
func PlanReorder(items []domain.SortItem, positions []Position) ([]domain.SortItem, error) {
	if len(positions) != 2 {
		return nil, domain.NewValidationError("positions", "must contain exactly 2 items")
	}
	if positions[0].ID == positions[1].ID {
		return nil, domain.NewValidationError("positions", "must reference two different items")
	}

	current := make([]int, 2)
	for i, p := range positions {
		idx := indexOf(items, p.ID)
		if idx < 0 {
			return nil, domain.ErrNotFound
		}
		current[i] = items[idx].Sort
	}

	samePair := positions[0].Sort == current[0] && positions[1].Sort == current[1]
	swapped := positions[0].Sort == current[1] && positions[1].Sort == current[0]
	if !samePair && !swapped {
		return nil, domain.NewValidationError("positions", "sort values must be a permutation of the current values")
	}

	var changed []domain.SortItem
	for i, p := range positions {
		if p.Sort != current[i] {
			changed = append(changed, domain.SortItem{ID: p.ID, Sort: p.Sort})
		}
	}
	return changed, nil
}

func indexOf(items []domain.SortItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// OrderingService keeps link and social sort values dense and applies
// moves, explicit reorders and deletes. Concurrent edits of the same
// profile resolve as last write wins per item.
type OrderingService struct {
	storage repository.Storage
	owner   *Ownership
	log     *zap.Logger
}

func NewOrderingService(storage repository.Storage, log *zap.Logger) *OrderingService {
	return &OrderingService{
		storage: storage,
		owner:   NewOwnership(storage),
		log:     log,
	}
}

// Move shifts the item one step up or down.
func (s *OrderingService) Move(ctx context.Context, user domain.SessionUser, kind domain.ItemKind, id string, dir Direction) error {
	profileID, err := s.owner.AssertOwnsItem(ctx, user, kind, id)
	if err != nil {
		return err
	}

	var applied int
	err = s.storage.ApplySort(ctx, kind, profileID, func(items []domain.SortItem) ([]domain.SortItem, error) {
		changed, err := PlanMove(items, id, dir)
		applied = len(changed)
		return changed, err
	})
	if err != nil {
		return fmt.Errorf("failed to move %s: %w", kind, err)
	}

	metrics.SortUpdates.WithLabelValues(string(kind)).Add(float64(applied))
	s.log.Debug("moved item", zap.String("kind", string(kind)), zap.String("id", id), zap.Int("direction", int(dir)))
	return nil
}

// Reorder applies explicit positions to two items of the same profile.
func (s *OrderingService) Reorder(ctx context.Context, user domain.SessionUser, kind domain.ItemKind, positions []Position) error {
	if len(positions) != 2 {
		return domain.NewValidationError("positions", "must contain exactly 2 items")
	}
	if err := validation.Struct(&reorderInput{Positions: positions}); err != nil {
		return err
	}

	profileID, err := s.owner.AssertOwnsItem(ctx, user, kind, positions[0].ID)
	if err != nil {
		return err
	}

	var applied int
	err = s.storage.ApplySort(ctx, kind, profileID, func(items []domain.SortItem) ([]domain.SortItem, error) {
		changed, err := PlanReorder(items, positions)
		applied = len(changed)
		return changed, err
	})
	if err != nil {
		return fmt.Errorf("failed to reorder %s: %w", kind, err)
	}

	metrics.SortUpdates.WithLabelValues(string(kind)).Add(float64(applied))
	return nil
}

// Delete removes the item and closes the gap it leaves. Unknown ids are a no-op.
func (s *OrderingService) Delete(ctx context.Context, user domain.SessionUser, kind domain.ItemKind, id string) error {
	_, err := s.owner.AssertOwnsItem(ctx, user, kind, id)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	if err := s.storage.DeleteItem(ctx, kind, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	s.log.Info("deleted item", zap.String("kind", string(kind)), zap.String("id", id), zap.String("user_id", user.ID))
	return nil
}
