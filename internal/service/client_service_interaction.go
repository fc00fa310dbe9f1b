package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/internal/store"
	"github.com/MKhiriev/vibeclip/models"
)

type clientInteractionService struct {
	repo   store.InteractionRepository
	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger

	// one read-modify-write at a time
	mu sync.Mutex
}

func NewClientInteractionService(repo store.InteractionRepository, ids IDGenerator, log *logger.Logger) InteractionService {
	return &clientInteractionService{
		repo:   repo,
		ids:    ids,
		now:    time.Now,
		logger: log,
	}
}

func (s *clientInteractionService) ToggleLike(ctx context.Context, accountID, videoID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked, err := s.repo.LikedVideoIDs(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("error loading likes: %w", err)
	}

	nowLiked := true
	if i := slices.Index(liked, videoID); i >= 0 {
		liked = slices.Delete(liked, i, i+1)
		nowLiked = false
	} else {
		liked = append(liked, videoID)
	}

	if err = s.repo.SaveLikedVideoIDs(ctx, accountID, liked); err != nil {
		s.logger.Err(err).Str("func", "clientInteractionService.ToggleLike").
			Str("account_id", accountID).Str("video_id", videoID).Msg("error saving likes")
		return false, fmt.Errorf("error saving likes: %w", err)
	}

	return nowLiked, nil
}

func (s *clientInteractionService) ToggleSave(ctx context.Context, accountID, itemID string, itemType models.ItemType) (bool, error) {
	if !itemType.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidItemType, itemType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.SavedItems(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("error loading saved items: %w", err)
	}

	nowSaved := true
	// matched on itemID alone, whatever the stored type
	if i := slices.IndexFunc(items, func(it models.SavedItem) bool { return it.ItemID == itemID }); i >= 0 {
		items = slices.Delete(items, i, i+1)
		nowSaved = false
	} else {
		items = append(items, models.SavedItem{
			ID:      s.ids.Generate(),
			Type:    itemType,
			ItemID:  itemID,
			UserID:  accountID,
			SavedAt: s.now().UTC(),
		})
	}

	if err = s.repo.SaveSavedItems(ctx, accountID, items); err != nil {
		s.logger.Err(err).Str("func", "clientInteractionService.ToggleSave").
			Str("account_id", accountID).Str("item_id", itemID).Msg("error saving saved items")
		return false, fmt.Errorf("error saving saved items: %w", err)
	}

	return nowSaved, nil
}

func (s *clientInteractionService) ListLikedVideoIDs(ctx context.Context, accountID string) ([]string, error) {
	liked, err := s.repo.LikedVideoIDs(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error loading likes: %w", err)
	}
	return liked, nil
}

func (s *clientInteractionService) ListSavedItems(ctx context.Context, accountID string, types ...models.ItemType) ([]models.SavedItem, error) {
	items, err := s.repo.SavedItems(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error loading saved items: %w", err)
	}
	if len(types) == 0 {
		return items, nil
	}

	filtered := make([]models.SavedItem, 0, len(items))
	for _, it := range items {
		if slices.Contains(types, it.Type) {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

func (s *clientInteractionService) IsLiked(ctx context.Context, accountID, videoID string) (bool, error) {
	liked, err := s.ListLikedVideoIDs(ctx, accountID)
	if err != nil {
		return false, err
	}
	return slices.Contains(liked, videoID), nil
}

func (s *clientInteractionService) IsSaved(ctx context.Context, accountID, itemID string) (bool, error) {
	items, err := s.ListSavedItems(ctx, accountID)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(items, func(it models.SavedItem) bool { return it.ItemID == itemID }), nil
}
