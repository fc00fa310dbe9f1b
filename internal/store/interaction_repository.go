package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/models"
)

type interactionRepository struct {
	kv     KeyValueStore
	logger *logger.Logger
}

func NewInteractionRepository(kv KeyValueStore, log *logger.Logger) InteractionRepository {
	return &interactionRepository{kv: kv, logger: log}
}

func (r *interactionRepository) LikedVideoIDs(ctx context.Context, userID string) ([]string, error) {
	key := LikesKey(userID)
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error reading likes: %w", err)
	}

	ids := decodeOrEmpty[[]string](r.logger, key, raw)
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (r *interactionRepository) SaveLikedVideoIDs(ctx context.Context, userID string, videoIDs []string) error {
	if videoIDs == nil {
		videoIDs = []string{}
	}

	key := LikesKey(userID)
	data, err := encode(key, videoIDs)
	if err != nil {
		return err
	}

	if err = r.kv.Set(ctx, key, data); err != nil {
		r.logger.Err(err).Str("func", "interactionRepository.SaveLikedVideoIDs").Str("user_id", userID).Msg("error saving likes")
		return fmt.Errorf("error saving likes: %w", err)
	}
	return nil
}

func (r *interactionRepository) SavedItems(ctx context.Context, userID string) ([]models.SavedItem, error) {
	key := SavedKey(userID)
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error reading saved items: %w", err)
	}

	items := decodeOrEmpty[[]models.SavedItem](r.logger, key, raw)
	if items == nil {
		items = []models.SavedItem{}
	}
	return items, nil
}

func (r *interactionRepository) SaveSavedItems(ctx context.Context, userID string, items []models.SavedItem) error {
	if items == nil {
		items = []models.SavedItem{}
	}

	key := SavedKey(userID)
	data, err := encode(key, items)
	if err != nil {
		return err
	}

	if err = r.kv.Set(ctx, key, data); err != nil {
		r.logger.Err(err).Str("func", "interactionRepository.SaveSavedItems").Str("user_id", userID).Msg("error saving saved items")
		return fmt.Errorf("error saving saved items: %w", err)
	}
	return nil
}
