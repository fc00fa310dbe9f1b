package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/models"
)

type clientFeedService struct {
	catalog      Catalog
	session      SessionService
	interactions InteractionService
	logger       *logger.Logger

	// videos is a working copy of the catalog; only like counts change
	mu     sync.RWMutex
	videos []models.Video
	index  map[string]int
}

func NewClientFeedService(catalog Catalog, session SessionService, interactions InteractionService, log *logger.Logger) FeedService {
	videos := slices.Clone(catalog.Videos())
	index := make(map[string]int, len(videos))
	for i, v := range videos {
		index[v.ID] = i
	}

	return &clientFeedService{
		catalog:      catalog,
		session:      session,
		interactions: interactions,
		logger:       log,
		videos:       videos,
		index:        index,
	}
}

func (f *clientFeedService) Videos() []models.Video {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.videos)
}

func (f *clientFeedService) Sounds() []models.Sound {
	return slices.Clone(f.catalog.Sounds())
}

func (f *clientFeedService) Feed(ctx context.Context) ([]models.FeedEntry, error) {
	videos := f.Videos()
	entries := make([]models.FeedEntry, 0, len(videos))

	account, ok := f.session.CurrentAccount()
	if !ok {
		for _, v := range videos {
			entries = append(entries, models.FeedEntry{Video: v})
		}
		return entries, nil
	}

	liked, err := f.interactions.ListLikedVideoIDs(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	saved, err := f.interactions.ListSavedItems(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	savedIDs := make(map[string]struct{}, len(saved))
	for _, it := range saved {
		savedIDs[it.ItemID] = struct{}{}
	}

	for _, v := range videos {
		_, isSaved := savedIDs[v.ID]
		entries = append(entries, models.FeedEntry{
			Video: v,
			Liked: slices.Contains(liked, v.ID),
			Saved: isSaved,
		})
	}
	return entries, nil
}

// ToggleLike opens the login modal and returns ErrLoginRequired while
// anonymous.
func (f *clientFeedService) ToggleLike(ctx context.Context, videoID string) (models.FeedEntry, error) {
	account, err := f.requireAccount()
	if err != nil {
		return models.FeedEntry{}, err
	}

	if _, ok := f.video(videoID); !ok {
		return models.FeedEntry{}, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	liked, err := f.interactions.ToggleLike(ctx, account.ID, videoID)
	if err != nil {
		return models.FeedEntry{}, err
	}

	f.mu.Lock()
	v := &f.videos[f.index[videoID]]
	if liked {
		v.Likes++
	} else if v.Likes > 0 {
		v.Likes--
	}
	updated := *v
	f.mu.Unlock()

	saved, err := f.interactions.IsSaved(ctx, account.ID, videoID)
	if err != nil {
		f.logger.Warn().Err(err).Str("video_id", videoID).Msg("error reading saved state")
	}

	return models.FeedEntry{Video: updated, Liked: liked, Saved: saved}, nil
}

// ToggleSave opens the login modal and returns ErrLoginRequired while
// anonymous.
func (f *clientFeedService) ToggleSave(ctx context.Context, itemID string, itemType models.ItemType) (bool, error) {
	account, err := f.requireAccount()
	if err != nil {
		return false, err
	}

	return f.interactions.ToggleSave(ctx, account.ID, itemID, itemType)
}

// LikedVideos returns liked videos in the order they were liked. IDs not in
// the catalog are skipped.
func (f *clientFeedService) LikedVideos(ctx context.Context) ([]models.Video, error) {
	account, ok := f.session.CurrentAccount()
	if !ok {
		return nil, ErrLoginRequired
	}

	ids, err := f.interactions.ListLikedVideoIDs(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := f.video(id); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *clientFeedService) SavedVideos(ctx context.Context) ([]models.Video, error) {
	account, ok := f.session.CurrentAccount()
	if !ok {
		return nil, ErrLoginRequired
	}

	items, err := f.interactions.ListSavedItems(ctx, account.ID, models.ItemTypeVideo)
	if err != nil {
		return nil, err
	}

	out := make([]models.Video, 0, len(items))
	for _, it := range items {
		if v, ok := f.video(it.ItemID); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *clientFeedService) SavedSounds(ctx context.Context) ([]models.Sound, error) {
	account, ok := f.session.CurrentAccount()
	if !ok {
		return nil, ErrLoginRequired
	}

	items, err := f.interactions.ListSavedItems(ctx, account.ID, models.ItemTypeSound)
	if err != nil {
		return nil, err
	}

	sounds := f.catalog.Sounds()
	out := make([]models.Sound, 0, len(items))
	for _, it := range items {
		if i := slices.IndexFunc(sounds, func(s models.Sound) bool { return s.ID == it.ItemID }); i >= 0 {
			out = append(out, sounds[i])
		}
	}
	return out, nil
}

func (f *clientFeedService) requireAccount() (models.Account, error) {
	account, ok := f.session.CurrentAccount()
	if !ok {
		f.session.OpenLogin()
		return models.Account{}, ErrLoginRequired
	}
	return account, nil
}

func (f *clientFeedService) video(id string) (models.Video, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i, ok := f.index[id]
	if !ok {
		return models.Video{}, false
	}
	return f.videos[i], true
}
