package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedRepository is a read-through Redis cache over a schedule Repository.
// Keys are explicit per (artist, weekday); invalidation deletes the seven
// weekday keys for an artist outright, never by pattern matching.
// A failed Redis round trip falls back to the repository.
type CachedRepository struct {
	repo   Repository
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCachedRepository(repo Repository, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedRepository {
	return &CachedRepository{
		repo:   repo,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func entryKey(artistID uuid.UUID, weekday time.Weekday) string {
	return fmt.Sprintf("schedule:%s:%d", artistID, int(weekday))
}

func (c *CachedRepository) GetActiveEntry(ctx context.Context, artistID uuid.UUID, weekday time.Weekday) (*Entry, error) {
	key := entryKey(artistID, weekday)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var e Entry
		if err := json.Unmarshal(raw, &e); err == nil {
			return &e, nil
		}
		c.log.Warn("discarding malformed schedule cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("schedule cache read failed", zap.String("key", key), zap.Error(err))
	}

	entry, err := c.repo.GetActiveEntry(ctx, artistID, weekday)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(entry); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn("schedule cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return entry, nil
}

func (c *CachedRepository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Entry, error) {
	return c.repo.ListByArtist(ctx, artistID)
}

func (c *CachedRepository) UpsertEntry(ctx context.Context, e Entry) (*Entry, error) {
	entry, err := c.repo.UpsertEntry(ctx, e)
	if err != nil {
		return nil, err
	}
	c.Invalidate(ctx, e.ArtistID)
	return entry, nil
}

func (c *CachedRepository) DeleteEntry(ctx context.Context, artistID uuid.UUID, weekday time.Weekday) error {
	if err := c.repo.DeleteEntry(ctx, artistID, weekday); err != nil {
		return err
	}
	c.Invalidate(ctx, artistID)
	return nil
}

// Invalidate drops every cached weekday entry for the artist.
func (c *CachedRepository) Invalidate(ctx context.Context, artistID uuid.UUID) {
	keys := make([]string, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		keys = append(keys, entryKey(artistID, wd))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("schedule cache invalidation failed", zap.Stringer("artist_id", artistID), zap.Error(err))
	}
}
