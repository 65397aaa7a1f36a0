package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inklab/studio-booking/internal/availability"
)

const cacheDateLayout = "2006-01-02"

// IntervalCache is a read-through Redis cache over booked-interval lookups.
// It exists purely to cut repeated per-day queries during slot searches; a
// stale answer can at worst offer a slot that the conflict check at
// appointment creation will reject. TTLs should therefore stay in the
// minutes range, and every appointment write must invalidate the affected
// (artist, date) keys explicitly.
type IntervalCache struct {
	repo   Repository
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewIntervalCache(repo Repository, client *redis.Client, ttl time.Duration, log *zap.Logger) *IntervalCache {
	return &IntervalCache{
		repo:   repo,
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func intervalKey(artistID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("booked:%s:%s", artistID, date.Format(cacheDateLayout))
}

// GetBookedIntervals implements availability.BookedIntervalSource.
func (c *IntervalCache) GetBookedIntervals(ctx context.Context, artistID uuid.UUID, date time.Time) ([]availability.Interval, error) {
	key := intervalKey(artistID, date)

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var ivs []availability.Interval
		if err := json.Unmarshal(raw, &ivs); err == nil {
			return ivs, nil
		}
		c.log.Warn("discarding malformed booked-interval cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("booked-interval cache read failed", zap.String("key", key), zap.Error(err))
	}

	ivs, err := c.repo.GetBookedIntervals(ctx, artistID, date)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(ivs); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn("booked-interval cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return ivs, nil
}

// Invalidate drops the cached day for the artist. Appointments that span
// midnight touch two keys; callers pass every affected date.
func (c *IntervalCache) Invalidate(ctx context.Context, artistID uuid.UUID, dates ...time.Time) {
	if len(dates) == 0 {
		return
	}
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, intervalKey(artistID, d))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("booked-interval cache invalidation failed", zap.Stringer("artist_id", artistID), zap.Error(err))
	}
}
