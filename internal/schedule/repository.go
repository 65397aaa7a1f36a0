package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEntryNotFound = errors.New("schedule entry not found")

// Repository contains all DB interactions for weekly schedule entries.
type Repository interface {
	GetActiveEntry(ctx context.Context, artistID uuid.UUID, weekday time.Weekday) (*Entry, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Entry, error)

	// UpsertEntry replaces the artist's entry for the weekday, keeping the
	// one-active-entry-per-weekday invariant.
	UpsertEntry(ctx context.Context, e Entry) (*Entry, error)
	DeleteEntry(ctx context.Context, artistID uuid.UUID, weekday time.Weekday) error
}
