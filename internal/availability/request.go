package availability

import (
	"errors"
	"fmt"
	"time"
)

// Bounds for request parameters. Values outside these are rejected outright,
// never clamped.
const (
	MinDuration = 30 * time.Minute
	MaxDuration = 480 * time.Minute

	MaxBuffer = 120 * time.Minute

	MinProbeInterval     = 15 * time.Minute
	MaxProbeInterval     = 60 * time.Minute
	DefaultProbeInterval = 30 * time.Minute

	MaxLimit = 100
)

var ErrInvalidConfig = errors.New("invalid availability request")

// Params is the raw caller input for a slot search. Durations are expressed
// in whole minutes, matching the API surface.
type Params struct {
	DurationMinutes      int
	BufferMinutes        int
	ProbeIntervalMinutes int // 0 means DefaultProbeInterval
	Limit                int // 0 means unlimited
	ReferenceDate        time.Time
	LookAhead            bool

	// ArtistLocation, when set, decides which calendar day "today" is for a
	// search without an explicit reference date. Near midnight the artist's
	// weekday can differ from the server's.
	ArtistLocation *time.Location
}

// Request is a validated slot search configuration. Build one with NewRequest;
// a zero Request is not meaningful.
type Request struct {
	Duration       time.Duration
	Buffer         time.Duration
	ProbeInterval  time.Duration
	Limit          int
	ReferenceDate  time.Time
	LookAhead      bool
	ArtistLocation *time.Location

	// anchorNow marks searches whose first day starts from the current time
	// rather than the schedule's opening time. Set when look-ahead is
	// requested or when the caller gave no reference date.
	anchorNow bool
}

// NewRequest validates p and returns the request, or an error wrapping
// ErrInvalidConfig describing the first violated bound.
func NewRequest(p Params) (Request, error) {
	duration := time.Duration(p.DurationMinutes) * time.Minute
	if duration < MinDuration || duration > MaxDuration {
		return Request{}, fmt.Errorf("%w: duration %d minutes outside [%d, %d]",
			ErrInvalidConfig, p.DurationMinutes, int(MinDuration.Minutes()), int(MaxDuration.Minutes()))
	}

	buffer := time.Duration(p.BufferMinutes) * time.Minute
	if buffer < 0 || buffer > MaxBuffer {
		return Request{}, fmt.Errorf("%w: buffer %d minutes outside [0, %d]",
			ErrInvalidConfig, p.BufferMinutes, int(MaxBuffer.Minutes()))
	}

	probe := DefaultProbeInterval
	if p.ProbeIntervalMinutes != 0 {
		probe = time.Duration(p.ProbeIntervalMinutes) * time.Minute
		if probe < MinProbeInterval || probe > MaxProbeInterval {
			return Request{}, fmt.Errorf("%w: probe interval %d minutes outside [%d, %d]",
				ErrInvalidConfig, p.ProbeIntervalMinutes, int(MinProbeInterval.Minutes()), int(MaxProbeInterval.Minutes()))
		}
	}

	if p.Limit < 0 || p.Limit > MaxLimit {
		return Request{}, fmt.Errorf("%w: limit %d outside [1, %d]", ErrInvalidConfig, p.Limit, MaxLimit)
	}

	return Request{
		Duration:       duration,
		Buffer:         buffer,
		ProbeInterval:  probe,
		Limit:          p.Limit,
		ReferenceDate:  p.ReferenceDate,
		LookAhead:      p.LookAhead,
		ArtistLocation: p.ArtistLocation,
		anchorNow:      p.LookAhead || p.ReferenceDate.IsZero(),
	}, nil
}
