package availability

import (
	"encoding/json"
	"time"
)

// wireTimeLayout is the timestamp format existing consumers expect,
// rendered in the artist's schedule timezone rather than UTC.
const wireTimeLayout = "2006-01-02 15:04:05"

// Interval is a committed busy period for an artist. The engine treats it as
// opaque beyond its bounds.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the half-open interval [start, end) intersects
// [iv.Start, iv.End). Boundary-touching intervals do not overlap: a booking
// ending exactly when a candidate starts leaves the candidate free.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}

// Padded returns the interval widened by the given duration on both sides.
func (iv Interval) Padded(by time.Duration) Interval {
	if by <= 0 {
		return iv
	}
	return Interval{Start: iv.Start.Add(-by), End: iv.End.Add(by)}
}

// Slot is a candidate bookable window. Slots are produced fresh per request
// and never persisted.
type Slot struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

type slotWire struct {
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
	Duration int    `json:"duration"`
}

func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(slotWire{
		StartsAt: s.Start.Format(wireTimeLayout),
		EndsAt:   s.End.Format(wireTimeLayout),
		Duration: int(s.Duration.Minutes()),
	})
}
