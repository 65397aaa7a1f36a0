package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one recurring weekly working-hours record for an artist.
// Weekday follows time.Weekday, so Sunday is 0. Start and end are wall-clock
// minutes from midnight in the entry's timezone; no date is attached.
// At most one active entry exists per (artist, weekday).
type Entry struct {
	ID           uuid.UUID
	ArtistID     uuid.UUID
	Weekday      time.Weekday
	StartMinutes int
	EndMinutes   int
	Timezone     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Location resolves the entry's timezone name.
func (e *Entry) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load schedule timezone %q: %w", e.Timezone, err)
	}
	return loc, nil
}

// WindowOn materializes the entry's working window on a concrete calendar
// date, in the entry's timezone. The date's own year/month/day are used;
// its location is ignored.
func (e *Entry) WindowOn(date time.Time) (start, end time.Time, err error) {
	loc, err := e.Location()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
	start = midnight.Add(time.Duration(e.StartMinutes) * time.Minute)
	end = midnight.Add(time.Duration(e.EndMinutes) * time.Minute)
	return start, end, nil
}
