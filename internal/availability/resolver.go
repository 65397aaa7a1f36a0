package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inklab/studio-booking/internal/schedule"
)

// lookAheadDays bounds the day-rollover search. The horizon is inclusive:
// reference+7 is probed, reference+8 never is.
const lookAheadDays = 7

// ErrNoSchedule is returned by Resolve when no active entry exists for the
// reference day, or within the look-ahead horizon when rollover is enabled.
// Callers surface it as an empty slot list, not a failure.
var ErrNoSchedule = errors.New("no active schedule entry")

// ScheduleSource looks up the active working-hours entry for an artist on a
// day of week. Implementations return schedule.ErrEntryNotFound when none
// exists.
type ScheduleSource interface {
	GetActiveEntry(ctx context.Context, artistID uuid.UUID, weekday time.Weekday) (*schedule.Entry, error)
}

// DayResolver finds the schedule entry a slot search should run against,
// rolling the reference date forward day by day when asked to.
type DayResolver struct {
	schedules ScheduleSource
}

func NewDayResolver(schedules ScheduleSource) *DayResolver {
	return &DayResolver{schedules: schedules}
}

// Resolve returns the effective date and the active entry for it. With
// lookAhead, days reference+1 through reference+7 are probed in order after a
// miss on the reference day itself. A horizon miss yields ErrNoSchedule;
// lookup failures propagate as-is.
func (r *DayResolver) Resolve(ctx context.Context, artistID uuid.UUID, reference time.Time, lookAhead bool) (time.Time, *schedule.Entry, error) {
	maxOffset := 0
	if lookAhead {
		maxOffset = lookAheadDays
	}

	for offset := 0; offset <= maxOffset; offset++ {
		day := reference.AddDate(0, 0, offset)
		entry, err := r.schedules.GetActiveEntry(ctx, artistID, day.Weekday())
		if err != nil {
			if errors.Is(err, schedule.ErrEntryNotFound) {
				continue
			}
			return time.Time{}, nil, fmt.Errorf("look up schedule for %s: %w", day.Weekday(), err)
		}
		return day, entry, nil
	}

	return time.Time{}, nil, ErrNoSchedule
}
