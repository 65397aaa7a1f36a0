package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookedIntervalSource returns the committed appointment intervals for an
// artist on a calendar date. Order is not assumed.
type BookedIntervalSource interface {
	GetBookedIntervals(ctx context.Context, artistID uuid.UUID, date time.Time) ([]Interval, error)
}

// Service computes bookable slots for an artist. It is a pure function of
// its collaborators' answers: all I/O happens in the schedule and
// booked-interval sources before the walk runs, so concurrent searches never
// contend on anything here.
type Service struct {
	resolver *DayResolver
	booked   BookedIntervalSource

	// now is swappable for tests.
	now func() time.Time
}

func NewService(schedules ScheduleSource, booked BookedIntervalSource) *Service {
	return &Service{
		resolver: NewDayResolver(schedules),
		booked:   booked,
		now:      time.Now,
	}
}

// FindAvailableSlots resolves the day to search, loads that day's booked
// intervals and generates candidate slots. Finding no schedule within the
// request's horizon yields an empty list, as does a fully booked day;
// neither is an error. Collaborator failures propagate.
func (s *Service) FindAvailableSlots(ctx context.Context, artistID uuid.UUID, req Request) ([]Slot, error) {
	now := s.now()

	reference := req.ReferenceDate
	if reference.IsZero() {
		// "Today" is the artist's today, not the server's.
		reference = now
		if req.ArtistLocation != nil {
			reference = now.In(req.ArtistLocation)
		}
	}

	effectiveDate, entry, err := s.resolver.Resolve(ctx, artistID, reference, req.LookAhead)
	if err != nil {
		if errors.Is(err, ErrNoSchedule) {
			return []Slot{}, nil
		}
		return nil, err
	}

	booked, err := s.booked.GetBookedIntervals(ctx, artistID, effectiveDate)
	if err != nil {
		return nil, fmt.Errorf("load booked intervals: %w", err)
	}

	slots, err := generate(entry, effectiveDate, booked, req, now)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []Slot{}
	}
	return slots, nil
}
