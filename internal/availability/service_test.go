package availability

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/inklab/studio-booking/internal/schedule"
)

type fakeIntervalSource struct {
	intervals []Interval
	err       error
	gotDate   time.Time
}

func (f *fakeIntervalSource) GetBookedIntervals(_ context.Context, _ uuid.UUID, date time.Time) ([]Interval, error) {
	f.gotDate = date
	if f.err != nil {
		return nil, f.err
	}
	return f.intervals, nil
}

func TestFindAvailableSlotsNoSchedule(t *testing.T) {
	svc := NewService(&weekdaySource{entries: nil}, &fakeIntervalSource{})

	req := mustRequest(t, Params{DurationMinutes: 60, ReferenceDate: sunday, LookAhead: true})
	slots, err := svc.FindAvailableSlots(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("a schedule miss is not an error: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected an empty, non-nil slot list, got %v", slots)
	}
}

func TestFindAvailableSlotsRollsOverToScheduledDay(t *testing.T) {
	booked := &fakeIntervalSource{}
	svc := NewService(&weekdaySource{entries: tueSatEntries()}, booked)
	svc.now = func() time.Time { return longAgo }

	req := mustRequest(t, Params{DurationMinutes: 120, ReferenceDate: sunday, LookAhead: true})
	slots, err := svc.FindAvailableSlots(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}

	if len(slots) == 0 {
		t.Fatal("expected slots on the next scheduled day")
	}
	wantDay := sunday.AddDate(0, 0, 2) // Tuesday
	if !booked.gotDate.Equal(wantDay) {
		t.Errorf("booked intervals fetched for %s, want %s", booked.gotDate, wantDay)
	}
	y, m, d := slots[0].Start.Date()
	wy, wm, wd := wantDay.Date()
	if y != wy || m != wm || d != wd {
		t.Errorf("first slot on %04d-%02d-%02d, want the Tuesday %04d-%02d-%02d", y, m, d, wy, wm, wd)
	}
}

func TestFindAvailableSlotsFullyBookedDay(t *testing.T) {
	loc := testLocation(t)
	tuesday := sunday.AddDate(0, 0, 2)
	booked := &fakeIntervalSource{intervals: []Interval{{
		Start: time.Date(2026, 1, 6, 11, 0, 0, 0, loc),
		End:   time.Date(2026, 1, 6, 18, 0, 0, 0, loc),
	}}}
	svc := NewService(&weekdaySource{entries: tueSatEntries()}, booked)

	req := mustRequest(t, Params{DurationMinutes: 60, ReferenceDate: tuesday})
	slots, err := svc.FindAvailableSlots(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("a fully booked day is not an error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestFindAvailableSlotsPropagatesIntervalFailure(t *testing.T) {
	boom := errors.New("redis timeout")
	svc := NewService(&weekdaySource{entries: tueSatEntries()}, &fakeIntervalSource{err: boom})

	req := mustRequest(t, Params{DurationMinutes: 60, ReferenceDate: sunday.AddDate(0, 0, 2)})
	_, err := svc.FindAvailableSlots(context.Background(), uuid.New(), req)
	if !errors.Is(err, boom) {
		t.Fatalf("expected collaborator failure to propagate, got %v", err)
	}
}

func TestFindAvailableSlotsDefaultsReferenceToNow(t *testing.T) {
	booked := &fakeIntervalSource{}
	svc := NewService(&weekdaySource{entries: tueSatEntries()}, booked)

	loc := testLocation(t)
	// Tuesday 13:47 local: the first offer must start on the next probe
	// boundary, not at the 11:00 schedule start.
	svc.now = func() time.Time { return time.Date(2026, 1, 6, 13, 47, 0, 0, loc) }

	req := mustRequest(t, Params{DurationMinutes: 60})
	slots, err := svc.FindAvailableSlots(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	want := time.Date(2026, 1, 6, 14, 0, 0, 0, loc)
	if !slots[0].Start.Equal(want) {
		t.Errorf("first slot starts %s, want %s", slots[0].Start, want)
	}
}

// recordingSource tracks which weekdays were probed.
type recordingSource struct {
	entries map[time.Weekday]*schedule.Entry
	probed  []time.Weekday
}

func (s *recordingSource) GetActiveEntry(_ context.Context, _ uuid.UUID, wd time.Weekday) (*schedule.Entry, error) {
	s.probed = append(s.probed, wd)
	if e, ok := s.entries[wd]; ok {
		return e, nil
	}
	return nil, schedule.ErrEntryNotFound
}

func TestFindAvailableSlotsResolvesTodayInArtistTimezone(t *testing.T) {
	src := &recordingSource{entries: tueSatEntries()}
	svc := NewService(src, &fakeIntervalSource{})

	// Tuesday 03:30 UTC is still Monday 22:30 in New York. The resolver must
	// probe the artist's Monday, not the server's Tuesday.
	svc.now = func() time.Time { return time.Date(2026, 1, 6, 3, 30, 0, 0, time.UTC) }

	req := mustRequest(t, Params{DurationMinutes: 60, ArtistLocation: testLocation(t)})
	slots, err := svc.FindAvailableSlots(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("find slots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("Monday has no schedule, got %d slots", len(slots))
	}
	if len(src.probed) != 1 || src.probed[0] != time.Monday {
		t.Errorf("probed weekdays %v, want just the artist's Monday", src.probed)
	}
}

func TestSlotWireFormat(t *testing.T) {
	loc := testLocation(t)
	slot := Slot{
		Start:    time.Date(2026, 1, 6, 13, 0, 0, 0, loc),
		End:      time.Date(2026, 1, 6, 15, 0, 0, 0, loc),
		Duration: 2 * time.Hour,
	}

	raw, err := json.Marshal(slot)
	if err != nil {
		t.Fatalf("marshal slot: %v", err)
	}

	want := `{"starts_at":"2026-01-06 13:00:00","ends_at":"2026-01-06 15:00:00","duration":120}`
	if string(raw) != want {
		t.Errorf("wire form = %s, want %s", raw, want)
	}
}
