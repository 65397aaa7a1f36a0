package availability

import (
	"time"

	"github.com/inklab/studio-booking/internal/schedule"
)

// generate walks the working window on date and emits non-overlapping
// candidate slots of the requested duration.
//
// The cursor advances asymmetrically: by the full slot duration after an
// emit, so the same open stretch is not re-offered in trivially shifted
// copies, and by the finer probe interval after a conflict, so occupied
// periods are still scanned at fine granularity.
func generate(entry *schedule.Entry, date time.Time, booked []Interval, req Request, now time.Time) ([]Slot, error) {
	dayStart, dayEnd, err := entry.WindowOn(date)
	if err != nil {
		return nil, err
	}

	cursor := dayStart
	if req.anchorNow {
		localNow := now.In(dayStart.Location())
		if sameDate(localNow, dayStart) {
			// The artist's day may already be underway. Round now up to
			// the next probe boundary and let the later of the two win.
			if rounded := roundUpToInterval(localNow, req.ProbeInterval); rounded.After(cursor) {
				cursor = rounded
			}
		}
	}

	if cursor.After(dayEnd) {
		return nil, nil
	}

	padded := make([]Interval, len(booked))
	for i, iv := range booked {
		padded[i] = iv.Padded(req.Buffer)
	}

	var slots []Slot
	for !cursor.Add(req.Duration).After(dayEnd) {
		end := cursor.Add(req.Duration)

		if overlapsAny(cursor, end, padded) {
			cursor = cursor.Add(req.ProbeInterval)
			continue
		}

		slots = append(slots, Slot{Start: cursor, End: end, Duration: req.Duration})
		if req.Limit > 0 && len(slots) >= req.Limit {
			break
		}
		cursor = end
	}

	return slots, nil
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, iv := range busy {
		if iv.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// roundUpToInterval rounds t up to the next wall-clock multiple of interval
// within its day. A time already on a boundary is returned unchanged.
// Rounding is done on wall-clock minutes so it stays correct in zones with
// non-hour UTC offsets.
func roundUpToInterval(t time.Time, interval time.Duration) time.Time {
	step := int(interval.Minutes())
	minutes := t.Hour()*60 + t.Minute()
	if t.Second() > 0 || t.Nanosecond() > 0 {
		minutes++
	}
	rem := minutes % step
	if rem != 0 {
		minutes += step - rem
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, minutes, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
