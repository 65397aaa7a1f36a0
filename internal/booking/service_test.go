package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inklab/studio-booking/internal/availability"
	redisclient "github.com/inklab/studio-booking/internal/redis"
)

type fakeRepo struct {
	booked       []availability.Interval
	bookedErr    error
	appointments map[uuid.UUID]*Appointment
	created      []Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

// GetBookedIntervals is day-scoped like the SQL implementation, so tests
// catch any conflict check that only looks at the starting day.
func (f *fakeRepo) GetBookedIntervals(_ context.Context, _ uuid.UUID, date time.Time) ([]availability.Interval, error) {
	if f.bookedErr != nil {
		return nil, f.bookedErr
	}
	dayStart, dayEnd := dayBounds(date)
	var out []availability.Interval
	for _, iv := range f.booked {
		if iv.Overlaps(dayStart, dayEnd) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasConflict(_ context.Context, _ uuid.UUID, startsAt, endsAt time.Time) (bool, error) {
	if f.bookedErr != nil {
		return false, f.bookedErr
	}
	for _, iv := range f.booked {
		if iv.Overlaps(startsAt, endsAt) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	if a, ok := f.appointments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, ErrAppointmentNotFound
}

func (f *fakeRepo) CreateAppointment(_ context.Context, a Appointment) (*Appointment, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	f.created = append(f.created, a)
	cp := a
	f.appointments[a.ID] = &cp
	return &a, nil
}

func (f *fakeRepo) UpdateAppointmentStatus(_ context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	a, ok := f.appointments[id]
	if !ok || a.Status != from {
		return nil, ErrAppointmentNotFound
	}
	a.Status = to
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) ListByArtistDate(context.Context, uuid.UUID, time.Time) ([]Appointment, error) {
	var out []Appointment
	for _, a := range f.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeRepo) FindStalePending(_ context.Context, createdBefore time.Time) ([]Appointment, error) {
	var out []Appointment
	for _, a := range f.appointments {
		if a.Status == StatusPending && a.CreatedAt.Before(createdBefore) {
			out = append(out, *a)
		}
	}
	return out, nil
}

// passthroughLocker runs the critical section inline.
type passthroughLocker struct{ calls int }

func (l *passthroughLocker) WithArtistLock(ctx context.Context, _ uuid.UUID, fn func(ctx context.Context) error) error {
	l.calls++
	return fn(ctx)
}

// contendedLocker simulates another booking holding the artist's lock.
type contendedLocker struct{}

func (contendedLocker) WithArtistLock(context.Context, uuid.UUID, func(ctx context.Context) error) error {
	return redisclient.ErrLockNotAcquired
}

func newTestService(repo Repository, locker redisclient.Locker) *Service {
	return NewService(repo, locker, nil, zap.NewNop())
}

func interval(t *testing.T, start, end string) availability.Interval {
	t.Helper()
	s, err := time.Parse("2006-01-02 15:04", start)
	if err != nil {
		t.Fatalf("parse %q: %v", start, err)
	}
	e, err := time.Parse("2006-01-02 15:04", end)
	if err != nil {
		t.Fatalf("parse %q: %v", end, err)
	}
	return availability.Interval{Start: s, End: e}
}

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	locker := &passthroughLocker{}
	svc := newTestService(repo, locker)

	iv := interval(t, "2026-01-06 13:00", "2026-01-06 15:00")
	appt, err := svc.Create(context.Background(), uuid.New(), uuid.New(), iv.Start, iv.End, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if appt.Status != StatusPending {
		t.Errorf("status = %s, want pending", appt.Status)
	}
	if appt.DepositStatus != DepositUnpaid {
		t.Errorf("deposit status = %s, want unpaid", appt.DepositStatus)
	}
	if locker.calls != 1 {
		t.Errorf("lock taken %d times, want 1", locker.calls)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 created appointment, got %d", len(repo.created))
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	repo := newFakeRepo()
	repo.booked = []availability.Interval{interval(t, "2026-01-06 13:00", "2026-01-06 15:00")}
	svc := newTestService(repo, &passthroughLocker{})

	iv := interval(t, "2026-01-06 14:00", "2026-01-06 16:00")
	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), iv.Start, iv.End, nil)
	if !errors.Is(err, ErrTimeConflict) {
		t.Fatalf("expected ErrTimeConflict, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Error("no appointment may be created on conflict")
	}
}

func TestCreateRejectsMidnightSpanningOverlap(t *testing.T) {
	repo := newFakeRepo()
	// Existing booking lies entirely on the following day.
	repo.booked = []availability.Interval{interval(t, "2026-01-07 00:30", "2026-01-07 02:00")}
	svc := newTestService(repo, &passthroughLocker{})

	// The new appointment starts before midnight and runs into the booking.
	iv := interval(t, "2026-01-06 23:00", "2026-01-07 02:00")
	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), iv.Start, iv.End, nil)
	if !errors.Is(err, ErrTimeConflict) {
		t.Fatalf("expected ErrTimeConflict across midnight, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Error("no appointment may be created on conflict")
	}
}

func TestCreateAllowsBoundaryTouch(t *testing.T) {
	repo := newFakeRepo()
	repo.booked = []availability.Interval{interval(t, "2026-01-06 11:00", "2026-01-06 13:00")}
	svc := newTestService(repo, &passthroughLocker{})

	// Starts exactly when the existing booking ends.
	iv := interval(t, "2026-01-06 13:00", "2026-01-06 15:00")
	if _, err := svc.Create(context.Background(), uuid.New(), uuid.New(), iv.Start, iv.End, nil); err != nil {
		t.Fatalf("boundary-touching booking should be allowed: %v", err)
	}
}

func TestCreateRejectsInvertedInterval(t *testing.T) {
	svc := newTestService(newFakeRepo(), &passthroughLocker{})

	iv := interval(t, "2026-01-06 15:00", "2026-01-06 13:00")
	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), iv.Start, iv.End, nil)
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestCreateWhenArtistLocked(t *testing.T) {
	svc := newTestService(newFakeRepo(), contendedLocker{})

	iv := interval(t, "2026-01-06 13:00", "2026-01-06 15:00")
	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), iv.Start, iv.End, nil)
	if !errors.Is(err, ErrArtistBusy) {
		t.Fatalf("expected ErrArtistBusy, got %v", err)
	}
}

func TestConfirmAndCancel(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &passthroughLocker{})

	iv := interval(t, "2026-01-06 13:00", "2026-01-06 15:00")
	appt, err := svc.Create(context.Background(), uuid.New(), uuid.New(), iv.Start, iv.End, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	confirmed, err := svc.Confirm(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", confirmed.Status)
	}

	// Confirming twice is an invalid transition.
	if _, err := svc.Confirm(context.Background(), appt.ID); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("double confirm: expected ErrInvalidStatusTransition, got %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}

	if _, err := svc.Cancel(context.Background(), appt.ID); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("double cancel: expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestConfirmUnknownAppointment(t *testing.T) {
	svc := newTestService(newFakeRepo(), &passthroughLocker{})

	if _, err := svc.Confirm(context.Background(), uuid.New()); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestExpireStaleHolds(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &passthroughLocker{})

	iv := interval(t, "2026-01-06 13:00", "2026-01-06 15:00")
	stale, err := svc.Create(context.Background(), uuid.New(), uuid.New(), iv.Start, iv.End, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.appointments[stale.ID].CreatedAt = time.Now().Add(-72 * time.Hour)

	iv2 := interval(t, "2026-01-07 13:00", "2026-01-07 15:00")
	fresh, err := svc.Create(context.Background(), uuid.New(), uuid.New(), iv2.Start, iv2.End, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.ExpireStaleHolds(context.Background(), 48*time.Hour); err != nil {
		t.Fatalf("expire stale holds: %v", err)
	}

	if got := repo.appointments[stale.ID].Status; got != StatusCancelled {
		t.Errorf("stale hold status = %s, want cancelled", got)
	}
	if got := repo.appointments[fresh.ID].Status; got != StatusPending {
		t.Errorf("fresh hold status = %s, want still pending", got)
	}
}
