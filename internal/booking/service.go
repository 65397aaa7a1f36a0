package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	redisclient "github.com/inklab/studio-booking/internal/redis"
)

var (
	ErrTimeConflict            = errors.New("appointment overlaps an existing booking")
	ErrArtistBusy              = errors.New("artist is being booked, please retry")
	ErrInvalidInterval         = errors.New("appointment end must be after start")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

type Service struct {
	repo   Repository
	locker redisclient.Locker
	cache  *IntervalCache
	log    *zap.Logger
}

func NewService(repo Repository, locker redisclient.Locker, cache *IntervalCache, log *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
		cache:  cache,
		log:    log,
	}
}

// Create books the interval for the artist. It takes the artist's lock and
// re-checks conflicts against the repository inside the critical section:
// the availability engine may have offered this window from a cached view,
// so this check is the one that actually prevents double booking.
func (s *Service) Create(ctx context.Context, artistID, clientID uuid.UUID, startsAt, endsAt time.Time, notes *string) (*Appointment, error) {
	if !endsAt.After(startsAt) {
		return nil, ErrInvalidInterval
	}

	var created *Appointment

	err := s.locker.WithArtistLock(ctx, artistID, func(lockCtx context.Context) error {
		conflict, err := s.BookedIntervalConflict(lockCtx, artistID, startsAt, endsAt)
		if err != nil {
			return err
		}
		if conflict {
			return ErrTimeConflict
		}

		appt, err := s.repo.CreateAppointment(lockCtx, Appointment{
			ArtistID:      artistID,
			ClientID:      clientID,
			StartsAt:      startsAt,
			EndsAt:        endsAt,
			Status:        StatusPending,
			DepositStatus: DepositUnpaid,
			Notes:         notes,
		})
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		created = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrArtistBusy
		}
		return nil, err
	}

	s.invalidate(ctx, created)

	s.log.Info("appointment created",
		zap.Stringer("appointment_id", created.ID),
		zap.Stringer("artist_id", artistID),
		zap.Time("starts_at", created.StartsAt),
	)

	return created, nil
}

// Confirm moves a pending appointment to confirmed.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusPending, StatusConfirmed)
}

// Cancel releases the appointment's time. Pending and confirmed appointments
// can both be cancelled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if appt.Status == StatusCancelled {
		return nil, ErrInvalidStatusTransition
	}
	return s.transition(ctx, id, appt.Status, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	updated, err := s.repo.UpdateAppointmentStatus(ctx, id, from, to)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			// Either the appointment does not exist or it is not in the
			// expected state; disambiguate for the caller.
			if _, getErr := s.repo.GetAppointmentByID(ctx, id); getErr == nil {
				return nil, ErrInvalidStatusTransition
			}
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	s.invalidate(ctx, updated)

	s.log.Info("appointment status changed",
		zap.Stringer("appointment_id", updated.ID),
		zap.String("status", string(updated.Status)),
	)

	return updated, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *Service) ListByArtistDate(ctx context.Context, artistID uuid.UUID, date time.Time) ([]Appointment, error) {
	appts, err := s.repo.ListByArtistDate(ctx, artistID, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// ExpireStaleHolds cancels pending appointments whose hold has outlived ttl
// without a confirmation. Intended to be called periodically by the worker.
func (s *Service) ExpireStaleHolds(ctx context.Context, ttl time.Duration) error {
	stale, err := s.repo.FindStalePending(ctx, time.Now().Add(-ttl))
	if err != nil {
		return fmt.Errorf("find stale pending appointments: %w", err)
	}

	for _, appt := range stale {
		cancelled, err := s.repo.UpdateAppointmentStatus(ctx, appt.ID, StatusPending, StatusCancelled)
		if err != nil {
			if errors.Is(err, ErrAppointmentNotFound) {
				// Confirmed or cancelled since we listed it.
				continue
			}
			s.log.Error("failed to expire appointment hold",
				zap.Stringer("appointment_id", appt.ID), zap.Error(err))
			continue
		}
		s.invalidate(ctx, cancelled)
		s.log.Info("expired unconfirmed appointment hold",
			zap.Stringer("appointment_id", cancelled.ID),
			zap.Stringer("artist_id", cancelled.ArtistID),
		)
	}

	return nil
}

// BookedIntervalConflict reports whether the interval would collide with the
// artist's existing bookings. The check covers the whole interval, not just
// its starting day, so midnight-spanning appointments are compared against
// both days they touch. Create runs it inside the artist lock; without the
// lock it is a dry-run answer only.
func (s *Service) BookedIntervalConflict(ctx context.Context, artistID uuid.UUID, startsAt, endsAt time.Time) (bool, error) {
	conflict, err := s.repo.HasConflict(ctx, artistID, startsAt, endsAt)
	if err != nil {
		return false, fmt.Errorf("check booked intervals: %w", err)
	}
	return conflict, nil
}

func (s *Service) invalidate(ctx context.Context, a *Appointment) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, a.ArtistID, a.StartsAt, a.EndsAt)
}
