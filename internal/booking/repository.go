package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/inklab/studio-booking/internal/availability"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Repository contains all DB interactions needed by the booking service.
type Repository interface {
	// GetBookedIntervals returns the occupied ranges (pending + confirmed)
	// for the artist on the given calendar date, interpreted in the date's
	// location.
	GetBookedIntervals(ctx context.Context, artistID uuid.UUID, date time.Time) ([]availability.Interval, error)

	// HasConflict reports whether any pending or confirmed appointment
	// overlaps [startsAt, endsAt). Unlike GetBookedIntervals it is not
	// scoped to a calendar day, so it catches midnight-spanning overlaps.
	HasConflict(ctx context.Context, artistID uuid.UUID, startsAt, endsAt time.Time) (bool, error)

	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error)
	ListByArtistDate(ctx context.Context, artistID uuid.UUID, date time.Time) ([]Appointment, error)

	// Hold-expiry worker
	FindStalePending(ctx context.Context, createdBefore time.Time) ([]Appointment, error)
}
