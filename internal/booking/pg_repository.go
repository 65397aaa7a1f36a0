package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inklab/studio-booking/internal/availability"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var notes *string

	err := row.Scan(
		&a.ID,
		&a.ArtistID,
		&a.ClientID,
		&a.StartsAt,
		&a.EndsAt,
		&a.Status,
		&a.DepositStatus,
		&notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Notes = notes
	return &a, nil
}

// dayBounds returns the [midnight, next midnight) range of date in its own
// location.
func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

func (r *PgRepository) GetBookedIntervals(ctx context.Context, artistID uuid.UUID, date time.Time) ([]availability.Interval, error) {
	dayStart, dayEnd := dayBounds(date)

	rows, err := r.pool.Query(ctx, `
		SELECT starts_at, ends_at
		FROM appointments
		WHERE artist_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND starts_at < $3
		  AND ends_at > $2
		ORDER BY starts_at
	`, artistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []availability.Interval
	for rows.Next() {
		var iv availability.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, err
		}
		result = append(result, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) HasConflict(ctx context.Context, artistID uuid.UUID, startsAt, endsAt time.Time) (bool, error) {
	var conflict bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM appointments
			WHERE artist_id = $1
			  AND status IN ('pending', 'confirmed')
			  AND starts_at < $3
			  AND ends_at > $2
		)
	`, artistID, startsAt, endsAt).Scan(&conflict)
	if err != nil {
		return false, err
	}
	return conflict, nil
}

func (r *PgRepository) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, artist_id, client_id, starts_at, ends_at, status, deposit_status, notes, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error) {
	id := a.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, artist_id, client_id, starts_at, ends_at, status, deposit_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING id, artist_id, client_id, starts_at, ends_at, status, deposit_status, notes, created_at, updated_at
	`, id, a.ArtistID, a.ClientID, a.StartsAt, a.EndsAt, a.Status, a.DepositStatus, a.Notes)

	return scanAppointment(row)
}

func (r *PgRepository) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
		  AND status = $3
		RETURNING id, artist_id, client_id, starts_at, ends_at, status, deposit_status, notes, created_at, updated_at
	`, id, to, from)

	return scanAppointment(row)
}

func (r *PgRepository) FindStalePending(ctx context.Context, createdBefore time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, artist_id, client_id, starts_at, ends_at, status, deposit_status, notes, created_at, updated_at
		FROM appointments
		WHERE status = 'pending'
		  AND created_at < $1
	`, createdBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) ListByArtistDate(ctx context.Context, artistID uuid.UUID, date time.Time) ([]Appointment, error) {
	dayStart, dayEnd := dayBounds(date)

	rows, err := r.pool.Query(ctx, `
		SELECT id, artist_id, client_id, starts_at, ends_at, status, deposit_status, notes, created_at, updated_at
		FROM appointments
		WHERE artist_id = $1
		  AND starts_at < $3
		  AND ends_at > $2
		ORDER BY starts_at
	`, artistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
