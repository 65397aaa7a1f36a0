package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	var weekday int

	err := row.Scan(
		&e.ID,
		&e.ArtistID,
		&weekday,
		&e.StartMinutes,
		&e.EndMinutes,
		&e.Timezone,
		&e.Active,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	e.Weekday = time.Weekday(weekday)
	return &e, nil
}

func (r *PgRepository) GetActiveEntry(ctx context.Context, artistID uuid.UUID, weekday time.Weekday) (*Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, artist_id, weekday, start_minutes, end_minutes, timezone, active, created_at, updated_at
		FROM schedule_entries
		WHERE artist_id = $1 AND weekday = $2 AND active
	`, artistID, int(weekday))
	return scanEntry(row)
}

func (r *PgRepository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, artist_id, weekday, start_minutes, end_minutes, timezone, active, created_at, updated_at
		FROM schedule_entries
		WHERE artist_id = $1
		ORDER BY weekday
	`, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) UpsertEntry(ctx context.Context, e Entry) (*Entry, error) {
	id := e.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO schedule_entries (id, artist_id, weekday, start_minutes, end_minutes, timezone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (artist_id, weekday)
		DO UPDATE SET start_minutes = EXCLUDED.start_minutes,
		              end_minutes   = EXCLUDED.end_minutes,
		              timezone      = EXCLUDED.timezone,
		              active        = EXCLUDED.active,
		              updated_at    = now()
		RETURNING id, artist_id, weekday, start_minutes, end_minutes, timezone, active, created_at, updated_at
	`, id, e.ArtistID, int(e.Weekday), e.StartMinutes, e.EndMinutes, e.Timezone, e.Active)

	return scanEntry(row)
}

func (r *PgRepository) DeleteEntry(ctx context.Context, artistID uuid.UUID, weekday time.Weekday) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM schedule_entries
		WHERE artist_id = $1 AND weekday = $2
	`, artistID, int(weekday))
	if err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}
