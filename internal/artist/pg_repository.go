package artist

import (
	"context"
	"errors"

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

func scanArtist(row pgx.Row) (*Artist, error) {
	var a Artist
	var email *string

	err := row.Scan(
		&a.ID,
		&a.Name,
		&email,
		&a.Timezone,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}

	a.Email = email
	return &a, nil
}

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	var email, phone *string

	err := row.Scan(
		&c.ID,
		&c.Name,
		&email,
		&phone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	c.Email = email
	c.Phone = phone
	return &c, nil
}

func (r *PgRepository) GetArtistByID(ctx context.Context, id uuid.UUID) (*Artist, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, timezone, created_at, updated_at
		FROM artists
		WHERE id = $1
	`, id)
	return scanArtist(row)
}

func (r *PgRepository) GetClientByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, created_at, updated_at
		FROM clients
		WHERE id = $1
	`, id)
	return scanClient(row)
}

func (r *PgRepository) CreateArtist(ctx context.Context, a Artist) (*Artist, error) {
	id := a.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO artists (id, name, email, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, name, email, timezone, created_at, updated_at
	`, id, a.Name, a.Email, a.Timezone)

	return scanArtist(row)
}

func (r *PgRepository) CreateClient(ctx context.Context, c Client) (*Client, error) {
	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO clients (id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, name, email, phone, created_at, updated_at
	`, id, c.Name, c.Email, c.Phone)

	return scanClient(row)
}
