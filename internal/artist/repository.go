package artist

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrArtistNotFound = errors.New("artist not found")
	ErrClientNotFound = errors.New("client not found")
)

type Repository interface {
	GetArtistByID(ctx context.Context, id uuid.UUID) (*Artist, error)
	GetClientByID(ctx context.Context, id uuid.UUID) (*Client, error)
	CreateArtist(ctx context.Context, a Artist) (*Artist, error)
	CreateClient(ctx context.Context, c Client) (*Client, error)
}
