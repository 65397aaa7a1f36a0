package artist

import (
	"time"

	"github.com/google/uuid"
)

// Artist is a tattoo artist whose time is being scheduled. Timezone is the
// default for new schedule entries; each entry carries its own copy.
type Artist struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Client struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
