package booking

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

type DepositStatus string

const (
	DepositUnpaid   DepositStatus = "unpaid"
	DepositPaid     DepositStatus = "paid"
	DepositRefunded DepositStatus = "refunded"
)

// Appointment is a committed booking for an artist. Pending and confirmed
// appointments both occupy the artist's time; cancelled ones do not.
// DepositStatus is carried for clients of the API but not interpreted here.
type Appointment struct {
	ID            uuid.UUID
	ArtistID      uuid.UUID
	ClientID      uuid.UUID
	StartsAt      time.Time
	EndsAt        time.Time
	Status        Status
	DepositStatus DepositStatus
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
