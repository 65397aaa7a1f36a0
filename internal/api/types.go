package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/inklab/studio-booking/internal/booking"
	"github.com/inklab/studio-booking/internal/schedule"
)

type ScheduleEntryRequest struct {
	StartTime string `json:"start_time"` // "HH:MM", 24h
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
	Active    *bool  `json:"active,omitempty"` // defaults to true
}

type ScheduleEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	ArtistID  uuid.UUID `json:"artist_id"`
	Weekday   int       `json:"weekday"` // 0 = Sunday
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Timezone  string    `json:"timezone"`
	Active    bool      `json:"active"`
}

func toScheduleEntryResponse(e *schedule.Entry) ScheduleEntryResponse {
	return ScheduleEntryResponse{
		ID:        e.ID,
		ArtistID:  e.ArtistID,
		Weekday:   int(e.Weekday),
		StartTime: minutesToClock(e.StartMinutes),
		EndTime:   minutesToClock(e.EndMinutes),
		Timezone:  e.Timezone,
		Active:    e.Active,
	}
}

type CreateAppointmentRequest struct {
	ArtistID string  `json:"artist_id"`
	ClientID string  `json:"client_id"`
	StartsAt string  `json:"starts_at"` // RFC 3339
	EndsAt   string  `json:"ends_at"`
	Notes    *string `json:"notes,omitempty"`
}

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	ArtistID      uuid.UUID `json:"artist_id"`
	ClientID      uuid.UUID `json:"client_id"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	Status        string    `json:"status"`
	DepositStatus string    `json:"deposit_status"`
	Notes         *string   `json:"notes,omitempty"`
}

func toAppointmentResponse(a *booking.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID,
		ArtistID:      a.ArtistID,
		ClientID:      a.ClientID,
		StartsAt:      a.StartsAt,
		EndsAt:        a.EndsAt,
		Status:        string(a.Status),
		DepositStatus: string(a.DepositStatus),
		Notes:         a.Notes,
	}
}
