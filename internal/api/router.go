package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inklab/studio-booking/internal/artist"
	"github.com/inklab/studio-booking/internal/availability"
	"github.com/inklab/studio-booking/internal/booking"
	"github.com/inklab/studio-booking/internal/schedule"
)

type RouterConfig struct {
	Availability *availability.Service
	Bookings     *booking.Service
	Schedules    schedule.Repository
	Artists      artist.Repository
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Logger       *zap.Logger
	Env          string
	Version      string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Artist schedule and availability
	r.Route("/artists/{id}", func(r chi.Router) {
		r.Get("/availability", availabilityHandler(cfg.Availability, cfg.Artists))
		r.Get("/schedule", listScheduleHandler(cfg.Schedules))
		r.Put("/schedule/{weekday}", upsertScheduleHandler(cfg.Schedules))
		r.Delete("/schedule/{weekday}", deleteScheduleHandler(cfg.Schedules))
		r.Get("/appointments", listArtistAppointmentsHandler(cfg.Bookings))
	})

	// Appointments
	r.Post("/appointments", createAppointmentHandler(cfg.Bookings))
	r.Get("/appointments/{id}", getAppointmentHandler(cfg.Bookings))
	r.Post("/appointments/{id}/confirm", confirmAppointmentHandler(cfg.Bookings))
	r.Post("/appointments/{id}/cancel", cancelAppointmentHandler(cfg.Bookings))

	return r
}
