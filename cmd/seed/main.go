package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inklab/studio-booking/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	artistIDs, err := seedArtists(context.Background(), pool, 25)
	if err != nil {
		log.Fatalf("seed artists: %v", err)
	}
	clientIDs, err := seedClients(context.Background(), pool, 400)
	if err != nil {
		log.Fatalf("seed clients: %v", err)
	}
	if err := seedSchedules(context.Background(), pool, artistIDs); err != nil {
		log.Fatalf("seed schedules: %v", err)
	}
	if err := seedAppointments(context.Background(), pool, artistIDs, clientIDs); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedArtists(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d artists", count)

	timezones := []string{
		"America/New_York",
		"America/Chicago",
		"America/Los_Angeles",
		"Europe/London",
		"Europe/Berlin",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.Name()
		email := gofakeit.Email()
		tz := timezones[gofakeit.Number(0, len(timezones)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO artists (id, name, email, timezone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
		`, id, name, email, tz)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, tx.Commit(ctx)
}

func seedClients(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d clients", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.Name()
		email := gofakeit.Email()
		phone := gofakeit.Phone()

		_, err := tx.Exec(ctx, `
			INSERT INTO clients (id, name, email, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
		`, id, name, email, phone)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, tx.Commit(ctx)
}

// seedSchedules gives every artist a Tue-Sat working week, the studio's
// usual pattern.
func seedSchedules(ctx context.Context, pool *pgxpool.Pool, artistIDs []uuid.UUID) error {
	log.Printf("seeding schedules for %d artists", len(artistIDs))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, artistID := range artistIDs {
		var tz string
		if err := tx.QueryRow(ctx, `SELECT timezone FROM artists WHERE id = $1`, artistID).Scan(&tz); err != nil {
			return err
		}

		startMin := 60 * gofakeit.Number(10, 12) // opens 10:00-12:00
		endMin := 60 * gofakeit.Number(18, 20)   // closes 18:00-20:00

		for weekday := 2; weekday <= 6; weekday++ { // Tuesday through Saturday
			_, err := tx.Exec(ctx, `
				INSERT INTO schedule_entries (id, artist_id, weekday, start_minutes, end_minutes, timezone, active, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, true, now(), now())
			`, uuid.New(), artistID, weekday, startMin, endMin, tz)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, artistIDs, clientIDs []uuid.UUID) error {
	log.Printf("seeding appointments")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for _, artistID := range artistIDs {
		// A handful of bookings spread over the next two weeks, on the hour
		// so they land inside the seeded working windows.
		for i := 0; i < gofakeit.Number(3, 8); i++ {
			day := now.AddDate(0, 0, gofakeit.Number(1, 14))
			hour := gofakeit.Number(12, 16)
			start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
			end := start.Add(time.Duration(gofakeit.Number(1, 3)) * time.Hour)

			clientID := clientIDs[gofakeit.Number(0, len(clientIDs)-1)]
			status := "confirmed"
			if gofakeit.Bool() {
				status = "pending"
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO appointments (id, artist_id, client_id, starts_at, ends_at, status, deposit_status, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, 'unpaid', now(), now())
			`, uuid.New(), artistID, clientID, start, end, status)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
