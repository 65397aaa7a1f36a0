package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inklab/studio-booking/internal/schedule"
)

func listScheduleHandler(repo schedule.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_artist_id", "id must be a valid UUID")
			return
		}

		entries, err := repo.ListByArtist(r.Context(), artistID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		resp := make([]ScheduleEntryResponse, 0, len(entries))
		for i := range entries {
			resp = append(resp, toScheduleEntryResponse(&entries[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func upsertScheduleHandler(repo schedule.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_artist_id", "id must be a valid UUID")
			return
		}

		weekday, err := parseWeekday(chi.URLParam(r, "weekday"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_weekday", err.Error())
			return
		}

		var req ScheduleEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		startMin, err := clockToMinutes(req.StartTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start_time", err.Error())
			return
		}
		endMin, err := clockToMinutes(req.EndTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_end_time", err.Error())
			return
		}
		if endMin <= startMin {
			writeError(w, http.StatusBadRequest, "invalid_window", "end_time must be after start_time")
			return
		}
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_timezone", "unknown timezone name")
			return
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}

		entry, err := repo.UpsertEntry(r.Context(), schedule.Entry{
			ArtistID:     artistID,
			Weekday:      weekday,
			StartMinutes: startMin,
			EndMinutes:   endMin,
			Timezone:     req.Timezone,
			Active:       active,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toScheduleEntryResponse(entry))
	}
}

func deleteScheduleHandler(repo schedule.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_artist_id", "id must be a valid UUID")
			return
		}

		weekday, err := parseWeekday(chi.URLParam(r, "weekday"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_weekday", err.Error())
			return
		}

		if err := repo.DeleteEntry(r.Context(), artistID, weekday); err != nil {
			if errors.Is(err, schedule.ErrEntryNotFound) {
				writeError(w, http.StatusNotFound, "entry_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// parseWeekday accepts 0-6 with Sunday as 0.
func parseWeekday(raw string) (time.Weekday, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 6 {
		return 0, fmt.Errorf("weekday must be 0 (Sunday) through 6 (Saturday)")
	}
	return time.Weekday(n), nil
}

func clockToMinutes(raw string) (int, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, fmt.Errorf("time must be HH:MM in 24h format")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func minutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
