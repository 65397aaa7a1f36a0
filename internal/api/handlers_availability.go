package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inklab/studio-booking/internal/artist"
	"github.com/inklab/studio-booking/internal/availability"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
	dateLayout     = "2006-01-02"
)

func availabilityHandler(svc *availability.Service, artists artist.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_artist_id", "id must be a valid UUID")
			return
		}

		art, err := artists.GetArtistByID(r.Context(), artistID)
		if err != nil {
			if errors.Is(err, artist.ErrArtistNotFound) {
				writeError(w, http.StatusNotFound, "artist_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		q := r.URL.Query()

		params := availability.Params{
			LookAhead: q.Get("look_ahead") == "true" || q.Get("look_ahead") == "1",
		}
		if loc, err := time.LoadLocation(art.Timezone); err == nil {
			params.ArtistLocation = loc
		}

		params.DurationMinutes, err = intQuery(q.Get("duration"), 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_duration", "duration must be an integer number of minutes")
			return
		}
		params.BufferMinutes, err = intQuery(q.Get("buffer"), 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_buffer", "buffer must be an integer number of minutes")
			return
		}
		params.ProbeIntervalMinutes, err = intQuery(q.Get("probe_interval"), 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_probe_interval", "probe_interval must be an integer number of minutes")
			return
		}
		params.Limit, err = intQuery(q.Get("limit"), 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}

		if ds := q.Get("date"); ds != "" {
			ref, err := time.Parse(dateLayout, ds)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
				return
			}
			params.ReferenceDate = ref
		}

		page, err := intQuery(q.Get("page"), 1)
		if err != nil || page < 1 {
			writeError(w, http.StatusBadRequest, "invalid_page", "page must be a positive integer")
			return
		}
		perPage, err := intQuery(q.Get("per_page"), defaultPerPage)
		if err != nil || perPage < 1 || perPage > maxPerPage {
			writeError(w, http.StatusBadRequest, "invalid_per_page", "per_page must be between 1 and 100")
			return
		}

		req, err := availability.NewRequest(params)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid_configuration", err.Error())
			return
		}

		slots, err := svc.FindAvailableSlots(r.Context(), artistID, req)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		result, err := availability.Paginate(slots, page, perPage)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid_configuration", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func intQuery(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
