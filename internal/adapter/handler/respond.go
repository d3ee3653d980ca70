package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okarpov/carshare/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps the domain error taxonomy onto HTTP statuses. Every
// validation outcome is a 4xx; only infrastructure failures surface as 5xx.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCarNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInactiveUser):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUserPendingConflict),
		errors.Is(err, domain.ErrUserConfirmedConflict),
		errors.Is(err, domain.ErrCarDoubleBooked),
		errors.Is(err, domain.ErrAlreadyConfirmed),
		errors.Is(err, domain.ErrBookingCancelled),
		errors.Is(err, domain.ErrCarHasBookings):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoBookings), domain.IsInvalidRange(err):
		return http.StatusBadRequest
	case domain.IsStoreError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
