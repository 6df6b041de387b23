package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/NikolaiKhriapov/full-stack-app/internal/auth"
	"github.com/NikolaiKhriapov/full-stack-app/internal/filestore"
	"github.com/NikolaiKhriapov/full-stack-app/internal/repository"
	"github.com/NikolaiKhriapov/full-stack-app/internal/services/customer"
)

// APIError is the JSON error envelope returned by every failing endpoint.
type APIError struct {
	Path          string `json:"path"`
	Message       string `json:"message"`
	StatusCode    int    `json:"statusCode"`
	LocalDateTime string `json:"localDateTime"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{
		Path:          r.URL.Path,
		Message:       message,
		StatusCode:    status,
		LocalDateTime: time.Now().Format(time.RFC3339),
	}); err != nil {
		log.Printf("failed to write error response: %v", err)
	}
}

// writeServiceError maps domain errors onto HTTP statuses. Unknown errors are
// logged and reported as an opaque 500 so internals never leak to clients.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, customer.ErrProfileImageNotFound), errors.Is(err, filestore.ErrNotFound):
		writeError(w, r, http.StatusNotFound, customer.ErrProfileImageNotFound.Error())
	case errors.Is(err, customer.ErrEmailTaken):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, customer.ErrNoChanges):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, customer.ErrValidation):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
