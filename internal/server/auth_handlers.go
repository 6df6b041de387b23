package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/NikolaiKhriapov/full-stack-app/internal/services/login"
)

// loginRequest carries the credentials for POST /api/v1/auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandlers wires the authentication endpoints.
type AuthHandlers struct {
	service *login.Service
}

// NewAuthHandlers creates the handler set for authentication operations.
func NewAuthHandlers(service *login.Service) *AuthHandlers {
	return &AuthHandlers{service: service}
}

// Mount registers the auth routes on the router.
func (h *AuthHandlers) Mount(r chi.Router) {
	r.Post("/api/v1/auth/login", h.Login)
}

// Login handles POST /api/v1/auth/login. On success the access token is
// returned in the Authorization header and the customer view in the body;
// every failure collapses into the same 401 response.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	token, view, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	writeJSON(w, http.StatusOK, view)
}
