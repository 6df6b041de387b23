package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/NikolaiKhriapov/full-stack-app/internal/services/customer"
)

// maxProfileImageBytes caps profile image uploads at 10 MiB.
const maxProfileImageBytes = 10 << 20

// CustomerHandlers wires the customer REST endpoints.
type CustomerHandlers struct {
	service *customer.Service
	codec   TokenIssuer
}

// NewCustomerHandlers creates the handler set for customer operations. The
// codec issues the access token returned on successful registration.
func NewCustomerHandlers(service *customer.Service, codec TokenIssuer) *CustomerHandlers {
	return &CustomerHandlers{service: service, codec: codec}
}

// Mount registers the customer routes on the router.
func (h *CustomerHandlers) Mount(r chi.Router) {
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Register)
		r.Route("/{customerId}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
			r.Post("/profile-image", h.UploadProfileImage)
			r.Get("/profile-image", h.GetProfileImage)
		})
	})
}

func customerID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
}

// List handles GET /api/v1/customers.
func (h *CustomerHandlers) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// Get handles GET /api/v1/customers/{customerId}.
func (h *CustomerHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid customer id")
		return
	}

	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Register handles POST /api/v1/customers. On success the new customer is
// logged in immediately: the response carries an access token in the
// Authorization header alongside the created record.
func (h *CustomerHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req customer.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := h.codec.IssueToken(view.Username, view.Roles)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	writeJSON(w, http.StatusOK, view)
}

// Update handles PUT /api/v1/customers/{customerId} with a partial update.
func (h *CustomerHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req customer.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Delete handles DELETE /api/v1/customers/{customerId}.
func (h *CustomerHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid customer id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UploadProfileImage handles POST /api/v1/customers/{customerId}/profile-image.
// The image comes in as a multipart form under the "file" field.
func (h *CustomerHandlers) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid customer id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProfileImageBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file upload")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("failed to close upload: %v", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read upload")
		return
	}

	if err := h.service.UpdateProfileImage(r.Context(), id, data, header.Filename); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GetProfileImage handles GET /api/v1/customers/{customerId}/profile-image,
// returning the raw image bytes.
func (h *CustomerHandlers) GetProfileImage(w http.ResponseWriter, r *http.Request) {
	id, err := customerID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid customer id")
		return
	}

	data, err := h.service.GetProfileImage(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("failed to write image response: %v", err)
	}
}
