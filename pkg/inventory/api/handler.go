// Package api exposes the inventory service over HTTP: the JSON/form
// endpoints, the HTML pages and the interactive API documentation.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ostapk/simple-inventory/pkg/inventory"
)

// maxUploadBytes caps the in-memory portion of a multipart upload.
const maxUploadBytes = 32 << 20

// Handler serves the inventory HTTP surface.
type Handler struct {
	service inventory.Service
	logger  *slog.Logger
}

// NewHandler creates a handler over the given service.
func NewHandler(service inventory.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Routes returns the router for the inventory endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(h.fallback)
	r.MethodNotAllowed(h.fallback)

	r.Get("/", h.Menu)
	r.Get("/RegisterForm.html", h.RegisterForm)
	r.Get("/SearchForm.html", h.SearchForm)

	r.Post("/register", h.Register)
	r.Get("/inventory", h.List)
	r.Get("/inventory/{id}", h.GetByID)
	r.Put("/inventory/{id}", h.Update)
	r.Delete("/inventory/{id}", h.Delete)
	r.Get("/inventory/{id}/photo", h.GetPhoto)
	r.Put("/inventory/{id}/photo", h.ReplacePhoto)
	r.Post("/search", h.Search)

	h.mountDocs(r)

	return r
}

// fallback reproduces the wire contract for unmatched requests: a wrong
// method on the inventory or register paths is 405, everything else 404.
func (h *Handler) fallback(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.URL.Path, "/inventory") || strings.Contains(r.URL.Path, "/register") {
		writeText(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	writeText(w, http.StatusNotFound, "Page Not Found")
}

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.logger.Error("failed to parse register form", "error", err)
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	name := r.FormValue("inventory_name")
	if name == "" {
		writeText(w, http.StatusBadRequest, "Bad Request: inventory_name is required")
		return
	}

	upload, file := uploadFromRequest(r, "photo")
	if file != nil {
		defer file.Close()
	}

	item, err := h.service.Register(r.Context(), inventory.RegisterItemRequest{
		Name:        name,
		Description: r.FormValue("description"),
		Upload:      upload,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeText(w, http.StatusCreated, "Item created with ID: "+item.ID)
}

// List handles GET /inventory.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

// GetByID handles GET /inventory/{id}.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

// Update handles PUT /inventory/{id}. Empty or absent fields leave the
// stored values untouched.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.logger.Error("failed to parse update form", "error", err)
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	item, err := h.service.UpdateMetadata(r.Context(), inventory.UpdateItemRequest{
		ID:          chi.URLParam(r, "id"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

// Delete handles DELETE /inventory/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, "Deleted")
}

// GetPhoto handles GET /inventory/{id}/photo. The response is declared
// image/jpeg regardless of what was uploaded; that is the wire contract.
func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	rc, err := h.service.GetPhoto(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("failed to stream photo", "error", err)
	}
}

// ReplacePhoto handles PUT /inventory/{id}/photo.
func (h *Handler) ReplacePhoto(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.logger.Error("failed to parse photo form", "error", err)
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	upload, file := uploadFromRequest(r, "photo")
	if file != nil {
		defer file.Close()
	}

	if err := h.service.ReplacePhoto(r.Context(), chi.URLParam(r, "id"), upload); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, "Photo updated")
}

// Search handles POST /search. The body may be a JSON object or a form;
// the include-photo flag accepts the checkbox literal "on", the boolean
// true and the string "true".
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	id, includePhoto, err := parseSearchRequest(r)
	if err != nil {
		h.logger.Error("failed to parse search request", "error", err)
		writeText(w, http.StatusBadRequest, "Bad Request")
		return
	}

	item, err := h.service.Search(r.Context(), inventory.SearchRequest{
		ID:           id,
		IncludePhoto: includePhoto,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

func parseSearchRequest(r *http.Request) (id string, includePhoto bool, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			ID           string          `json:"id"`
			IncludePhoto json.RawMessage `json:"includePhoto"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", false, err
		}
		return body.ID, truthyJSON(body.IncludePhoto), nil
	}

	if err := parseForm(r); err != nil {
		return "", false, err
	}
	return r.FormValue("id"), truthy(r.FormValue("includePhoto")), nil
}

// truthy reports whether a form flag value means "checked".
func truthy(v string) bool {
	return v == "on" || v == "true"
}

// truthyJSON accepts the boolean true and the strings "on" and "true".
func truthyJSON(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return truthy(s)
	}
	return false
}

// parseForm handles both multipart and urlencoded bodies.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadBytes)
	}
	return r.ParseForm()
}

// uploadFromRequest extracts the file part under field, if one was sent.
// The returned file must be closed by the caller once the upload has
// been consumed.
func uploadFromRequest(r *http.Request, field string) (*inventory.Upload, multipart.File) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return &inventory.Upload{
		FieldTag: field,
		Ext:      filepath.Ext(header.Filename),
		Reader:   file,
	}, file
}

// writeError maps the service error taxonomy onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, inventory.ErrItemNotFound), errors.Is(err, inventory.ErrNoPhoto):
		writeText(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, inventory.ErrPhotoMissing):
		writeText(w, http.StatusNotFound, "Photo file missing")
	case errors.Is(err, inventory.ErrNameRequired):
		writeText(w, http.StatusBadRequest, "Bad Request: inventory_name is required")
	case errors.Is(err, inventory.ErrNoFile):
		writeText(w, http.StatusBadRequest, "No file uploaded")
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
