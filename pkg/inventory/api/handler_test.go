package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostapk/simple-inventory/pkg/inventory"
	"github.com/ostapk/simple-inventory/pkg/inventory/api"
	"github.com/ostapk/simple-inventory/pkg/inventory/repo/memory"
	memorystorage "github.com/ostapk/simple-inventory/pkg/inventory/storage/memory"
)

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()

	svc, err := inventory.New(
		inventory.WithRepository(memory.New()),
		inventory.WithBlobStore(memorystorage.New()),
	)
	require.NoError(t, err)

	return api.NewHandler(svc, nil).Routes()
}

func doRequest(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// registerForm posts an urlencoded register request and returns the
// response.
func registerForm(t *testing.T, router http.Handler, fields url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(t, router, req)
}

// multipartBody builds a multipart form with the given fields and an
// optional photo file part.
func multipartBody(t *testing.T, fields map[string]string, filename string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if photo != nil {
		part, err := w.CreateFormFile("photo", filename)
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

// registerItem registers an item (optionally with a photo) and returns
// its ID.
func registerItem(t *testing.T, router http.Handler, name string, photo []byte) string {
	t.Helper()

	body, contentType := multipartBody(t, map[string]string{"inventory_name": name}, "photo.jpg", photo)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, router, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	id := strings.TrimPrefix(rec.Body.String(), "Item created with ID: ")
	require.NotEmpty(t, id)
	return id
}

func TestRegister(t *testing.T) {
	router := setupTestRouter(t)

	rec := registerForm(t, router, url.Values{
		"inventory_name": {"Drill"},
		"description":    {"cordless"},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Item created with ID: "), "body %q", rec.Body.String())
}

func TestRegisterMissingName(t *testing.T) {
	router := setupTestRouter(t)

	rec := registerForm(t, router, url.Values{"description": {"no name"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad Request: inventory_name is required", rec.Body.String())
}

func TestListAndGet(t *testing.T) {
	router := setupTestRouter(t)
	id := registerItem(t, router, "Drill", nil)

	rec := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var items []inventory.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, "Drill", items[0].Name)
	assert.Nil(t, items[0].Photo)

	rec = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/inventory/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var item inventory.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "Drill", item.Name)
}

func TestGetNotFound(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/inventory/absent", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", rec.Body.String())
}

func TestUpdatePartialPatch(t *testing.T) {
	router := setupTestRouter(t)
	id := registerItem(t, router, "Drill", nil)

	form := url.Values{"description": {"18V"}}
	req := httptest.NewRequest(http.MethodPut, "/inventory/"+id, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var item inventory.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "Drill", item.Name)
	assert.Equal(t, "18V", item.Description)

	// An empty description field leaves the stored value in place.
	form = url.Values{"name": {"Impact Drill"}, "description": {""}}
	req = httptest.NewRequest(http.MethodPut, "/inventory/"+id, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "Impact Drill", item.Name)
	assert.Equal(t, "18V", item.Description)
}

func TestUpdateNotFound(t *testing.T) {
	router := setupTestRouter(t)

	form := url.Values{"name": {"x"}}
	req := httptest.NewRequest(http.MethodPut, "/inventory/absent-id", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := doRequest(t, router, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPhotoLifecycle(t *testing.T) {
	router := setupTestRouter(t)
	original := []byte("original jpeg bytes")
	id := registerItem(t, router, "Drill", original)

	rec := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/inventory/"+id+"/photo", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, original, rec.Body.Bytes())

	// Replace and confirm the new bytes are served.
	replacement := []byte("replacement bytes")
	body, contentType := multipartBody(t, nil, "new.png", replacement)
	req := httptest.NewRequest(http.MethodPut, "/inventory/"+id+"/photo", body)
	req.Header.Set("Content-Type", contentType)
	rec = doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Photo updated", rec.Body.String())

	rec = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/inventory/"+id+"/photo", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	// Still declared image/jpeg, whatever was uploaded.
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, replacement, rec.Body.Bytes())
}

func TestGetPhotoWithoutPhoto(t *testing.T) {
	router := setupTestRouter(t)
	id := registerItem(t, router, "Drill", nil)

	rec := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/inventory/"+id+"/photo", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", rec.Body.String())
}

func TestReplacePhotoWithoutFile(t *testing.T) {
	router := setupTestRouter(t)
	id := registerItem(t, router, "Drill", nil)

	body, contentType := multipartBody(t, map[string]string{"unused": "field"}, "", nil)
	req := httptest.NewRequest(http.MethodPut, "/inventory/"+id+"/photo", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", rec.Body.String())
}

func TestReplacePhotoUnknownItem(t *testing.T) {
	router := setupTestRouter(t)

	body, contentType := multipartBody(t, nil, "photo.jpg", []byte("bytes"))
	req := httptest.NewRequest(http.MethodPut, "/inventory/absent/photo", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, router, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", rec.Body.String())
}

func TestDelete(t *testing.T) {
	router := setupTestRouter(t)
	id := registerItem(t, router, "Drill", []byte("bytes"))

	rec := doRequest(t, router, httptest.NewRequest(http.MethodDelete, "/inventory/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Deleted", rec.Body.String())

	rec = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/inventory/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/inventory/"+id+"/photo", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(t, router, httptest.NewRequest(http.MethodDelete, "/inventory/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchJSON(t *testing.T) {
	router := setupTestRouter(t)
	id := registerItem(t, router, "Drill", []byte("bytes"))

	payload := `{"id":"` + id + `","includePhoto":true}`
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(t, router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var item inventory.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "Drill", item.Name)
	assert.Contains(t, item.Description, "/inventory/"+id+"/photo")
}

func TestSearchFormCheckbox(t *testing.T) {
	router := setupTestRouter(t)
	id := registerItem(t, router, "Drill", []byte("bytes"))

	tests := []struct {
		name         string
		flag         string
		wantAnnotate bool
	}{
		{"checkbox on", "on", true},
		{"string true", "true", true},
		{"unchecked", "", false},
		{"other value", "off", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"id": {id}}
			if tt.flag != "" {
				form.Set("includePhoto", tt.flag)
			}
			req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := doRequest(t, router, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var item inventory.Item
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
			if tt.wantAnnotate {
				assert.Contains(t, item.Description, "/photo")
			} else {
				assert.NotContains(t, item.Description, "/photo")
			}
		})
	}
}

func TestSearchNotFound(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"id":"absent"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(t, router, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", rec.Body.String())
}

func TestMethodNotAllowedAndNotFound(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{http.MethodDelete, "/register", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodPost, "/inventory", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodPatch, "/inventory/123", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodPost, "/inventory/123/photo", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodGet, "/nothing-here", http.StatusNotFound, "Page Not Found"},
		{http.MethodGet, "/search", http.StatusNotFound, "Page Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doRequest(t, router, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHTMLPages(t *testing.T) {
	router := setupTestRouter(t)

	for _, path := range []string{"/", "/RegisterForm.html", "/SearchForm.html"} {
		rec := doRequest(t, router, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html", "path %s", path)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	router := setupTestRouter(t)

	rec := doRequest(t, router, httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.0", doc.OpenAPI)
	for _, path := range []string{"/register", "/inventory", "/inventory/{id}", "/inventory/{id}/photo", "/search"} {
		assert.Contains(t, doc.Paths, path)
	}

	rec = doRequest(t, router, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	var captured string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = api.GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := api.RequestID(inner)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, captured)
	assert.Equal(t, captured, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "client-id", captured)
}
