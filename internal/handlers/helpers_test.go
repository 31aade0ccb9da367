package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/01moynul/travelsite/internal/auth"
	"github.com/01moynul/travelsite/internal/cache"
	"github.com/01moynul/travelsite/internal/database/dbtest"
	"github.com/01moynul/travelsite/internal/handlers"
	"github.com/01moynul/travelsite/internal/live"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/01moynul/travelsite/internal/routes"
	"github.com/01moynul/travelsite/internal/upload"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "labbaik-2025"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x42}, 120)...)
	mp4Bytes = append([]byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isommp42"), make([]byte, 64)...)
)

type env struct {
	t      *testing.T
	h      *handlers.Handlers
	router *gin.Engine
	token  string
	admin  models.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.New(t)
	log := zap.NewNop()
	h := &handlers.Handlers{
		DB:       db,
		Log:      log,
		Sessions: auth.NewManager("test-secret", time.Hour),
		Cache:    cache.NewJSON(cache.NewMemoryKV(), time.Minute, log),
		Uploads:  upload.NewStore(t.TempDir(), "http://api.test", 1024, 4096),
		Hub:      live.NewHub("", log),
	}

	created, err := handlers.SeedAdmin(context.Background(), db, "Admin", adminEmail, adminPassword)
	require.NoError(t, err)
	require.True(t, created)

	var admin models.User
	require.NoError(t, db.Where("email = ?", adminEmail).First(&admin).Error)
	token, err := h.Sessions.GenerateToken(admin.ID)
	require.NoError(t, err)

	return &env{t: t, h: h, router: routes.SetupRouter(h, "http://localhost:3000"), token: token, admin: admin}
}

func (e *env) request(method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	e.t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	return e.serve(req)
}

// get/post/put/del send authenticated requests; anon sends without a session.
func (e *env) get(path string) *httptest.ResponseRecorder { return e.request(http.MethodGet, path, nil, true) }
func (e *env) post(path string, body interface{}) *httptest.ResponseRecorder {
	return e.request(http.MethodPost, path, body, true)
}
func (e *env) put(path string, body interface{}) *httptest.ResponseRecorder {
	return e.request(http.MethodPut, path, body, true)
}
func (e *env) del(path string) *httptest.ResponseRecorder {
	return e.request(http.MethodDelete, path, nil, true)
}
func (e *env) anon(method, path string, body interface{}) *httptest.ResponseRecorder {
	return e.request(method, path, body, false)
}

func (e *env) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// upload posts a multipart form with one file field.
func (e *env) upload(path, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(e.t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(e.t, err)
		_, err = part.Write(content)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+e.token)
	return e.serve(req)
}

// seedType creates an active product type.
func (e *env) seedType(name, slug string) models.ProductType {
	e.t.Helper()
	pt := models.ProductType{Name: name, Slug: slug, IsActive: true}
	require.NoError(e.t, e.h.DB.Create(&pt).Error)
	return pt
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	return body.Error
}
