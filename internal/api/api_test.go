package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pixelperfect/internal/api/middleware"
	"pixelperfect/internal/auth"
	"pixelperfect/internal/config"
	"pixelperfect/internal/database"
	"pixelperfect/internal/session"
	"pixelperfect/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	store    *store.Store
	sessions session.Store
}

// newTestEnv builds the full route surface over an in-memory database, an
// in-memory session store, and no redis (rate limiting off).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	st := store.New(db)
	sessions := session.NewMemoryStore(time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Session: config.SessionConfig{TTLMinutes: 60},
		Login:   config.LoginConfig{RateLimitPerHour: 10, LockThreshold: 5, LockTTLMinutes: 15},
		Upload:  config.UploadConfig{MaxResumeBytes: 5 * 1024 * 1024},
	}

	router := NewRouter(logger)
	RegisterRoutes(router, st, sessions, nil, logger, cfg)

	return &testEnv{router: router, db: db, store: st, sessions: sessions}
}

func (e *testEnv) createUser(t *testing.T, username, password string, admin bool) database.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := database.User{Username: username, PasswordHash: hashed, IsAdmin: admin}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

// login authenticates through the endpoint and returns the session cookie.
func (e *testEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := e.doJSON(t, http.MethodPost, "/api/login", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	return e.do(t, method, path, reader, "application/json", cookie)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

// newApplicationForm builds a multipart body; a non-empty filename attaches
// a resume part with the given declared content type.
func newApplicationForm(t *testing.T, fields map[string]string, filename, fileType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, filename))
		header.Set("Content-Type", fileType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}
