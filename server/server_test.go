package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"prodea/config"
	"prodea/database"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a server backed by an in-memory SQLite database and a
// fiber app with all routes registered. Redis stays nil; the rate limiter
// fails open.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{SecretKey: "test-secret-key"}
	s := New(cfg, db, nil)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// doJSON performs a JSON request against the app and decodes the response body.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// doJSONList is doJSON for endpoints that respond with a JSON array.
func doJSONList(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, []map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded []map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// doForm posts form-encoded fields, as the login endpoint expects.
func doForm(t *testing.T, app *fiber.App, path string, fields map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}

	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

// authToken issues a valid token directly, for exercising guarded routes.
func authToken(t *testing.T, s *Server) string {
	t.Helper()
	token, err := s.generateToken(1)
	require.NoError(t, err)
	return token
}

func TestWelcome(t *testing.T) {
	_, app := newTestServer(t)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/users/", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello Welcome to the PRODEA Project!", body["message"])
}

func TestAuthRequired_RejectsMissingToken(t *testing.T) {
	_, app := newTestServer(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/posts/create_multiple_posts",
		[]map[string]any{}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authorization required", body["error"])
}

func TestAuthRequired_RejectsMalformedToken(t *testing.T) {
	_, app := newTestServer(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/posts/create_multiple_posts",
		[]map[string]any{}, "not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["error"])
}

func TestAuthRequired_RejectsExpiredToken(t *testing.T) {
	s, app := newTestServer(t)

	claims := jwt.MapClaims{
		"user_id": uint(1),
		"exp":     time.Now().Add(-time.Minute).Unix(),
		"iat":     time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.SecretKey))
	require.NoError(t, err)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/posts/create_multiple_posts",
		[]map[string]any{}, expired)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired token", body["error"])
}

func TestAuthRequired_RejectsWrongSecret(t *testing.T) {
	_, app := newTestServer(t)

	claims := jwt.MapClaims{
		"user_id": uint(1),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/posts/create_multiple_posts",
		[]map[string]any{}, forged)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_AdmitsFreshToken(t *testing.T) {
	s, app := newTestServer(t)

	resp, _ := doJSONList(t, app, fiber.MethodPost, "/api/posts/create_multiple_posts",
		[]map[string]any{}, authToken(t, s))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestGenerateToken_ThirtyMinuteExpiry(t *testing.T) {
	s, _ := newTestServer(t)

	signed, err := s.generateToken(42)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte(s.config.SecretKey), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["user_id"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.Equal(t, accessTokenTTL, exp.Sub(iat.Time))
}
