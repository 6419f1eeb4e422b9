package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/auth"
	"bookshelf/internal/config"
	"bookshelf/internal/database"
)

// setupFullRouter wires the complete application router against a fresh
// in-memory database, the same way entrypoint.Run does.
func setupFullRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authCfg := config.Auth{
		JWTSecret:        "integration-test-secret-32-bytes",
		TokenExpiry:      30 * time.Minute,
		BcryptCost:       10,
		MaxLoginAttempts: 5,
		LockoutDuration:  30 * time.Minute,
	}

	issuer, err := auth.NewTokenIssuer(authCfg)
	require.NoError(t, err)

	service := auth.NewService(db, authCfg)

	return NewRouter(RouterConfig{
		Database:       db,
		AuthController: auth.NewAuthController(service, issuer),
		AuthMiddleware: auth.NewMiddleware(service, issuer),
		Version:        "test",
	})
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, username, email, password string) string {
	t.Helper()

	w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, "POST", "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp auth.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken
}

func TestRegistration(t *testing.T) {
	router := setupFullRouter(t)

	t.Run("register succeeds", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "alicespassword",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "alicespassword")
		assert.NotContains(t, w.Body.String(), "password_hash")
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
			"username": "alice",
			"email":    "second@example.com",
			"password": "otherpassword1",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid body rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
			"username": "bob",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("whitespace-padded password rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
			"username": "frank",
			"email":    "frank@example.com",
			"password": "frankspassword ",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "whitespace")
	})

	t.Run("password with interior space registers and logs in", func(t *testing.T) {
		token := registerAndLogin(t, router, "grace", "grace@example.com", "graces pass phrase")
		assert.NotEmpty(t, token)
	})
}

func TestLogin(t *testing.T) {
	router := setupFullRouter(t)

	w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "bobspassword1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("wrong password rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/login", "", gin.H{
			"username": "bob",
			"password": "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user rejected with same error", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/login", "", gin.H{
			"username": "nobody",
			"password": "bobspassword1",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid username or password")
	})

	t.Run("correct credentials return a token", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/auth/login", "", gin.H{
			"username": "bob",
			"password": "bobspassword1",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp auth.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, int64(1800), resp.ExpiresIn)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupFullRouter(t)

	// A perfectly valid payload is still rejected without a token
	paths := []struct {
		method string
		path   string
		body   any
	}{
		{"GET", "/api/auth/me", nil},
		{"POST", "/api/books", gin.H{"title": "T", "author": "A"}},
		{"GET", "/api/books", nil},
		{"GET", "/api/books/1", nil},
		{"PUT", "/api/books/1", gin.H{"title": "T", "author": "A"}},
		{"DELETE", "/api/books/1", nil},
		{"GET", "/api/books/stats", nil},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := doJSON(router, p.method, p.path, "", p.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestBookLifecycle(t *testing.T) {
	router := setupFullRouter(t)
	token := registerAndLogin(t, router, "carol", "carol@example.com", "carolspassword")

	// Create
	w := doJSON(router, "POST", "/api/books", token, gin.H{
		"title":       "Learn FastAPI",
		"description": "A complete guide to FastAPI",
		"pages":       300,
		"author":      "admin",
		"publisher":   "Omega Press",
		"year":        2025,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, float64(1), created["id"])
	assert.NotZero(t, created["user_id"], "owner should be the authenticated user")

	// Retrievable by ID
	w = doJSON(router, "GET", "/api/books/1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Present in unfiltered list
	w = doJSON(router, "GET", "/api/books", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, float64(1), listing["count"])

	// Filter matches
	w = doJSON(router, "GET", "/api/books?author=admin&year=2025", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, float64(1), listing["count"])

	// Filter excludes
	w = doJSON(router, "GET", "/api/books?author=nobody", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, float64(0), listing["count"])

	// Delete, then gone from get and list
	w = doJSON(router, "DELETE", "/api/books/1", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, "GET", "/api/books/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "GET", "/api/books", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, float64(0), listing["count"])
}

func TestMeEndpoint(t *testing.T) {
	router := setupFullRouter(t)
	token := registerAndLogin(t, router, "dave", "dave@example.com", "davespassword")

	w := doJSON(router, "GET", "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var user map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "dave", user["username"])
	assert.NotContains(t, user, "password_hash")
}

func TestPublicRoutes(t *testing.T) {
	router := setupFullRouter(t)

	for _, path := range []string{"/", "/health", "/ping"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", path, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}
