package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return router
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("generates an id when none supplied", func(t *testing.T) {
		router := setupRequestIDRouter()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		router.ServeHTTP(w, req)

		rid := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, rid)
		_, err := uuid.Parse(rid)
		assert.NoError(t, err)
		assert.Equal(t, rid, w.Body.String())
	})

	t.Run("propagates a valid client id", func(t *testing.T) {
		router := setupRequestIDRouter()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "client-supplied-id-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, "client-supplied-id-1", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "client-supplied-id-1", w.Body.String())
	})

	t.Run("replaces a malformed client id", func(t *testing.T) {
		router := setupRequestIDRouter()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "bad id with spaces!")
		router.ServeHTTP(w, req)

		rid := w.Header().Get(RequestIDHeader)
		assert.NotEqual(t, "bad id with spaces!", rid)
		assert.NotEmpty(t, rid)
	})
}
