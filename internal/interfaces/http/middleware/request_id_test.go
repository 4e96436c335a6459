package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/orders", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates uuid when absent", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/orders", "")

		id := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("reuses incoming header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(RequestIDHeader, "caller-supplied")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "caller-supplied", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "caller-supplied", w.Body.String())
	})

	t.Run("ids differ between requests", func(t *testing.T) {
		first := doRequest(router, http.MethodGet, "/orders", "").Header().Get(RequestIDHeader)
		second := doRequest(router, http.MethodGet, "/orders", "").Header().Get(RequestIDHeader)
		assert.NotEqual(t, first, second)
	})
}
