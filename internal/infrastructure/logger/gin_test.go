package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core), "/health"))
	router.GET("/orders/:id", func(c *gin.Context) {
		FromContext(c.Request.Context()).Info("inside handler")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("logs request with request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/1?x=1", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		handlerLogs := recorded.FilterMessage("inside handler").All()
		require.Len(t, handlerLogs, 1)
		assert.Equal(t, "test-req-123", handlerLogs[0].ContextMap()["request_id"])

		httpLogs := recorded.FilterMessage("HTTP Request").All()
		require.Len(t, httpLogs, 1)
		fields := httpLogs[0].ContextMap()
		assert.Equal(t, zapcore.InfoLevel, httpLogs[0].Level)
		assert.Equal(t, "/orders/:id", fields["route"])
		assert.Equal(t, "x=1", fields["query"])
	})

	t.Run("client errors logged at warn", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		entries := recorded.FilterMessage("HTTP Request").FilterField(zap.Int("status", http.StatusNotFound)).All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})

	t.Run("skipped paths are not logged", func(t *testing.T) {
		before := recorded.FilterMessage("HTTP Request").Len()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, before, recorded.FilterMessage("HTTP Request").Len())
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))

	log := zap.NewExample()
	c.Set("logger", log)
	assert.Same(t, log, GetGinLogger(c))
}
