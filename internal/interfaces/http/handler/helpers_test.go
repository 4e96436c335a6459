package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testOrderID    = "80ebe6dd-fc51-41d5-ad53-59386d3ee6aa"
	testProductID  = "70ebe6dd-fc51-41d5-ad53-59386d3ee6bb"
	testCustomerID = "60ebe6dd-fc51-41d5-ad53-59386d3ee6cc"
	testSellerID   = "50ebe6dd-fc51-41d5-ad53-59386d3ee6dd"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func newTestEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	return engine
}

func serve(engine *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(middleware.RequestIDHeader, "req-test")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func serveJSON(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	return serve(engine, method, path, strings.NewReader(body), "application/json")
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func requireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) dto.Response {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code)
	require.Equal(t, "req-test", resp.Error.RequestID)
	return resp
}


func serveWithHeader(engine *gin.Engine, path, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set(header, value)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}
