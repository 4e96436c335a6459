package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecommerce/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func setupMetricsEngine(t *testing.T) (*gin.Engine, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })

	mw, err := HTTPMetrics(provider.Meter("test"))
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(mw)
	engine.GET("/orders/:id", func(c *gin.Context) { c.String(http.StatusOK, "order") })
	engine.POST("/orders", func(c *gin.Context) { c.Status(http.StatusCreated) })
	return engine, reader
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	require.FailNow(t, "metric not found", name)
	return metricdata.Metrics{}
}

func TestHTTPMetrics_CountsByRoutePattern(t *testing.T) {
	engine, reader := setupMetricsEngine(t)

	for _, path := range []string{"/orders/a", "/orders/b", "/missing"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	sum, ok := findMetric(t, reader, "http_server_request_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)

	byRoute := make(map[string]int64)
	for _, dp := range sum.DataPoints {
		route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute)
		status, _ := dp.Attributes.Value(telemetry.AttrHTTPStatusCode)
		byRoute[route.AsString()+" "+status.Emit()] += dp.Value
	}
	assert.Equal(t, map[string]int64{
		"/orders/:id 200": 2,
		"unknown 404":     1,
	}, byRoute)
}

func TestHTTPMetrics_RecordsDurationAndSizes(t *testing.T) {
	engine, reader := setupMetricsEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"quantity":1}`))
	engine.ServeHTTP(httptest.NewRecorder(), req)
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/a", nil))

	duration, ok := findMetric(t, reader, "http_server_request_duration_seconds").Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range duration.DataPoints {
		count += dp.Count
		_, hasStatus := dp.Attributes.Value(telemetry.AttrHTTPStatusCode)
		assert.False(t, hasStatus)
	}
	assert.Equal(t, uint64(2), count)

	reqSize, ok := findMetric(t, reader, "http_server_request_size_bytes").Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, reqSize.DataPoints, 1)
	assert.Equal(t, float64(len(`{"quantity":1}`)), reqSize.DataPoints[0].Sum)

	respSize, ok := findMetric(t, reader, "http_server_response_size_bytes").Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, respSize.DataPoints, 1)
	assert.Equal(t, float64(len("order")), respSize.DataPoints[0].Sum)

	active, ok := findMetric(t, reader, "http_server_active_requests").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	for _, dp := range active.DataPoints {
		assert.Zero(t, dp.Value)
	}
}
