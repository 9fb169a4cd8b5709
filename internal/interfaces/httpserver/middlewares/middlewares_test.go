package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/grokart/internal/infrastructure/metrics"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), RequestLogger(), CORS(), MetricsRecorder())
	router.POST("/v1/mcp", func(c *gin.Context) {
		c.String(http.StatusOK, requestIDFromContext(c))
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequestID_Generated(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/mcp", nil))

	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Body.String())
}

func TestRequestID_Preserved(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/mcp", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "req-123", rec.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/mcp", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, RequestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestMetricsRecorder_SkipsProbes(t *testing.T) {
	router := newRouter()
	posts := metrics.RequestsTotal.WithLabelValues(http.MethodPost, "200")
	probes := metrics.RequestsTotal.WithLabelValues(http.MethodGet, "200")
	postsBefore := testutil.ToFloat64(posts)
	probesBefore := testutil.ToFloat64(probes)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/mcp", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, postsBefore+1, testutil.ToFloat64(posts))
	assert.Equal(t, probesBefore, testutil.ToFloat64(probes))
}
