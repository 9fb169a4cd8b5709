package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// grokart metrics, registered with the default registry
var (
	// HTTP transport request counters
	RequestsTotal *prometheus.CounterVec

	// Tool call counters
	ToolCallsTotal *prometheus.CounterVec

	// Tool duration histogram
	ToolDuration *prometheus.HistogramVec

	// Upstream responses by HTTP status code ("0" for transport failures)
	UpstreamRequestsTotal *prometheus.CounterVec

	// Upstream round trip time
	UpstreamLatency *prometheus.HistogramVec

	// Images returned to callers
	ImagesGeneratedTotal *prometheus.CounterVec
)

func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grokart",
			Subsystem: "mcp",
			Name:      "requests_total",
			Help:      "Total number of MCP requests received over HTTP",
		},
		[]string{"method", "status"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grokart",
			Subsystem: "mcp",
			Name:      "tool_calls_total",
			Help:      "Total tool invocations",
		},
		[]string{"tool_name", "status"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "grokart",
			Subsystem: "mcp",
			Name:      "tool_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"tool_name"},
	)

	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grokart",
			Subsystem: "xai",
			Name:      "requests_total",
			Help:      "Total image generation requests sent to the xAI API by response status code",
		},
		[]string{"status_code"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "grokart",
			Subsystem: "xai",
			Name:      "request_duration_seconds",
			Help:      "xAI API response time in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	ImagesGeneratedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grokart",
			Subsystem: "xai",
			Name:      "images_generated_total",
			Help:      "Total images returned by the xAI API",
		},
		[]string{"format"},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ToolCallsTotal)
	prometheus.MustRegister(ToolDuration)
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamLatency)
	prometheus.MustRegister(ImagesGeneratedTotal)
}

// RecordRequest records an MCP request served over HTTP
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordToolCall records a tool invocation
func RecordToolCall(toolName, status string, durationSec float64) {
	if status == "" {
		status = "unknown"
	}
	ToolCallsTotal.WithLabelValues(toolName, status).Inc()
	ToolDuration.WithLabelValues(toolName).Observe(durationSec)
}

// RecordUpstreamRequest records one xAI round trip. statusCode 0 means no response.
func RecordUpstreamRequest(model string, statusCode int, durationSec float64) {
	UpstreamRequestsTotal.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	UpstreamLatency.WithLabelValues(model).Observe(durationSec)
}

// RecordImagesGenerated adds count images of the given format
func RecordImagesGenerated(format string, count int) {
	if count <= 0 {
		return
	}
	ImagesGeneratedTotal.WithLabelValues(format).Add(float64(count))
}
