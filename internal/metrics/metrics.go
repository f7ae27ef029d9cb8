package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AssetWritesTotal counts asset mutations by operation (create, update, delete).
	AssetWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_writes_total",
			Help: "Total number of asset create/update/delete operations",
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AssetWritesTotal)
}

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

// NormalizePath reduces label cardinality by replacing numeric path segments
// with {id}, e.g. /api/assets/123 -> /api/assets/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for one HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAssetWrites increments the asset write counter for the given operation.
func IncAssetWrites(operation string) {
	AssetWritesTotal.WithLabelValues(operation).Inc()
}
