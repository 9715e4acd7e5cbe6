package gateway

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "julge_gateway_requests_total",
			Help: "Total number of backend requests by outcome",
		},
		[]string{"method", "route", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "julge_gateway_request_duration_seconds",
			Help:    "Duration of backend requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

var collections = map[string]bool{
	"users":        true,
	"shops":        true,
	"notices":      true,
	"applications": true,
	"alerts":       true,
}

// routeOf 는 경로의 id 자리를 {id} 로 바꿔 라벨 수가 늘어나지 않게 한다.
func routeOf(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		if collections[segments[i-1]] && segments[i] != "" {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}
