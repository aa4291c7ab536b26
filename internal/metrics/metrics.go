// Package metrics exports the service's Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biasbuster_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "biasbuster_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"method", "route"})

	Completions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biasbuster_completions_total",
		Help: "Completion service calls by provider, prompt kind and outcome",
	}, []string{"provider", "kind", "outcome"})

	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "biasbuster_completion_duration_seconds",
		Help:    "Completion service latency by prompt kind",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	}, []string{"kind"})

	Extractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biasbuster_extractions_total",
		Help: "Article extractions by the branch that produced the content",
	}, []string{"method"})

	Comparisons = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biasbuster_comparisons_total",
		Help: "Source comparisons by result kind (live, illustrative)",
	}, []string{"kind"})

	SearchHits = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "biasbuster_comparison_articles_found",
		Help:    "Articles found across all outlets for one comparison",
		Buckets: []float64{0, 1, 3, 5, 10, 20, 35},
	})
)

// RecordCompletion counts one completion call and its latency.
func RecordCompletion(provider, kind string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	Completions.WithLabelValues(provider, kind, outcome).Inc()
	CompletionDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// Middleware records request count and latency under the matched route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
