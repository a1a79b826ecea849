package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	FeedbackSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submitted_total",
			Help: "Feedback records created, by priority",
		},
		[]string{"priority"},
	)

	FeedbackTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_transitions_total",
			Help: "Feedback status transitions, by target status",
		},
		[]string{"status"},
	)

	NotificationMailFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_mail_failures_total",
			Help: "Status e-mails that could not be delivered",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			FeedbackSubmitted,
			FeedbackTransitions,
			NotificationMailFailures,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
