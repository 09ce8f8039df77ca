package telemetry

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/soulnest/client-go/internal/api"
)

// Metrics records request pipeline metrics.
type Metrics struct {
	attempts  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	envelopes *prometheus.CounterVec
}

// NewMetrics registers the client metrics with reg. A nil reg means the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "soulnest_client_attempts_total",
			Help: "Total number of HTTP attempts by method and status",
		}, []string{"method", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "soulnest_client_attempt_duration_seconds",
			Help:    "HTTP attempt duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 15},
		}, []string{"method"}),

		envelopes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "soulnest_client_responses_total",
			Help: "Total number of processed responses by envelope kind",
		}, []string{"method", "kind"}),
	}
}

// ObserveAttempt records one HTTP attempt. A zero status means the
// transport failed.
func (m *Metrics) ObserveAttempt(method string, status int, d time.Duration) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}
	m.attempts.WithLabelValues(method, label).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

// ResponseInterceptor counts successfully processed responses by envelope kind.
func (m *Metrics) ResponseInterceptor() api.ResponseInterceptor {
	return func(_ context.Context, rc *api.ResponseContext) (*api.ResponseContext, error) {
		kind := api.RawPassthrough.String()
		if rc.Envelope != nil {
			kind = rc.Envelope.Kind.String()
		}
		m.envelopes.WithLabelValues(rc.Method, kind).Inc()
		return rc, nil
	}
}
