// Package prometheus instruments citycopy services with Prometheus metrics.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/citycopy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// MetricsNamespace is the namespace for all citycopy metrics.
	MetricsNamespace = "citycopy"

	// MetricsSubsystem is the subsystem for content metrics.
	MetricsSubsystem = "content"
)

// Result label values.
const (
	ResultCached    = "cached"
	ResultGenerated = "generated"
	ResultFailed    = "failed"
)

// Metrics holds the content service metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestSeconds  *prometheus.HistogramVec
	PersistFailures prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers content metrics with reg. A nil reg
// uses a fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "requests_total",
				Help:      "Total number of get-or-generate requests",
			},
			[]string{"result", "code"},
		),
		RequestSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "request_duration_seconds",
				Help:      "Duration of get-or-generate requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
			},
			[]string{"result"},
		),
		PersistFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Subsystem: MetricsSubsystem,
				Name:      "persist_failures_total",
				Help:      "Generated bundles that could not be written to the store",
			},
		),
		gatherer: reg,
	}
}

// Handler returns the HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

var _ citycopy.ContentService = (*ContentService)(nil)

// ContentService records metrics for a citycopy.ContentService.
type ContentService struct {
	next    citycopy.ContentService
	metrics *Metrics
}

// NewContentService wraps next with metrics.
func NewContentService(next citycopy.ContentService, metrics *Metrics) *ContentService {
	return &ContentService{next: next, metrics: metrics}
}

func (s *ContentService) GetOrGenerate(ctx context.Context, req *citycopy.GenerateRequest) (*citycopy.ContentResult, error) {
	begin := time.Now()
	result, err := s.next.GetOrGenerate(ctx, req)

	label, code := ResultFailed, ""
	switch {
	case err != nil:
		code = citycopy.ErrorCode(err)
	case result.Cached:
		label = ResultCached
	default:
		label = ResultGenerated
		if result.Persist == citycopy.PersistFailed {
			s.metrics.PersistFailures.Inc()
		}
	}

	s.metrics.RequestsTotal.WithLabelValues(label, code).Inc()
	s.metrics.RequestSeconds.WithLabelValues(label).Observe(time.Since(begin).Seconds())
	return result, err
}
