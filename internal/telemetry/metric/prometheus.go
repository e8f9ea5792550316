package metric

import (
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yndnr/promwalk/internal/core/model"
	"github.com/yndnr/promwalk/internal/core/protoformat"
	"github.com/yndnr/promwalk/internal/core/walk"
)

const namespace = "promwalk"

// Registry holds the tool's own metrics.
type Registry struct {
	reg *prometheus.Registry

	walksTotal    *prometheus.CounterVec
	abortsTotal   *prometheus.CounterVec
	familiesTotal *prometheus.CounterVec
	metricsTotal  *prometheus.CounterVec
	walkDuration  *prometheus.HistogramVec
	lastWalk      prometheus.Gauge
}

// Option configures a Registry.
type Option func(*Registry)

// WithRuntimeMetrics adds the Go runtime and process collectors.
func WithRuntimeMetrics() Option {
	return func(r *Registry) {
		r.reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// NewRegistry creates a registry with the walk metrics registered.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}

	r.walksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "walks_total",
		Help:      "Walks finished, by input format and outcome.",
	}, []string{"format", "outcome"})

	r.abortsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "walk_aborts_total",
		Help:      "Walks ended early, by input format and error code.",
	}, []string{"format", "code"})

	r.familiesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "families_total",
		Help:      "Metric families walked, by input format.",
	}, []string{"format"})

	r.metricsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metrics_total",
		Help:      "Metrics walked, by input format and metric type.",
	}, []string{"format", "type"})

	r.walkDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "walk_duration_seconds",
		Help:      "Time from the start to the end of a walk.",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	}, []string{"format"})

	r.lastWalk = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_walk_timestamp_seconds",
		Help:      "Unix time of the last finished walk.",
	})

	r.reg.MustRegister(
		r.walksTotal,
		r.abortsTotal,
		r.familiesTotal,
		r.metricsTotal,
		r.walkDuration,
		r.lastWalk,
	)

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Gather snapshots the registry as a walk source.
func (r *Registry) Gather() walk.Source {
	mfs, err := r.reg.Gather()
	if err != nil {
		return walk.SourceFunc(func() (*model.Family, error) {
			return nil, err
		})
	}

	i := 0
	return walk.SourceFunc(func() (*model.Family, error) {
		if i >= len(mfs) {
			return nil, io.EOF
		}
		mf := mfs[i]
		i++
		return protoformat.Convert(mf)
	})
}

// Handler returns an HTTP handler exposing the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
