// Package metrics exposes screening counters on a dedicated Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis modes.
const (
	ModeAlgorithmic = "algorithmic"
	ModeAugmented   = "augmented"
	ModeCached      = "cached"
	ModeSkipped     = "skipped"
)

// Augmenter failure reasons.
const (
	ReasonTimeout   = "timeout"
	ReasonTransport = "transport"
	ReasonParse     = "parse"
	ReasonEmpty     = "empty"
)

// Recorder owns the collectors. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	resumesAnalyzed   *prometheus.CounterVec
	augmenterFailures *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
	analysisDuration  prometheus.Histogram
	batchSize         prometheus.Histogram
	httpRequests      *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		resumesAnalyzed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intellihire_resumes_analyzed_total",
				Help: "Total number of resumes analyzed",
			},
			[]string{"mode"},
		),
		augmenterFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intellihire_augmenter_failures_total",
				Help: "Augmenter calls that fell back to algorithmic scoring",
			},
			[]string{"reason"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intellihire_cache_lookups_total",
				Help: "Analysis cache lookups",
			},
			[]string{"result"},
		),
		analysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intellihire_analysis_duration_seconds",
				Help:    "Duration of a single resume analysis in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
		batchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intellihire_batch_size",
				Help:    "Number of resumes per batch",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
			},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intellihire_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Recorder) ResumeAnalyzed(mode string, d time.Duration) {
	if r == nil {
		return
	}
	r.resumesAnalyzed.WithLabelValues(mode).Inc()
	if mode != ModeSkipped {
		r.analysisDuration.Observe(d.Seconds())
	}
}

func (r *Recorder) AugmenterFailed(reason string) {
	if r == nil {
		return
	}
	r.augmenterFailures.WithLabelValues(reason).Inc()
}

func (r *Recorder) CacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

func (r *Recorder) BatchSubmitted(n int) {
	if r == nil {
		return
	}
	r.batchSize.Observe(float64(n))
}

func (r *Recorder) HTTPRequest(route string, code int) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
