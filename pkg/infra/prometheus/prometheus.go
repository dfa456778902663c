package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		1, 5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustmask_requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"route", "method", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustmask_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)

	AnalysisLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustmask_analysis_latency_ms",
			Help:    "Detection and masking latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"operation"},
	)

	DetectionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustmask_detections_total",
			Help: "Spans reported by each detector, before reconciliation",
		},
		[]string{"source", "entity_type"},
	)

	DetectorErrors = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustmask_detector_errors_total",
			Help: "Detector failures by source",
		},
		[]string{"source"},
	)

	RateLimited = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "trustmask_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

type MetricsConfig struct {
	EnableLatency    bool // Request and analysis latency histograms
	EnableDetections bool // Per entity type detection counters
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:    true,
		EnableDetections: true,
	}
}

var Config = DefaultMetricsConfig()

var registerOnce sync.Once

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registerOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

// Gatherer exposes the registry to the metrics endpoint.
func Gatherer() prometheus.Gatherer {
	return registry
}
