package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the service metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	fetchTotal      *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	cacheTotal      *prometheus.CounterVec
	computeDuration prometheus.Histogram
	lastClose       *prometheus.GaugeVec
	httpRequests    *prometheus.CounterVec
}

// New registers the metrics on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pivotboard_fetch_total",
				Help: "Market data fetches by source and result",
			},
			[]string{"source", "result"},
		),
		fetchDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pivotboard_fetch_duration_seconds",
				Help:    "Duration of market data fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		cacheTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pivotboard_cache_total",
				Help: "Series cache lookups by result",
			},
			[]string{"result"},
		),
		computeDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pivotboard_compute_duration_seconds",
				Help:    "Duration of one indicator computation",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
		lastClose: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pivotboard_last_close",
				Help: "Latest close seen for a symbol",
			},
			[]string{"symbol"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pivotboard_http_requests_total",
				Help: "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
	}
}

// RecordFetch records one fetch attempt.
func (r *Recorder) RecordFetch(source string, ok bool, seconds float64) {
	if r == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	r.fetchTotal.WithLabelValues(source, result).Inc()
	r.fetchDuration.WithLabelValues(source).Observe(seconds)
}

// RecordCache records a cache hit or miss.
func (r *Recorder) RecordCache(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheTotal.WithLabelValues(result).Inc()
}

// RecordCompute records the duration of one indicator pass.
func (r *Recorder) RecordCompute(seconds float64) {
	if r == nil {
		return
	}
	r.computeDuration.Observe(seconds)
}

// RecordLastClose records the latest close for a symbol.
func (r *Recorder) RecordLastClose(symbol string, price float64) {
	if r == nil {
		return
	}
	r.lastClose.WithLabelValues(symbol).Set(price)
}

// RecordRequest records one served HTTP request. route is the templated path.
func (r *Recorder) RecordRequest(route, method, status string) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, status).Inc()
}
