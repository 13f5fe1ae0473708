package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	CacheHits         *prometheus.CounterVec
	CacheMisses       *prometheus.CounterVec
	CacheComputations *prometheus.CounterVec
	CacheComputeSec   *prometheus.HistogramVec
	CacheStoreErrors  *prometheus.CounterVec

	HTTPRequests   *prometheus.CounterVec
	HTTPLatencySec *prometheus.HistogramVec

	// order import stream
	OrdersImported prometheus.Counter
	OrdersRejected prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orderpulse_cache_hits_total"}, []string{"op"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orderpulse_cache_misses_total"}, []string{"op"})
	computations := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orderpulse_cache_computations_total"}, []string{"op"})
	computeSec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderpulse_cache_compute_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	storeErrors := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orderpulse_cache_store_errors_total"}, []string{"op"})

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orderpulse_http_requests_total"}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderpulse_http_request_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	imported := prometheus.NewCounter(prometheus.CounterOpts{Name: "orderpulse_stream_orders_imported_total"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "orderpulse_stream_orders_rejected_total"})

	r.MustRegister(hits, misses, computations, computeSec, storeErrors, requests, latency, imported, rejected)
	return &Registry{
		reg:               r,
		CacheHits:         hits,
		CacheMisses:       misses,
		CacheComputations: computations,
		CacheComputeSec:   computeSec,
		CacheStoreErrors:  storeErrors,
		HTTPRequests:      requests,
		HTTPLatencySec:    latency,
		OrdersImported:    imported,
		OrdersRejected:    rejected,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// ObserveRequest records one served HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int, took time.Duration) {
	r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPLatencySec.WithLabelValues(method, route).Observe(took.Seconds())
}

// CacheObserver adapts the registry to cache.Observer.
type CacheObserver struct{ R *Registry }

func (o CacheObserver) Hit(op string)  { o.R.CacheHits.WithLabelValues(op).Inc() }
func (o CacheObserver) Miss(op string) { o.R.CacheMisses.WithLabelValues(op).Inc() }
func (o CacheObserver) Computed(op string, took time.Duration) {
	o.R.CacheComputations.WithLabelValues(op).Inc()
	o.R.CacheComputeSec.WithLabelValues(op).Observe(took.Seconds())
}
func (o CacheObserver) StoreError(op string) { o.R.CacheStoreErrors.WithLabelValues(op).Inc() }
