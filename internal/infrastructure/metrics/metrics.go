package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Total number of local cart mutations",
	}, []string{"op"})

	CartSyncFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_sync_failures_total",
		Help: "Total number of remote cart mirror calls that failed",
	}, []string{"op"})

	CartSyncDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_sync_dropped_total",
		Help: "Total number of remote cart mirror calls dropped because the queue was full",
	})

	RecordsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "records_created_total",
		Help: "Total number of enquiries and orders submitted",
	}, []string{"kind"})

	StatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "record_status_updates_total",
		Help: "Total number of enquiry and order status changes",
	}, []string{"kind", "status"})

	CatalogCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_lookups_total",
		Help: "Catalog cache lookups by result",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// Middleware records request latency labelled by the matched chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestDuration.WithLabelValues(r.Method, path, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
