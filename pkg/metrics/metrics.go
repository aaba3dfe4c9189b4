// Package metrics holds the Prometheus collectors specific to the storefront.
// They sit next to the OTel instruments registered by pkg/telemetry and are
// served by the same /metrics handler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded on storefront_item_operations_total.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics is the set of application collectors. A nil *Metrics records nothing.
type Metrics struct {
	itemOps         *prometheus.CounterVec
	merchantSearch  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		itemOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_item_operations_total",
			Help: "Item operations by kind and outcome.",
		}, []string{"operation", "outcome"}),
		merchantSearch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_merchant_searches_total",
			Help: "Merchant name searches by mode and whether anything matched.",
		}, []string{"mode", "result"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.itemOps, m.merchantSearch, m.requestDuration)
	return m
}

// ItemOperation counts one item operation ("create", "update", ...).
func (m *Metrics) ItemOperation(op, outcome string) {
	if m == nil {
		return
	}
	m.itemOps.WithLabelValues(op, outcome).Inc()
}

// MerchantSearch counts one name search. mode is "find" or "find_all".
func (m *Metrics) MerchantSearch(mode string, matched bool) {
	if m == nil {
		return
	}
	result := "miss"
	if matched {
		result = "hit"
	}
	m.merchantSearch.WithLabelValues(mode, result).Inc()
}

// Middleware observes request duration labelled by chi route pattern, so
// /items/1 and /items/2 share a series.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
