// Package metrics holds the prometheus collectors cardly exports.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	cardViewsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardly_card_views_total",
			Help: "Public card views recorded, by lookup kind (slug/code).",
		},
		[]string{"lookup"},
	)

	codesSoldTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardly_activation_codes_sold_total",
			Help: "Activation codes marked sold, by plan.",
		},
		[]string{"plan"},
	)

	codesRedeemedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardly_activation_codes_redeemed_total",
			Help: "Activation codes redeemed by card creation, by plan.",
		},
		[]string{"plan"},
	)

	codesByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cardly_activation_codes",
			Help: "Activation codes in the ledger by status, as of the last stats query.",
		},
		[]string{"status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardly_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardly_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			cardViewsTotal,
			codesSoldTotal, codesRedeemedTotal, codesByStatus,
			httpRequestsTotal, httpRequestDuration,
		)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	MustRegister()
	return promhttp.Handler()
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncCardView(lookup string) {
	cardViewsTotal.WithLabelValues(norm(lookup)).Inc()
}

func IncCodesSold(plan string) {
	codesSoldTotal.WithLabelValues(norm(plan)).Inc()
}

func IncCodesRedeemed(plan string) {
	codesRedeemedTotal.WithLabelValues(norm(plan)).Inc()
}

// SetCodesByStatus publishes a ledger snapshot.
func SetCodesByStatus(counts map[string]int64) {
	for status, n := range counts {
		codesByStatus.WithLabelValues(norm(status)).Set(float64(n))
	}
}

// ObserveHTTPRequest records one served request. route is the matched pattern, not the raw path.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
