// Package metrics provides Prometheus metric collection and exposure.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records HTTP request metrics plus counters for the ledger's
// domain events.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpLatency  prometheus.Histogram

	expensesCreated    prometheus.Counter
	settlementsCreated prometheus.Counter
	splitsSettled      prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitmate_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "splitmate_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		expensesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "splitmate_expenses_created_total",
			Help: "Expenses recorded in the ledger.",
		}),
		settlementsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "splitmate_settlements_recorded_total",
			Help: "Settlements recorded in the ledger.",
		}),
		splitsSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "splitmate_splits_settled_total",
			Help: "Individual splits marked settled.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.expensesCreated,
		c.settlementsCreated,
		c.splitsSettled,
	)
	return c
}

// RecordExpenseCreated counts a recorded expense.
func (c *Collector) RecordExpenseCreated() { c.expensesCreated.Inc() }

// RecordSettlementRecorded counts a recorded settlement.
func (c *Collector) RecordSettlementRecorded() { c.settlementsCreated.Inc() }

// RecordSplitSettled counts a split marked settled.
func (c *Collector) RecordSplitSettled() { c.splitsSettled.Inc() }

// Middleware records request count and latency for every request.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		c.httpRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		c.httpLatency.Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.status = code
		sw.written = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.written {
		sw.status = http.StatusOK
		sw.written = true
	}
	return sw.ResponseWriter.Write(b)
}

// Handler returns the Prometheus scrape endpoint for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
