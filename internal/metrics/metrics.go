package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SyncAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_attempts_total",
			Help: "Sync cycles by domain and result.",
		},
		[]string{"domain", "result"},
	)

	SyncDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of sync cycles that reached the source.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"domain"},
	)

	SyncRecordsCached = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sync_records_cached",
			Help: "Records written to the cache by the last successful sync.",
		},
		[]string{"domain"},
	)

	SyncRowsDroppedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_rows_dropped_total",
			Help: "Sheet rows dropped because a field failed validation.",
		},
		[]string{"domain", "field"},
	)

	InventoryMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_mutations_total",
			Help: "Inventory changes by action.",
		},
		[]string{"action"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"result"},
	)
)

// Sync results
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultSkipped = "skipped"
	ResultStale   = "discarded"
)

// MustRegister registers every collector on reg, or on the default registry when reg is nil.
func MustRegister(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		SyncAttemptsTotal,
		SyncDurationSeconds,
		SyncRecordsCached,
		SyncRowsDroppedTotal,
		InventoryMutationsTotal,
		LoginsTotal,
	)
}
