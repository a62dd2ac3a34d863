package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EventsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hottub_events_recorded_total",
			Help: "Total number of events written to the log",
		},
		[]string{"revision"},
	)

	RowsTrimmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hottub_rows_trimmed_total",
			Help: "Total number of oldest rows deleted to keep the log capped",
		},
	)

	RecordFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hottub_record_failures_total",
			Help: "Total number of failed event writes",
		},
		[]string{"reason"},
	)

	LogRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hottub_log_rows",
			Help: "Data rows in the log after the last write",
		},
	)
)

// Failure reasons.
const (
	ReasonStorage       = "storage"
	ReasonHeaderMissing = "header_missing"
)

// Handler returns the Prometheus HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
