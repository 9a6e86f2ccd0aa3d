// Package metrics exposes Prometheus instruments for scoreboard ingestion,
// televote aggregation and frame export.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ModeCombined = "combined"
	ModeFiles    = "files"

	StatusOK     = "ok"
	StatusFailed = "failed"
)

var (
	scoreboardsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoreboard_ingest_scoreboards_total",
			Help: "Scoreboards accepted by an upload, by ingestion mode.",
		},
		[]string{"mode"},
	)
	ingestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoreboard_ingest_failures_total",
			Help: "Rejected uploads or skipped scoreboards, by ingestion mode.",
		},
		[]string{"mode"},
	)
	roundsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "televote_rounds_skipped_total",
			Help: "Rounds skipped during televote aggregation.",
		},
		[]string{"reason"},
	)
	exportUnits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "export_units_total",
			Help: "Frames rendered and captured by the exporter.",
		},
		[]string{"status"},
	)
	exportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "export_run_duration_seconds",
			Help:    "Wall time of a full export run.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)

func RecordScoreboardsLoaded(mode string, count int) {
	scoreboardsLoaded.WithLabelValues(mode).Add(float64(count))
}

func RecordIngestFailure(mode string) {
	ingestFailures.WithLabelValues(mode).Inc()
}

func RecordRoundSkipped(reason string) {
	roundsSkipped.WithLabelValues(reason).Inc()
}

func RecordExportUnit(err error) {
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	exportUnits.WithLabelValues(status).Inc()
}

func RecordExportRun(d time.Duration) {
	exportDuration.Observe(d.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
