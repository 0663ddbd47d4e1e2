package importer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	FormatLDR = "ldr"
	FormatMPD = "mpd"
)

var (
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ldraw_imports_total",
			Help: "Total number of model imports",
		},
		[]string{"format", "status"},
	)

	ImportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ldraw_import_duration_seconds",
			Help:    "Duration of model imports",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"format"},
	)

	LinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ldraw_import_lines_total",
			Help: "Total number of lines consumed by imports",
		},
		[]string{"format"},
	)

	PartsPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ldraw_import_parts_placed_total",
			Help: "Total number of parts placed in imported models",
		},
		[]string{"format"},
	)

	SubFilesExpanded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ldraw_import_subfiles_expanded_total",
			Help: "Total number of on-disk sub files expanded",
		},
	)

	DiagnosticsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ldraw_import_diagnostics_total",
			Help: "Total number of diagnostics recorded by imports",
		},
		[]string{"format"},
	)
)

// recorder records the metrics of a single import.
type recorder struct {
	format string
	start  time.Time
	lines  int
}

func newRecorder() *recorder {
	return &recorder{format: FormatLDR, start: time.Now()}
}

func (r *recorder) Line() {
	r.lines++
}

func (r *recorder) Finish(placed, diagnostics int, err error) {
	status := "success"
	switch {
	case err != nil:
		status = "failed"
	case diagnostics > 0:
		status = "warnings"
	}
	ImportsTotal.WithLabelValues(r.format, status).Inc()
	ImportDuration.WithLabelValues(r.format).Observe(time.Since(r.start).Seconds())
	LinesTotal.WithLabelValues(r.format).Add(float64(r.lines))
	PartsPlaced.WithLabelValues(r.format).Add(float64(placed))
	DiagnosticsTotal.WithLabelValues(r.format).Add(float64(diagnostics))
}
