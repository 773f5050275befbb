package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RunsTotal       prometheus.Counter
	RunsFailedTotal prometheus.Counter
	RunDurationMs   prometheus.Histogram
	LastAdmitted    prometheus.Gauge
	LastUnmatched   prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edumatch_matching_runs_total",
			Help: "Total number of completed matching runs",
		}),
		RunsFailedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edumatch_matching_runs_failed_total",
			Help: "Total number of matching runs that failed before publishing",
		}),
		RunDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "edumatch_matching_run_duration_ms",
			Help:    "Latency of matching runs (snapshot through publish) in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		LastAdmitted: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "edumatch_matching_last_admitted",
			Help: "Candidates admitted by the most recent matching run",
		}),
		LastUnmatched: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "edumatch_matching_last_unmatched",
			Help: "Candidates left unmatched by the most recent matching run",
		}),
	}
}

func (m *Metrics) ObserveRun(durationMs float64, admitted, unmatched int) {
	if m == nil {
		return
	}
	m.RunsTotal.Inc()
	m.RunDurationMs.Observe(durationMs)
	m.LastAdmitted.Set(float64(admitted))
	m.LastUnmatched.Set(float64(unmatched))
}

func (m *Metrics) IncrementFailed() {
	if m != nil {
		m.RunsFailedTotal.Inc()
	}
}
