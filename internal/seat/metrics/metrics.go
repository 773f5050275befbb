package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SeatsMinted   prometheus.Counter
	SeatsBurned   prometheus.Counter
	SeatsAssigned prometheus.Counter
	SeatsVacated  prometheus.Counter
	QuotaRejected prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		SeatsMinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edumatch_seats_minted_total",
			Help: "Total number of seats minted",
		}),
		SeatsBurned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edumatch_seats_burned_total",
			Help: "Total number of seats burned (unused seats retired)",
		}),
		SeatsAssigned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edumatch_seats_assigned_total",
			Help: "Total number of confirmed seat assignments",
		}),
		SeatsVacated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edumatch_seats_vacated_total",
			Help: "Total number of assigned seats vacated and burned",
		}),
		QuotaRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "edumatch_mint_quota_rejections_total",
			Help: "Total number of mint attempts rejected by quota enforcement",
		}),
	}
}

func (m *Metrics) IncrementMinted() {
	if m != nil {
		m.SeatsMinted.Inc()
	}
}

func (m *Metrics) IncrementBurned() {
	if m != nil {
		m.SeatsBurned.Inc()
	}
}

func (m *Metrics) IncrementAssigned() {
	if m != nil {
		m.SeatsAssigned.Inc()
	}
}

func (m *Metrics) IncrementVacated() {
	if m != nil {
		m.SeatsVacated.Inc()
	}
}

func (m *Metrics) IncrementQuotaRejected() {
	if m != nil {
		m.QuotaRejected.Inc()
	}
}
