package catalog

import "github.com/prometheus/client_golang/prometheus"

const (
	resultSuccess = "success"
	resultInvalid = "invalid"
	resultError   = "error"
)

type Metrics struct {
	Stored  prometheus.Gauge
	Appends *prometheus.CounterVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "garments_stored",
			Help: "Garments currently held in the catalog",
		}),
		Appends: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "garment_appends_total",
				Help: "Create garment attempts by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.Stored, m.Appends)
	return m
}

func (m *Metrics) observeAppend(result string, stored int) {
	if m == nil {
		return
	}
	m.Appends.WithLabelValues(result).Inc()
	m.Stored.Set(float64(stored))
}

func (m *Metrics) setStored(n int) {
	if m == nil {
		return
	}
	m.Stored.Set(float64(n))
}
