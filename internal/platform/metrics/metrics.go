// Package metrics registra os contadores Prometheus do serviço.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RecordsCreated prometheus.Counter
	RecordsUpdated prometheus.Counter
	Logins         prometheus.Counter
}

// New cria e registra as métricas no registry default (exposto em /metrics).
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubs_monitoring_records_created_total",
			Help: "Total de prontuários criados.",
		}),
		RecordsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubs_monitoring_records_updated_total",
			Help: "Total de prontuários atualizados.",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ubs_monitoring_logins_total",
			Help: "Total de logins bem-sucedidos.",
		}),
	}
}

// Incrementos nil-safe: o router roda sem métricas nos testes.

func (m *Metrics) IncRecordsCreated() {
	if m == nil {
		return
	}
	m.RecordsCreated.Inc()
}

func (m *Metrics) IncRecordsUpdated() {
	if m == nil {
		return
	}
	m.RecordsUpdated.Inc()
}

func (m *Metrics) IncLogins() {
	if m == nil {
		return
	}
	m.Logins.Inc()
}
