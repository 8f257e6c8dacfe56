package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	votoRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eleicoes_voto_requests_total",
		Help: "Total de requisicoes de voto recebidas, por desfecho",
	}, []string{"status"})

	transicoesCargoTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eleicoes_transicoes_cargo_total",
		Help: "Total de transicoes de estado dos cargos (abrir, avancar, concluir, resolver)",
	}, []string{"transicao"})

	votoDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eleicoes_voto_duration_seconds",
		Help:    "Tempo para validar e registrar um voto",
		Buckets: prometheus.DefBuckets,
	})
)

func ObserveVotoRequest(status string) {
	votoRequestsTotal.WithLabelValues(status).Inc()
}

func IncTransicaoCargo(transicao string) {
	transicoesCargoTotal.WithLabelValues(transicao).Inc()
}

func ObserveVotoDuration(seconds float64) {
	votoDuration.Observe(seconds)
}
