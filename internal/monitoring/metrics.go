package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_mutations_total",
			Help: "Total number of store mutations by entity and operation",
		},
		[]string{"entity", "op"},
	)
	EntityCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "portfolio_entities",
			Help: "Current number of records per collection",
		},
		[]string{"entity"},
	)
	PersistDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_persist_duration_seconds",
			Help:    "Duration of collection writes to durable storage",
			Buckets: prometheus.DefBuckets,
		},
	)
	PersistFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_persist_failures_total",
			Help: "Total number of failed writes to durable storage",
		},
	)
)

func InitMetrics() {
	for _, c := range []prometheus.Collector{Mutations, EntityCount, PersistDuration, PersistFailures} {
		if err := prometheus.Register(c); err != nil {
			log.Error().Err(err).Msg("Failed to register metric")
		}
	}
}
