package reasoner

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for the reasoner.
type Metrics struct {
	closureQueries          *prometheus.CounterVec
	materializations        *prometheus.CounterVec
	materializationDuration *prometheus.HistogramVec
	inferences              *prometheus.CounterVec
	rounds                  prometheus.Histogram
}

// NewMetrics creates and registers reasoner metrics. A nil registerer yields
// nil metrics, and every method on a nil *Metrics is a no-op.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		closureQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semtax",
			Subsystem: "reasoner",
			Name:      "closure_queries_total",
			Help:      "Total closure queries by relation family",
		}, []string{"family"}),

		materializations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semtax",
			Subsystem: "reasoner",
			Name:      "materializations_total",
			Help:      "Total extension materializations by class kind",
		}, []string{"kind"}),

		materializationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "semtax",
			Subsystem: "reasoner",
			Name:      "materialization_duration_seconds",
			Help:      "Time spent materializing class extensions",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}, []string{"kind"}),

		inferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "semtax",
			Subsystem: "reasoner",
			Name:      "inferences_total",
			Help:      "Entries written back by reasoning rules",
		}, []string{"rule"}),

		rounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "semtax",
			Subsystem: "reasoner",
			Name:      "reasoning_rounds",
			Help:      "Rounds needed for a reasoning pass to reach a fixpoint",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16, 32},
		}),
	}

	m.closureQueries = register(reg, m.closureQueries)
	m.materializations = register(reg, m.materializations)
	m.materializationDuration = register(reg, m.materializationDuration)
	m.inferences = register(reg, m.inferences)
	m.rounds = register(reg, m.rounds)
	return m
}

// register adds c to reg, reusing an identical collector that is already
// registered so several reasoners can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *Metrics) recordClosure(family string) {
	if m == nil {
		return
	}
	m.closureQueries.WithLabelValues(family).Inc()
}

func (m *Metrics) recordMaterialization(kind string, start time.Time) {
	if m == nil {
		return
	}
	m.materializations.WithLabelValues(kind).Inc()
	m.materializationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (m *Metrics) recordInferences(rule string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.inferences.WithLabelValues(rule).Add(float64(n))
}

func (m *Metrics) recordRounds(n int) {
	if m == nil {
		return
	}
	m.rounds.Observe(float64(n))
}
