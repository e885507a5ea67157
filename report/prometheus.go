package report

import (
	"time"

	"github.com/king54346/cardsort"
	"github.com/king54346/cardsort/evaluate"
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus exports pipeline runs and evaluations as Prometheus metrics.
// It implements cardsort.MetricsCollector.
type Prometheus struct {
	runDuration        *prometheus.HistogramVec
	records            *prometheus.CounterVec
	runErrors          *prometheus.CounterVec
	speedup            prometheus.Gauge
	theoreticalSpeedup prometheus.Gauge
	efficiency         prometheus.Gauge
}

var _ cardsort.MetricsCollector = (*Prometheus)(nil)

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cardsort_run_duration_seconds",
			Help:    "Wall time of a pipeline run",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"mode"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cardsort_records_total",
			Help: "Cards sorted by successful runs",
		}, []string{"mode"}),
		runErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cardsort_run_errors_total",
			Help: "Pipeline runs that failed",
		}, []string{"mode"}),
		speedup: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cardsort_speedup",
			Help: "Sequential time divided by parallel time of the last evaluation",
		}),
		theoreticalSpeedup: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cardsort_theoretical_speedup",
			Help: "Amdahl's law projection of the last evaluation",
		}),
		efficiency: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cardsort_efficiency_percent",
			Help: "Speedup per execution unit of the last evaluation, in percent",
		}),
	}

	for _, c := range []prometheus.Collector{
		p.runDuration, p.records, p.runErrors,
		p.speedup, p.theoreticalSpeedup, p.efficiency,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// RecordRun implements cardsort.MetricsCollector.
func (p *Prometheus) RecordRun(mode cardsort.Mode, records int, d time.Duration, err error) {
	if err != nil {
		p.runErrors.WithLabelValues(mode.String()).Inc()
		return
	}
	p.runDuration.WithLabelValues(mode.String()).Observe(d.Seconds())
	p.records.WithLabelValues(mode.String()).Add(float64(records))
}

// RecordEvaluation implements cardsort.MetricsCollector.
func (p *Prometheus) RecordEvaluation(m evaluate.Metrics) {
	p.speedup.Set(m.Speedup)
	p.theoreticalSpeedup.Set(m.TheoreticalSpeedup)
	p.efficiency.Set(m.Efficiency)
}
