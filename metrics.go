package cardsort

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/king54346/cardsort/evaluate"
)

// MetricsCollector defines an interface for collecting operational metrics.
// report.Prometheus implements it for Prometheus.
type MetricsCollector interface {
	// RecordRun is called after each pipeline run.
	RecordRun(mode Mode, records int, duration time.Duration, err error)

	// RecordEvaluation is called after each successful evaluation.
	RecordEvaluation(m evaluate.Metrics)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(Mode, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEvaluation(evaluate.Metrics)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	SequentialRuns  atomic.Int64
	SequentialNanos atomic.Int64
	ParallelRuns    atomic.Int64
	ParallelNanos   atomic.Int64
	Records         atomic.Int64
	Errors          atomic.Int64
	Evaluations     atomic.Int64
	lastSpeedupBits atomic.Uint64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(mode Mode, records int, duration time.Duration, err error) {
	if err != nil {
		b.Errors.Add(1)
		return
	}
	switch mode {
	case ModeSequential:
		b.SequentialRuns.Add(1)
		b.SequentialNanos.Add(duration.Nanoseconds())
	default:
		b.ParallelRuns.Add(1)
		b.ParallelNanos.Add(duration.Nanoseconds())
	}
	b.Records.Add(int64(records))
}

// RecordEvaluation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluation(m evaluate.Metrics) {
	b.Evaluations.Add(1)
	b.lastSpeedupBits.Store(math.Float64bits(m.Speedup))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SequentialRuns:     b.SequentialRuns.Load(),
		SequentialAvgNanos: avg(b.SequentialNanos.Load(), b.SequentialRuns.Load()),
		ParallelRuns:       b.ParallelRuns.Load(),
		ParallelAvgNanos:   avg(b.ParallelNanos.Load(), b.ParallelRuns.Load()),
		Records:            b.Records.Load(),
		Errors:             b.Errors.Load(),
		Evaluations:        b.Evaluations.Load(),
		LastSpeedup:        math.Float64frombits(b.lastSpeedupBits.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SequentialRuns     int64
	SequentialAvgNanos int64
	ParallelRuns       int64
	ParallelAvgNanos   int64
	Records            int64
	Errors             int64
	Evaluations        int64
	LastSpeedup        float64
}
