// Package evaluate turns a pair of sequential and parallel timings into
// speedup figures.
//
// The theoretical speedup applies Amdahl's law to the measured speedup:
//
//	theoretical = 1 / ((1 - p) + p/speedup)
//
// where p is the assumed parallelizable fraction of the work. Efficiency is
// the speedup divided by a fixed number of execution units, in percent.
package evaluate

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// DefaultParallelFraction is the share of the work assumed to be
	// parallelizable.
	DefaultParallelFraction = 0.80
	// DefaultUnits is the number of parallel execution units efficiency is
	// normalized by: one per suit.
	DefaultUnits = 4
)

var (
	// ErrDegenerateTiming is returned when a timing is zero or negative, so
	// no finite speedup exists.
	ErrDegenerateTiming = errors.New("evaluate: timings must be positive")
	// ErrInvalidModel is returned for a fraction outside [0, 1] or a
	// non-positive unit count.
	ErrInvalidModel = errors.New("evaluate: invalid model")
)

// Metrics are the figures derived from one pair of timings.
type Metrics struct {
	Speedup            float64
	TheoreticalSpeedup float64
	Efficiency         float64 // percent
}

// Model holds the fixed assumptions of the evaluation.
type Model struct {
	ParallelFraction float64
	Units            int
}

// DefaultModel is the 80% parallel, 4 unit model.
var DefaultModel = Model{ParallelFraction: DefaultParallelFraction, Units: DefaultUnits}

// Validate checks the model's assumptions.
func (m Model) Validate() error {
	if math.IsNaN(m.ParallelFraction) || m.ParallelFraction < 0 || m.ParallelFraction > 1 {
		return fmt.Errorf("%w: parallel fraction %v not in [0, 1]", ErrInvalidModel, m.ParallelFraction)
	}
	if m.Units <= 0 {
		return fmt.Errorf("%w: units %d must be positive", ErrInvalidModel, m.Units)
	}
	return nil
}

// Evaluate computes Metrics from the parallel and sequential elapsed times.
func (m Model) Evaluate(parallel, sequential time.Duration) (Metrics, error) {
	if err := m.Validate(); err != nil {
		return Metrics{}, err
	}
	if parallel <= 0 || sequential <= 0 {
		return Metrics{}, fmt.Errorf("%w: parallel=%v sequential=%v", ErrDegenerateTiming, parallel, sequential)
	}

	speedup := float64(sequential) / float64(parallel)
	p := m.ParallelFraction
	return Metrics{
		Speedup:            speedup,
		TheoreticalSpeedup: 1 / ((1 - p) + p/speedup),
		Efficiency:         100 * speedup / float64(m.Units),
	}, nil
}

// Evaluate computes Metrics under DefaultModel.
func Evaluate(parallel, sequential time.Duration) (Metrics, error) {
	return DefaultModel.Evaluate(parallel, sequential)
}
