package cardsort

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/king54346/cardsort/bucket"
	"github.com/king54346/cardsort/deck"
	"github.com/king54346/cardsort/evaluate"
	"github.com/king54346/cardsort/mergesort/fork_join"
)

// Mode identifies a pipeline.
type Mode int

const (
	ModeSequential Mode = iota
	ModeParallel
)

func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeParallel:
		return "parallel"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Source produces the unordered cards to sort.
type Source interface {
	Generate(count int) ([]deck.Card, error)
}

// Result is the ordered output of one pipeline run and how long it took.
type Result struct {
	Mode    Mode
	Cards   []deck.Card
	Elapsed time.Duration
}

// Comparison holds both runs over the same input and their evaluation.
type Comparison struct {
	Sequential Result
	Parallel   Result
	Metrics    evaluate.Metrics
}

// Engine runs the sequential and parallel pipelines and evaluates them.
// It is safe for concurrent use.
type Engine struct {
	opts    options
	pool    *fork_join.ForkJoinPool
	ownPool bool
	closed  atomic.Bool
}

// New creates an Engine.
func New(optFns ...Option) (*Engine, error) {
	o := applyOptions(optFns)
	if o.order.Len() == 0 {
		return nil, fmt.Errorf("%w: no suits", deck.ErrInvalidOrder)
	}
	if err := o.model.Validate(); err != nil {
		return nil, err
	}

	o.logger = o.logger.WithOrder(o.order)
	e := &Engine{opts: o, pool: o.pool}
	if o.ownPool {
		e.pool = fork_join.NewForkJoinPool(o.poolWorkers)
		e.ownPool = true
		e.pool.SetPanicHandler(func(v interface{}) {
			o.logger.Error("sort task panicked", "panic", v)
		})
	}
	return e, nil
}

// Order returns the suit order used for bucketing.
func (e *Engine) Order() deck.Order {
	return e.opts.order
}

// RunSequential sorts cards with the sequential pipeline. cards is not
// modified.
func (e *Engine) RunSequential(ctx context.Context, cards []deck.Card) (Result, error) {
	return e.run(ctx, ModeSequential, cards)
}

// RunParallel sorts cards with one concurrent task per non-empty suit
// bucket. cards is not modified.
func (e *Engine) RunParallel(ctx context.Context, cards []deck.Card) (Result, error) {
	return e.run(ctx, ModeParallel, cards)
}

func (e *Engine) run(ctx context.Context, mode Mode, cards []deck.Card) (Result, error) {
	if e.closed.Load() {
		return Result{}, ErrClosed
	}

	var (
		out []deck.Card
		err error
	)
	start := time.Now()
	switch {
	case mode == ModeSequential:
		out, err = bucket.Sequential(cards, e.opts.order)
	case e.pool != nil:
		out, err = bucket.ParallelPool(e.pool, cards, e.opts.order)
	default:
		out, err = bucket.Parallel(ctx, cards, e.opts.order)
	}
	elapsed := time.Since(start)

	e.opts.metricsCollector.RecordRun(mode, len(cards), elapsed, err)
	e.opts.logger.WithMode(mode).LogRun(ctx, len(cards), elapsed, err)
	if err != nil {
		return Result{}, fmt.Errorf("%s sort: %w", mode, err)
	}
	return Result{Mode: mode, Cards: out, Elapsed: elapsed}, nil
}

// Evaluate computes speedup metrics from a parallel and a sequential
// elapsed time.
func (e *Engine) Evaluate(parallel, sequential time.Duration) (evaluate.Metrics, error) {
	m, err := e.opts.model.Evaluate(parallel, sequential)
	e.opts.logger.LogEvaluate(context.Background(), parallel, sequential, m, err)
	if err != nil {
		return evaluate.Metrics{}, err
	}
	e.opts.metricsCollector.RecordEvaluation(m)
	return m, nil
}

// Compare runs both pipelines over cards, checks that they agree and
// evaluates the timings. When only the evaluation fails, the runs are still
// returned along with the error.
func (e *Engine) Compare(ctx context.Context, cards []deck.Card) (Comparison, error) {
	var c Comparison
	var err error

	if c.Sequential, err = e.RunSequential(ctx, cards); err != nil {
		return Comparison{}, err
	}
	if c.Parallel, err = e.RunParallel(ctx, cards); err != nil {
		return Comparison{}, err
	}
	if err := checkEqual(c.Sequential.Cards, c.Parallel.Cards); err != nil {
		return Comparison{}, err
	}

	c.Metrics, err = e.Evaluate(c.Parallel.Elapsed, c.Sequential.Elapsed)
	return c, err
}

// Benchmark draws count cards from src and compares both pipelines on
// them.
func (e *Engine) Benchmark(ctx context.Context, src Source, count int) (Comparison, error) {
	cards, err := src.Generate(count)
	if err != nil {
		return Comparison{}, fmt.Errorf("generate: %w", err)
	}
	e.opts.logger.InfoContext(ctx, "cards generated", "count", len(cards))
	return e.Compare(ctx, cards)
}

// Close releases the engine's own fork-join pool. A pool passed with
// WithForkJoinPool is left running.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	if e.ownPool {
		e.pool.Close()
	}
	return nil
}
