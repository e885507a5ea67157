package cardsort

import (
	"log/slog"

	"github.com/king54346/cardsort/deck"
	"github.com/king54346/cardsort/evaluate"
	"github.com/king54346/cardsort/mergesort/fork_join"
)

type options struct {
	order            deck.Order
	pool             *fork_join.ForkJoinPool
	ownPool          bool
	poolWorkers      int32
	model            evaluate.Model
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Engine.
type Option func(*options)

// WithOrder sets the suit order used for bucketing. Cards whose suit is not
// in the order are rejected. Defaults to deck.DefaultOrder.
func WithOrder(order deck.Order) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithForkJoinPool runs the parallel pipeline on pool instead of one
// errgroup goroutine per bucket. The caller keeps ownership of pool.
func WithForkJoinPool(pool *fork_join.ForkJoinPool) Option {
	return func(o *options) {
		o.pool = pool
		o.ownPool = false
	}
}

// WithForkJoinWorkers makes the engine start and own a fork-join pool with
// the given number of workers. A non-positive count uses GOMAXPROCS. The
// pool is released by Engine.Close.
func WithForkJoinWorkers(workers int32) Option {
	return func(o *options) {
		o.pool = nil
		o.ownPool = true
		o.poolWorkers = workers
	}
}

// WithModel sets the evaluation model. Defaults to evaluate.DefaultModel.
func WithModel(m evaluate.Model) Option {
	return func(o *options) {
		o.model = m
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		order:            deck.DefaultOrder,
		model:            evaluate.DefaultModel,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
