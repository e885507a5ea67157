// Package cardsort sorts large shuffled multi-decks of playing cards by
// suit and rank, and compares a sequential run against a parallel one.
//
// Cards are bucketed by suit, every bucket is merge sorted by rank and the
// buckets are concatenated in a fixed suit order. The parallel pipeline
// sorts each bucket on its own task and joins all of them before the
// concatenation, so both pipelines produce the same sequence.
//
// # Quick Start
//
//	e, _ := cardsort.New(cardsort.WithLogLevel(slog.LevelInfo))
//	defer e.Close()
//
//	cmp, err := e.Benchmark(ctx, deck.NewGenerator(1), 4_000_000)
//	fmt.Println(cmp.Metrics.Speedup, cmp.Metrics.Efficiency)
//
// # Parallel Backends
//
// By default the parallel pipeline starts one errgroup goroutine per suit.
// WithForkJoinPool or WithForkJoinWorkers run the bucket sorts as tasks on a
// fork_join.ForkJoinPool instead.
//
// # Evaluation
//
// Engine.Evaluate reports the measured speedup, an Amdahl's law projection
// that assumes 80% of the work is parallelizable, and the efficiency over
// four execution units. Both constants live in evaluate.Model.
package cardsort
