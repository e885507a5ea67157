// Command cardsort sorts a shuffled multi-deck sequentially and in parallel
// and reports the speedup.
//
// Usage:
//
//	cardsort -n 4000000
//	cardsort -n 1000000 -pool forkjoin -workers 4 -log-level debug
//	cardsort -metrics-addr :9090        # keep serving /metrics until interrupted
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/king54346/cardsort"
	"github.com/king54346/cardsort/deck"
	"github.com/king54346/cardsort/evaluate"
	"github.com/king54346/cardsort/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	numCards    = flag.Int("n", 4000000, "Number of cards to generate")
	seed        = flag.Int64("seed", time.Now().UnixNano(), "Shuffle seed")
	sample      = flag.Int("sample", report.DefaultSample, "Cards printed from each end of the sorted deck")
	poolKind    = flag.String("pool", "errgroup", "Parallel backend: errgroup or forkjoin")
	workers     = flag.Int("workers", 0, "Fork-join workers (default: GOMAXPROCS)")
	fraction    = flag.Float64("fraction", evaluate.DefaultParallelFraction, "Parallelizable fraction for the Amdahl projection")
	units       = flag.Int("units", evaluate.DefaultUnits, "Execution units efficiency is normalized by")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat   = flag.String("log-format", "text", "Log format: text or json")
	metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address after the run")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := newLogger(*logLevel, *logFormat)
	if err != nil {
		return err
	}

	opts := []cardsort.Option{
		cardsort.WithLogger(logger),
		cardsort.WithModel(evaluate.Model{ParallelFraction: *fraction, Units: *units}),
	}
	switch *poolKind {
	case "errgroup":
	case "forkjoin":
		opts = append(opts, cardsort.WithForkJoinWorkers(int32(*workers)))
	default:
		return fmt.Errorf("unknown -pool %q", *poolKind)
	}

	var reg *prometheus.Registry
	if *metricsAddr != "" {
		reg = prometheus.NewRegistry()
		collector, err := report.NewPrometheus(reg)
		if err != nil {
			return err
		}
		opts = append(opts, cardsort.WithMetricsCollector(collector))
	}

	engine, err := cardsort.New(opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("generating cards", "count", *numCards, "seed", *seed)
	cmp, err := engine.Benchmark(ctx, deck.NewGenerator(*seed), *numCards)
	if err != nil && !errors.Is(err, evaluate.ErrDegenerateTiming) {
		return err
	}
	if err != nil {
		logger.Warn("run too fast to evaluate", "error", err)
	}

	if err := report.NewConsole(os.Stdout, *sample).Report(cmp); err != nil {
		return err
	}

	if reg != nil {
		return serveMetrics(ctx, logger, reg, *metricsAddr)
	}
	return nil
}

func newLogger(level, format string) (*cardsort.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q: %w", level, err)
	}
	switch strings.ToLower(format) {
	case "text":
		return cardsort.NewTextLogger(l), nil
	case "json":
		return cardsort.NewJSONLogger(l), nil
	}
	return nil, fmt.Errorf("unknown -log-format %q", format)
}

func serveMetrics(ctx context.Context, logger *cardsort.Logger, reg *prometheus.Registry, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errC := make(chan error, 1)
	go func() {
		logger.Info("serving metrics", "addr", addr)
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
