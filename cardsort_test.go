package cardsort

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/king54346/cardsort/bucket"
	"github.com/king54346/cardsort/deck"
	"github.com/king54346/cardsort/evaluate"
	"github.com/king54346/cardsort/mergesort/fork_join"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource []deck.Card

func (s fixedSource) Generate(count int) ([]deck.Card, error) {
	if count < 0 {
		return nil, deck.ErrNegativeCount
	}
	return append([]deck.Card(nil), s[:count]...), nil
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestRunPipelines(t *testing.T) {
	cards, err := deck.NewGenerator(1).Generate(52*50 + 3)
	require.NoError(t, err)

	pool := fork_join.NewForkJoinPool(2)
	defer pool.Close()

	for name, opts := range map[string][]Option{
		"errgroup":     nil,
		"shared pool":  {WithForkJoinPool(pool)},
		"owned pool":   {WithForkJoinWorkers(3)},
		"default pool": {WithForkJoinWorkers(0)},
	} {
		t.Run(name, func(t *testing.T) {
			e := newEngine(t, opts...)

			seq, err := e.RunSequential(context.Background(), cards)
			require.NoError(t, err)
			par, err := e.RunParallel(context.Background(), cards)
			require.NoError(t, err)

			assert.Equal(t, ModeSequential, seq.Mode)
			assert.Equal(t, ModeParallel, par.Mode)
			assert.GreaterOrEqual(t, seq.Elapsed, time.Duration(0))
			assert.GreaterOrEqual(t, par.Elapsed, time.Duration(0))
			assert.Len(t, seq.Cards, len(cards))
			assert.Equal(t, seq.Cards, par.Cards)
		})
	}
}

func TestRunEmpty(t *testing.T) {
	e := newEngine(t)

	seq, err := e.RunSequential(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, seq.Cards)
	assert.GreaterOrEqual(t, seq.Elapsed, time.Duration(0))

	par, err := e.RunParallel(context.Background(), []deck.Card{})
	require.NoError(t, err)
	assert.Empty(t, par.Cards)
	assert.GreaterOrEqual(t, par.Elapsed, time.Duration(0))
}

func TestRunUnmappedSuit(t *testing.T) {
	mc := &BasicMetricsCollector{}
	e := newEngine(t,
		WithOrder(deck.MustOrder(deck.Heart)),
		WithMetricsCollector(mc),
	)

	_, err := e.RunParallel(context.Background(), []deck.Card{{Suit: deck.Spade, Rank: 1}})
	var ue *bucket.UnmappedSuitError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, int64(1), mc.GetStats().Errors)
}

func TestEvaluate(t *testing.T) {
	mc := &BasicMetricsCollector{}
	e := newEngine(t, WithMetricsCollector(mc))

	m, err := e.Evaluate(100, 200)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, m.Speedup, 1e-12)
	assert.InDelta(t, 1.0/0.6, m.TheoreticalSpeedup, 1e-12)
	assert.InDelta(t, 50.0, m.Efficiency, 1e-12)
	assert.InDelta(t, 2.0, mc.GetStats().LastSpeedup, 1e-12)

	_, err = e.Evaluate(0, 100)
	assert.ErrorIs(t, err, evaluate.ErrDegenerateTiming)
	assert.Equal(t, int64(1), mc.GetStats().Evaluations)
}

func TestCustomModel(t *testing.T) {
	e := newEngine(t, WithModel(evaluate.Model{ParallelFraction: 0.5, Units: 2}))

	m, err := e.Evaluate(time.Second, 2*time.Second)
	require.NoError(t, err)
	assert.InDelta(t, 1/(0.5+0.25), m.TheoreticalSpeedup, 1e-12)
	assert.InDelta(t, 100.0, m.Efficiency, 1e-12)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(WithModel(evaluate.Model{ParallelFraction: 2, Units: 4}))
	assert.ErrorIs(t, err, evaluate.ErrInvalidModel)

	_, err = New(WithOrder(deck.Order{}))
	assert.ErrorIs(t, err, deck.ErrInvalidOrder)
}

func TestBenchmark(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mc := &BasicMetricsCollector{}
	e := newEngine(t, WithLogger(logger), WithMetricsCollector(mc))

	cmp, err := e.Benchmark(context.Background(), deck.NewGenerator(5), 52*1000)
	if errors.Is(err, evaluate.ErrDegenerateTiming) {
		t.Skip("clock too coarse to time the run")
	}
	require.NoError(t, err)

	assert.Equal(t, cmp.Sequential.Cards, cmp.Parallel.Cards)
	assert.Greater(t, cmp.Metrics.Speedup, 0.0)

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.SequentialRuns)
	assert.Equal(t, int64(1), stats.ParallelRuns)
	assert.Equal(t, int64(2*52*1000), stats.Records)

	var sawEval bool
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		if rec["msg"] == "evaluation completed" {
			sawEval = true
			assert.Contains(t, rec, "speedup")
		}
	}
	assert.True(t, sawEval)
}

func TestRunLogsModeAndOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a, b := deck.Spade, deck.Heart
	e := newEngine(t, WithLogger(logger), WithOrder(deck.MustOrder(a, b)))

	cards := []deck.Card{{a, 2}, {b, 1}, {a, 1}}
	_, err := e.RunSequential(context.Background(), cards)
	require.NoError(t, err)
	_, err = e.RunParallel(context.Background(), cards)
	require.NoError(t, err)

	var modes []any
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		if rec["msg"] == "sort completed" {
			modes = append(modes, rec["mode"])
			assert.Equal(t, "Spade<Heart", rec["order"])
			assert.Equal(t, 3.0, rec["records"])
		}
	}
	assert.Equal(t, []any{"sequential", "parallel"}, modes)
}

func TestBenchmarkSourceError(t *testing.T) {
	e := newEngine(t)
	_, err := e.Benchmark(context.Background(), fixedSource(nil), -1)
	assert.ErrorIs(t, err, deck.ErrNegativeCount)
}

func TestCompareFixedSource(t *testing.T) {
	a, b, c := deck.Heart, deck.Club, deck.Spade
	src := fixedSource{{b, 5}, {a, 3}, {a, 1}, {c, 2}, {b, 1}}
	e := newEngine(t, WithOrder(deck.MustOrder(a, b, c)))

	cmp, err := e.Benchmark(context.Background(), src, len(src))
	if err != nil {
		// tiny inputs may finish within one clock tick
		require.ErrorIs(t, err, evaluate.ErrDegenerateTiming)
	}
	want := []deck.Card{{a, 1}, {a, 3}, {b, 1}, {b, 5}, {c, 2}}
	assert.Equal(t, want, cmp.Sequential.Cards)
	assert.Equal(t, want, cmp.Parallel.Cards)
}

func TestCheckEqual(t *testing.T) {
	x := []deck.Card{{Suit: deck.Heart, Rank: 1}, {Suit: deck.Heart, Rank: 2}}
	y := []deck.Card{{Suit: deck.Heart, Rank: 1}, {Suit: deck.Heart, Rank: 3}}

	assert.NoError(t, checkEqual(x, x))

	var me *ErrOutputMismatch
	require.ErrorAs(t, checkEqual(x, y), &me)
	assert.Equal(t, 1, me.Index)
	assert.Contains(t, me.Error(), "mismatch at 1")

	require.ErrorAs(t, checkEqual(x, x[:1]), &me)
	assert.Equal(t, 1, me.Index)
	assert.Contains(t, me.Error(), "2 cards")
}

func TestClosed(t *testing.T) {
	e, err := New(WithForkJoinWorkers(2))
	require.NoError(t, err)
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, err = e.RunParallel(context.Background(), nil)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "sequential", ModeSequential.String())
	assert.Equal(t, "parallel", ModeParallel.String())
	assert.Equal(t, "Mode(7)", Mode(7).String())
}
