// Package report renders comparisons for people and for Prometheus.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/king54346/cardsort"
	"github.com/king54346/cardsort/deck"
)

// DefaultSample is how many cards are printed from each end of an ordered
// output.
const DefaultSample = 64

// Console writes a plain text summary of a comparison.
type Console struct {
	w      io.Writer
	sample int
}

// NewConsole returns a Console writing to w that prints sample cards from
// each end of the ordered output. A negative sample uses DefaultSample.
func NewConsole(w io.Writer, sample int) *Console {
	if sample < 0 {
		sample = DefaultSample
	}
	return &Console{w: w, sample: sample}
}

// Report writes timings, metrics and a sample of the ordered output.
func (c *Console) Report(cmp cardsort.Comparison) error {
	ew := &errWriter{w: c.w}
	ew.printf("Sort time - sequential: %s\n", Timing(cmp.Sequential.Elapsed))
	ew.printf("Sort time - parallel: %s\n", Timing(cmp.Parallel.Elapsed))
	ew.printf("Speedup: %.4g\n", cmp.Metrics.Speedup)
	ew.printf("Overall Speedup: %.4g\n", cmp.Metrics.TheoreticalSpeedup)
	ew.printf("Efficiency: %.4g%%\n", cmp.Metrics.Efficiency)
	if ew.err != nil {
		return ew.err
	}
	return c.Sample(cmp.Parallel.Cards)
}

// Sample writes the first and last cards of an ordered output, separated by
// an ellipsis when cards were skipped.
func (c *Console) Sample(cards []deck.Card) error {
	ew := &errWriter{w: c.w}
	head, tail := Ends(cards, c.sample)
	for _, card := range head {
		ew.printf("%s\n", card)
	}
	if len(head)+len(tail) < len(cards) {
		ew.printf("...\n")
	}
	for _, card := range tail {
		ew.printf("%s\n", card)
	}
	return ew.err
}

// Ends returns the first n and the last n cards without overlap.
func Ends(cards []deck.Card, n int) (head, tail []deck.Card) {
	if n <= 0 {
		return nil, nil
	}
	// n may be huge, so never compute 2*n
	if n >= len(cards)-n {
		return cards, nil
	}
	return cards[:n], cards[len(cards)-n:]
}

// Timing formats a duration in milliseconds with microsecond precision.
func Timing(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d.Microseconds())/1000)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
