// Package bucket sorts cards by suit and rank: cards are bucketed by suit,
// each bucket is merge sorted by rank, and the buckets are concatenated in
// suit order.
//
// Buckets are disjoint, so the parallel variants need no locking; the only
// synchronization is the join before concatenation.
package bucket

import (
	"context"
	"fmt"

	"github.com/king54346/cardsort/deck"
	"github.com/king54346/cardsort/mergesort"
	"github.com/king54346/cardsort/mergesort/fork_join"
	"golang.org/x/sync/errgroup"
)

// UnmappedSuitError is returned when a card's suit is not part of the order
// used for bucketing.
type UnmappedSuitError struct {
	Card  deck.Card
	Index int // position of the card in the input
}

func (e *UnmappedSuitError) Error() string {
	return fmt.Sprintf("bucket: card %d (%s) has a suit outside the order", e.Index, e.Card)
}

// Partition splits cards into order.Len() buckets, one per suit, keeping
// input order within a bucket.
func Partition(cards []deck.Card, order deck.Order) ([][]deck.Card, error) {
	buckets := make([][]deck.Card, order.Len())
	if len(cards) == 0 {
		return buckets, nil
	}

	// counting pass, so every bucket is allocated once
	counts := make([]int, order.Len())
	for i, c := range cards {
		idx, ok := order.Index(c.Suit)
		if !ok {
			return nil, &UnmappedSuitError{Card: c, Index: i}
		}
		counts[idx]++
	}
	for i, n := range counts {
		if n > 0 {
			buckets[i] = make([]deck.Card, 0, n)
		}
	}
	for _, c := range cards {
		idx, _ := order.Index(c.Suit)
		buckets[idx] = append(buckets[idx], c)
	}
	return buckets, nil
}

// Concat joins buckets in order. n is a capacity hint.
func Concat(buckets [][]deck.Card, n int) []deck.Card {
	out := make([]deck.Card, 0, n)
	for _, b := range buckets {
		out = append(out, b...)
	}
	return out
}

// Sequential buckets cards and sorts the buckets one after another.
func Sequential(cards []deck.Card, order deck.Order) ([]deck.Card, error) {
	buckets, err := Partition(cards, order)
	if err != nil {
		return nil, err
	}
	for _, b := range buckets {
		mergesort.SortFunc(b)
	}
	return Concat(buckets, len(cards)), nil
}

// Parallel buckets cards and sorts every non-empty bucket on its own
// goroutine. Concatenation starts only after all sorts returned.
func Parallel(ctx context.Context, cards []deck.Card, order deck.Order) ([]deck.Card, error) {
	buckets, err := Partition(cards, order)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		b := b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mergesort.SortFunc(b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Concat(buckets, len(cards)), nil
}

// sortTask sorts one bucket on a fork-join pool.
type sortTask struct {
	fork_join.ForkJoinTask
	bucket []deck.Card
}

func (s *sortTask) Compute() interface{} {
	mergesort.SortFunc(s.bucket)
	return s.bucket
}

// ParallelPool is like Parallel but forks one task per non-empty bucket on
// pool and joins them in suit order.
func ParallelPool(pool *fork_join.ForkJoinPool, cards []deck.Card, order deck.Order) ([]deck.Card, error) {
	buckets, err := Partition(cards, order)
	if err != nil {
		return nil, err
	}

	tasks := make([]*sortTask, 0, len(buckets))
	for _, b := range buckets {
		if len(b) == 0 {
			continue
		}
		t := &sortTask{bucket: b}
		t.Build(pool).Run(t)
		tasks = append(tasks, t)
	}
	var joinErr error
	for _, t := range tasks {
		if ok, _ := t.Join(); !ok && joinErr == nil {
			joinErr = t.Err()
		}
	}
	if joinErr != nil {
		return nil, fmt.Errorf("bucket: sort task failed: %w", joinErr)
	}
	return Concat(buckets, len(cards)), nil
}
