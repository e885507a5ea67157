package bucket

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/king54346/cardsort/deck"
	"github.com/king54346/cardsort/mergesort/fork_join"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCards(t testing.TB, n int) []deck.Card {
	t.Helper()
	cards, err := deck.NewGenerator(42).Generate(n)
	require.NoError(t, err)
	return cards
}

func makeSkewed(n int) []deck.Card {
	r := rand.New(rand.NewSource(3))
	cards := make([]deck.Card, n)
	for i := range cards {
		s := deck.Heart
		if r.Intn(10) == 0 {
			s = deck.Suits[r.Intn(len(deck.Suits))]
		}
		cards[i] = deck.Card{Suit: s, Rank: 1 + r.Intn(deck.BaseRanks)}
	}
	return cards
}

func runAll(t *testing.T, cards []deck.Card, order deck.Order) (seq, par, pooled []deck.Card) {
	t.Helper()
	var err error
	seq, err = Sequential(cards, order)
	require.NoError(t, err)
	par, err = Parallel(context.Background(), cards, order)
	require.NoError(t, err)

	pool := fork_join.NewForkJoinPool(4)
	defer pool.Close()
	pooled, err = ParallelPool(pool, cards, order)
	require.NoError(t, err)
	return seq, par, pooled
}

func TestScaleScenario(t *testing.T) {
	// A, B, C
	a, b, c := deck.Heart, deck.Club, deck.Spade
	order := deck.MustOrder(a, b, c)
	in := []deck.Card{{b, 5}, {a, 3}, {a, 1}, {c, 2}, {b, 1}}
	want := []deck.Card{{a, 1}, {a, 3}, {b, 1}, {b, 5}, {c, 2}}

	seq, par, pooled := runAll(t, in, order)
	assert.Equal(t, want, seq)
	assert.Equal(t, want, par)
	assert.Equal(t, want, pooled)
	// input is left untouched
	assert.Equal(t, []deck.Card{{b, 5}, {a, 3}, {a, 1}, {c, 2}, {b, 1}}, in)
}

func TestPartitionCoverage(t *testing.T) {
	cards := makeCards(t, 5000)
	buckets, err := Partition(cards, deck.DefaultOrder)
	require.NoError(t, err)
	require.Len(t, buckets, deck.DefaultOrder.Len())

	want := map[deck.Card]int{}
	for _, c := range cards {
		want[c]++
	}
	got := map[deck.Card]int{}
	total := 0
	for i, b := range buckets {
		for _, c := range b {
			assert.Equal(t, deck.DefaultOrder.At(i), c.Suit)
			got[c]++
		}
		total += len(b)
	}
	assert.Equal(t, len(cards), total)
	assert.Equal(t, want, got)
	assert.Empty(t, buckets[4], "no jokers are generated")
}

func TestPartitionKeepsInputOrder(t *testing.T) {
	in := []deck.Card{{deck.Club, 9}, {deck.Heart, 4}, {deck.Club, 2}, {deck.Heart, 8}, {deck.Club, 5}}
	buckets, err := Partition(in, deck.DefaultOrder)
	require.NoError(t, err)
	assert.Equal(t, []deck.Card{{deck.Heart, 4}, {deck.Heart, 8}}, buckets[0])
	assert.Equal(t, []deck.Card{{deck.Club, 9}, {deck.Club, 2}, {deck.Club, 5}}, buckets[1])
	assert.Empty(t, buckets[2])
}

func TestUnmappedSuit(t *testing.T) {
	order := deck.MustOrder(deck.Heart, deck.Club)
	in := []deck.Card{{deck.Heart, 1}, {deck.Diamond, 3}}

	var ue *UnmappedSuitError
	_, err := Partition(in, order)
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, 1, ue.Index)
	assert.Equal(t, deck.Card{Suit: deck.Diamond, Rank: 3}, ue.Card)

	_, err = Sequential(in, order)
	assert.ErrorAs(t, err, &ue)
	_, err = Parallel(context.Background(), in, order)
	assert.ErrorAs(t, err, &ue)
	_, err = ParallelPool(nil, in, order)
	assert.ErrorAs(t, err, &ue)
}

func TestEmptyInput(t *testing.T) {
	seq, par, pooled := runAll(t, nil, deck.DefaultOrder)
	assert.Empty(t, seq)
	assert.Empty(t, par)
	assert.Empty(t, pooled)
}

func TestSortedAndEquivalent(t *testing.T) {
	for _, cards := range [][]deck.Card{makeCards(t, 52*200+17), makeSkewed(20000)} {
		seq, par, pooled := runAll(t, cards, deck.DefaultOrder)

		require.Len(t, seq, len(cards))
		assert.True(t, sort.SliceIsSorted(seq, func(i, j int) bool {
			return deck.DefaultOrder.Less(seq[i], seq[j])
		}))
		assert.Equal(t, seq, par)
		assert.Equal(t, seq, pooled)
	}
}

func TestMatchesStableReference(t *testing.T) {
	cards := makeSkewed(3000)
	want := append([]deck.Card(nil), cards...)
	sort.SliceStable(want, func(i, j int) bool {
		return deck.DefaultOrder.Less(want[i], want[j])
	})

	seq, par, pooled := runAll(t, cards, deck.DefaultOrder)
	assert.Equal(t, want, seq)
	assert.Equal(t, want, par)
	assert.Equal(t, want, pooled)
}

func TestParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parallel(ctx, makeCards(t, 520), deck.DefaultOrder)
	assert.ErrorIs(t, err, context.Canceled)
}

func BenchmarkSequential(b *testing.B) {
	cards := makeCards(b, 1000000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Sequential(cards, deck.DefaultOrder)
	}
}

func BenchmarkParallel(b *testing.B) {
	cards := makeCards(b, 1000000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parallel(context.Background(), cards, deck.DefaultOrder)
	}
}

func BenchmarkParallelPool(b *testing.B) {
	pool := fork_join.NewForkJoinPool(4)
	defer pool.Close()
	cards := makeCards(b, 1000000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ParallelPool(pool, cards, deck.DefaultOrder)
	}
}
