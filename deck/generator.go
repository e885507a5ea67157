package deck

import (
	"fmt"
	"math/rand"
	"sync"
)

// Generator produces shuffled multi-decks. It is safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewGenerator returns a Generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rand: rand.New(rand.NewSource(seed))}
}

// BaseDeck returns the 52 cards of one deck, suit by suit, ranks ascending.
func BaseDeck() []Card {
	cards := make([]Card, 0, BaseDeckSize)
	for _, s := range Suits {
		for r := 1; r <= BaseRanks; r++ {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return cards
}

// Generate returns count shuffled cards: count/52 full decks followed by the
// first count%52 cards of one more deck.
func (g *Generator) Generate(count int) ([]Card, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}

	base := BaseDeck()
	cards := make([]Card, 0, count)
	for len(cards)+BaseDeckSize <= count {
		cards = append(cards, base...)
	}
	cards = append(cards, base[:count-len(cards)]...)

	g.mu.Lock()
	g.rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	g.mu.Unlock()

	return cards, nil
}
