// Package deck models playing cards and the fixed suit ordering used to
// bucket them.
package deck

import (
	"errors"
	"fmt"
	"strconv"
)

// Suit is the category key of a card.
type Suit uint8

const (
	Heart Suit = iota
	Club
	Spade
	Diamond
	Joker

	numSuits = int(Joker) + 1
)

// BaseRanks is the number of ranks per suit in a base deck.
const BaseRanks = 13

// BaseDeckSize is the size of one base deck (four suits, thirteen ranks).
const BaseDeckSize = 4 * BaseRanks

var suitNames = [numSuits]string{"Heart", "Club", "Spade", "Diamond", "Joker"}

// Suits lists the suits a generated deck contains, in base deck order.
var Suits = [...]Suit{Heart, Club, Spade, Diamond}

func (s Suit) String() string {
	if int(s) < numSuits {
		return suitNames[s]
	}
	return "Suit(" + strconv.Itoa(int(s)) + ")"
}

// Card is an immutable (suit, rank) pair. Ranks start at 1 and repeat
// freely across a multi-deck.
type Card struct {
	Suit Suit
	Rank int
}

// CompareTo orders cards by rank only. Suits are separated by the
// partitioner before sorting.
func (c Card) CompareTo(o Card) int {
	switch {
	case c.Rank < o.Rank:
		return -1
	case c.Rank > o.Rank:
		return 1
	}
	return 0
}

func (c Card) String() string {
	return fmt.Sprintf("%s %d", c.Suit, c.Rank)
}

var (
	// ErrInvalidOrder is returned when an ordering repeats a suit or names
	// an unknown one.
	ErrInvalidOrder = errors.New("deck: invalid suit order")
	// ErrNegativeCount is returned when asked to generate a negative number
	// of cards.
	ErrNegativeCount = errors.New("deck: negative card count")
)
