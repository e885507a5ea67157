package deck

import "fmt"

// Order is a fixed total order over a set of suits. It is built once and
// only read afterwards, so it is safe to share between goroutines.
type Order struct {
	suits []Suit
	index [numSuits]int8 // -1 when the suit is not part of the order
}

// DefaultOrder is Heart < Club < Spade < Diamond < Joker.
var DefaultOrder = MustOrder(Heart, Club, Spade, Diamond, Joker)

// NewOrder builds an Order from suits in ascending order.
func NewOrder(suits ...Suit) (Order, error) {
	o := Order{suits: make([]Suit, 0, len(suits))}
	for i := range o.index {
		o.index[i] = -1
	}
	for _, s := range suits {
		if int(s) >= numSuits {
			return Order{}, fmt.Errorf("%w: unknown suit %d", ErrInvalidOrder, s)
		}
		if o.index[s] >= 0 {
			return Order{}, fmt.Errorf("%w: duplicate suit %s", ErrInvalidOrder, s)
		}
		o.index[s] = int8(len(o.suits))
		o.suits = append(o.suits, s)
	}
	return o, nil
}

// MustOrder is like NewOrder but panics on error.
func MustOrder(suits ...Suit) Order {
	o, err := NewOrder(suits...)
	if err != nil {
		panic(err)
	}
	return o
}

// Len returns the number of suits in the order.
func (o Order) Len() int { return len(o.suits) }

// At returns the suit at position i.
func (o Order) At(i int) Suit { return o.suits[i] }

// Suits returns a copy of the ordered suits.
func (o Order) Suits() []Suit {
	return append([]Suit(nil), o.suits...)
}

// Index returns the position of s in the order. ok is false when s is not
// part of it.
func (o Order) Index(s Suit) (i int, ok bool) {
	if int(s) >= numSuits || o.index[s] < 0 || len(o.suits) == 0 {
		return 0, false
	}
	return int(o.index[s]), true
}

// Less reports whether a sorts before b under the order: by suit position,
// then by rank. Suits outside the order sort last.
func (o Order) Less(a, b Card) bool {
	ia, oka := o.Index(a.Suit)
	ib, okb := o.Index(b.Suit)
	switch {
	case oka != okb:
		return oka
	case ia != ib:
		return ia < ib
	}
	return a.Rank < b.Rank
}
