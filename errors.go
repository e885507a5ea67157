package cardsort

import (
	"errors"
	"fmt"

	"github.com/king54346/cardsort/deck"
)

var (
	// ErrClosed is returned by an Engine after Close.
	ErrClosed = errors.New("cardsort: engine closed")
)

// ErrOutputMismatch indicates that the parallel pipeline produced a
// different sequence than the sequential one.
type ErrOutputMismatch struct {
	Index      int // first differing position, or the shorter length
	Sequential deck.Card
	Parallel   deck.Card
	SeqLen     int
	ParLen     int
}

func (e *ErrOutputMismatch) Error() string {
	if e.SeqLen != e.ParLen {
		return fmt.Sprintf("output mismatch: sequential has %d cards, parallel has %d", e.SeqLen, e.ParLen)
	}
	return fmt.Sprintf("output mismatch at %d: sequential %s, parallel %s", e.Index, e.Sequential, e.Parallel)
}

// checkEqual returns an *ErrOutputMismatch describing the first difference
// between seq and par.
func checkEqual(seq, par []deck.Card) error {
	n := min(len(seq), len(par))
	for i := 0; i < n; i++ {
		if seq[i] != par[i] {
			return &ErrOutputMismatch{Index: i, Sequential: seq[i], Parallel: par[i], SeqLen: len(seq), ParLen: len(par)}
		}
	}
	if len(seq) != len(par) {
		return &ErrOutputMismatch{Index: n, SeqLen: len(seq), ParLen: len(par)}
	}
	return nil
}
