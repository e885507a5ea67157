// Package mergesort implements a stable top-down merge sort.
//
// Ranges are halved recursively and the sorted halves merged through one
// auxiliary buffer allocated per call. Runs shorter than minMerge are
// finished with a stable binary insertion sort.
package mergesort

import (
	"golang.org/x/exp/constraints"
)

// minMerge is the run length below which binary insertion sort is used.
const minMerge = 32

// Sort sorts a in ascending order. Equal elements keep their relative order.
func Sort[T constraints.Ordered](a []T) {
	SortRange(a, 0, len(a))
}

// SortRange sorts a[lo:hi]. It panics unless 0 <= lo <= hi <= len(a).
// Empty and single-element ranges are left untouched.
func SortRange[T constraints.Ordered](a []T, lo, hi int) {
	if lo < 0 || lo > hi || hi > len(a) {
		panic("assert lo >= 0 && lo <= hi && hi <= len(a)")
	}
	if hi-lo < 2 {
		return
	}
	m := orderedMergeSort[T]{a: a, tmp: make([]T, (hi-lo+1)>>1)}
	m.sort(lo, hi)
}

type orderedMergeSort[T constraints.Ordered] struct {
	a   []T
	tmp []T // holds the left half during a merge
}

func (m orderedMergeSort[T]) sort(lo, hi int) {
	if hi-lo < minMerge {
		binarySort(m.a, lo, hi, lo+1)
		return
	}
	mid := lo + (hi-lo)>>1
	m.sort(lo, mid)
	m.sort(mid, hi)
	m.merge(lo, mid, hi)
}

// merge combines the sorted runs a[lo:mid] and a[mid:hi].
func (m orderedMergeSort[T]) merge(lo, mid, hi int) {
	// already in order
	if m.a[mid-1] <= m.a[mid] {
		return
	}
	len1 := mid - lo
	tmp := m.tmp[:len1]
	copy(tmp, m.a[lo:mid])

	cursor1, cursor2, dest := 0, mid, lo
	for cursor1 < len1 && cursor2 < hi {
		// take from the right run only when strictly smaller
		if m.a[cursor2] < tmp[cursor1] {
			m.a[dest] = m.a[cursor2]
			cursor2++
		} else {
			m.a[dest] = tmp[cursor1]
			cursor1++
		}
		dest++
	}
	// whatever is left of the right run is already in place
	copy(m.a[dest:], tmp[cursor1:])
}

// binarySort finishes the leaves of the merge recursion: every range
// shorter than minMerge lands here instead of being halved further.
// src[low:start] must already be sorted. Each element is inserted after
// all equal elements before it (the search only stops on a strictly
// greater one), which keeps the sort stable. Comparisons are O(n log n)
// but moves are O(n^2), hence the small cutoff.
func binarySort[T constraints.Ordered](src []T, low, high, start int) {
	if low > start || start > high {
		panic("assert low <= start && start <= high")
	}
	if start == low {
		start++
	}
	for ; start < high; start++ {
		left := low
		right := start
		pivot := src[start]
		for left < right {
			mid := (left + right) >> 1
			// src[start] >= all in [low, left).
			// src[start] <  all in [right, start)
			if src[mid] > pivot {
				right = mid
			} else {
				left = mid + 1
			}
		}
		n := start - left
		switch n {
		case 2:
			src[left+1], src[left+2] = src[left], src[left+1]
		case 1:
			src[left+1] = src[left]
		default:
			copy(src[left+1:], src[left:left+n])
		}
		src[left] = pivot
	}
}

// IsSorted reports whether a is in ascending order.
func IsSorted[T constraints.Ordered](a []T) bool {
	for i := len(a) - 1; i > 0; i-- {
		if a[i] < a[i-1] {
			return false
		}
	}
	return true
}
