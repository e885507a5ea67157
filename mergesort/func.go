package mergesort

// Comparable is implemented by element types that order themselves.
// CompareTo returns a negative number, zero or a positive number when the
// receiver is less than, equal to or greater than o.
type Comparable[T any] interface {
	CompareTo(o T) int
}

// SortFunc sorts a by CompareTo. Elements comparing equal keep their
// relative order.
func SortFunc[T Comparable[T]](a []T) {
	SortRangeFunc(a, 0, len(a))
}

// SortRangeFunc sorts a[lo:hi] by CompareTo. It panics unless
// 0 <= lo <= hi <= len(a).
func SortRangeFunc[T Comparable[T]](a []T, lo, hi int) {
	if lo < 0 || lo > hi || hi > len(a) {
		panic("assert lo >= 0 && lo <= hi && hi <= len(a)")
	}
	if hi-lo < 2 {
		return
	}
	m := comparableMergeSort[T]{a: a, tmp: make([]T, (hi-lo+1)>>1)}
	m.sort(lo, hi)
}

type comparableMergeSort[T Comparable[T]] struct {
	a   []T
	tmp []T
}

func (m comparableMergeSort[T]) sort(lo, hi int) {
	if hi-lo < minMerge {
		binarySortFunc(m.a, lo, hi, lo+1)
		return
	}
	mid := lo + (hi-lo)>>1
	m.sort(lo, mid)
	m.sort(mid, hi)
	m.merge(lo, mid, hi)
}

func (m comparableMergeSort[T]) merge(lo, mid, hi int) {
	if m.a[mid-1].CompareTo(m.a[mid]) <= 0 {
		return
	}
	len1 := mid - lo
	tmp := m.tmp[:len1]
	copy(tmp, m.a[lo:mid])

	cursor1, cursor2, dest := 0, mid, lo
	for cursor1 < len1 && cursor2 < hi {
		if m.a[cursor2].CompareTo(tmp[cursor1]) < 0 {
			m.a[dest] = m.a[cursor2]
			cursor2++
		} else {
			m.a[dest] = tmp[cursor1]
			cursor1++
		}
		dest++
	}
	copy(m.a[dest:], tmp[cursor1:])
}

// binarySortFunc is binarySort ordered by CompareTo.
func binarySortFunc[T Comparable[T]](src []T, low, high, start int) {
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
			if src[mid].CompareTo(pivot) > 0 {
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

// IsSortedFunc reports whether a is in ascending CompareTo order.
func IsSortedFunc[T Comparable[T]](a []T) bool {
	for i := len(a) - 1; i > 0; i-- {
		if a[i].CompareTo(a[i-1]) < 0 {
			return false
		}
	}
	return true
}
