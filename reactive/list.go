package reactive

import "github.com/depcell/depcell/cell"

// List is an instrumented sequence. Index reads track per-index cells,
// Len tracks the length cell, and whole-sequence reads track the synthetic
// iteration cell, so a mutation invalidates exactly the consumers whose
// read pattern it touches.
type List[T comparable] struct {
	rt    *cell.Runtime
	items []T
}

func NewList[T comparable](rt *cell.Runtime, items ...T) *List[T] {
	return &List[T]{rt: rt, items: items}
}

func (l *List[T]) CollectionKind() cell.TargetKind { return cell.KindSequence }

// At reads one index. Out-of-range indices read as absent: they still
// track, and fire when the list later grows over them or shrinks onto
// them.
func (l *List[T]) At(i int) (T, bool) {
	l.rt.Track(l, i)
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// Len reads the length cell.
func (l *List[T]) Len() int {
	l.rt.Track(l, cell.LengthKey)
	return len(l.items)
}

// Values reads the whole sequence.
func (l *List[T]) Values() []T {
	l.rt.Track(l, cell.SeqIterateKey)
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Range reads the whole sequence.
func (l *List[T]) Range(fn func(int, T) bool) {
	l.rt.Track(l, cell.SeqIterateKey)
	for i, v := range l.items {
		if !fn(i, v) {
			return
		}
	}
}

// Append adds values at the tail. Each new index is reported as an
// addition, which also fires the length and whole-sequence cells.
func (l *List[T]) Append(vs ...T) {
	for _, v := range vs {
		idx := len(l.items)
		l.items = append(l.items, v)
		l.rt.Trigger(l, cell.OpAdd, idx, v, nil)
	}
}

// Set writes index i; i == Len() appends. Writing an equal value is a
// no-op.
func (l *List[T]) Set(i int, v T) {
	if i < 0 || i > len(l.items) {
		panic("reactive: list index out of range")
	}
	if i == len(l.items) {
		l.Append(v)
		return
	}
	old := l.items[i]
	if old == v {
		return
	}
	l.items[i] = v
	l.rt.Trigger(l, cell.OpSet, i, v, old)
}

// SetLen truncates or zero-extends the list. Shrinking fires the cells of
// every index at or past the new length, on top of the length and
// whole-sequence cells.
func (l *List[T]) SetLen(n int) {
	if n < 0 {
		panic("reactive: negative list length")
	}
	old := len(l.items)
	if n == old {
		return
	}
	if n < old {
		l.items = l.items[:n]
	} else {
		l.items = append(l.items, make([]T, n-old)...)
	}
	l.rt.Trigger(l, cell.OpSet, cell.LengthKey, n, old)
}
