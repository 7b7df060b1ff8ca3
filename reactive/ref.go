// Package reactive provides typed building blocks over the cell engine:
// single-value refs, instrumented containers that report their reads and
// writes to the registry, and generated N-ary combinators.
package reactive

import "github.com/depcell/depcell/cell"

// Readable is any reactive source of T. Ref and cell.Computed implement it.
type Readable[T any] interface {
	Value() T
}

// Ref is a single mutable reactive value backed by one cell.
type Ref[T comparable] struct {
	c     *cell.Cell
	value T
}

func NewRef[T comparable](rt *cell.Runtime, initialValue T) *Ref[T] {
	return &Ref[T]{c: cell.NewCell(rt), value: initialValue}
}

// Value reads the ref, linking it to the current subscriber.
func (r *Ref[T]) Value() T {
	r.c.Track()
	return r.value
}

// SetValue writes the ref and notifies subscribers. Writing an equal value
// is a no-op.
func (r *Ref[T]) SetValue(v T) {
	if r.value == v {
		return
	}
	r.value = v
	r.c.Trigger()
}

// Cell exposes the backing cell. Inspection only.
func (r *Ref[T]) Cell() *cell.Cell { return r.c }
