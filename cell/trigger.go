package cell

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Trigger reports a mutation on target and fires every cell whose read
// pattern the mutation can have invalidated. key, newValue and oldValue may
// be nil where the operation has no use for them (OpClear ignores all
// three; newValue matters for length mutations, otherwise values only feed
// the debug hooks).
//
// A mutation can match several categories at once (the exact key, the
// whole-sequence cell, the length cell, ...); the affected cells are
// collected into a set first so each fires exactly once, inside a single
// batch scope so the whole mutation yields one coalesced notification wave.
func (rt *Runtime) Trigger(target any, op OpKind, key, newValue, oldValue any) {
	e := rt.targets[target]
	if e == nil {
		// Never tracked, so nothing can be invalidated. The global version
		// still moves: caches keyed on it must notice the world changed.
		rt.globalVersion++
		return
	}

	toRun := mapset.NewThreadUnsafeSet[*Cell]()
	add := func(c *Cell, ok bool) {
		if ok {
			toRun.Add(c)
		}
	}

	isSeq := e.kind == KindSequence
	seqIndex, isSeqIndex := -1, false
	if isSeq {
		seqIndex, isSeqIndex = integerKey(key)
	}

	switch {
	case op == OpClear:
		// Collection-wide reset invalidates every read pattern ever seen.
		for _, c := range e.cells {
			toRun.Add(c)
		}

	case isSeq && key == LengthKey:
		newLen, okLen := integerKey(newValue)
		for k, c := range e.cells {
			if k == LengthKey || k == SeqIterateKey {
				toRun.Add(c)
				continue
			}
			// Slots at or past the new length now read as absent.
			if idx, ok := integerKey(k); ok && okLen && idx >= newLen {
				toRun.Add(c)
			}
		}

	default:
		if key != nil {
			c, ok := e.cells[key]
			add(c, ok)
		}
		if isSeqIndex && seqIndex >= 0 {
			// The sequence's shape changed even for indices nobody tracked
			// individually.
			c, ok := e.cells[SeqIterateKey]
			add(c, ok)
		}
		switch op {
		case OpAdd:
			if !isSeq {
				c, ok := e.cells[IterateKey]
				add(c, ok)
				if e.kind == KindMap {
					c, ok := e.cells[MapKeyIterateKey]
					add(c, ok)
				}
			} else if isSeqIndex && seqIndex >= 0 {
				// A new index implies a new length.
				c, ok := e.cells[LengthKey]
				add(c, ok)
			}
		case OpDelete:
			if !isSeq {
				c, ok := e.cells[IterateKey]
				add(c, ok)
				if e.kind == KindMap {
					c, ok := e.cells[MapKeyIterateKey]
					add(c, ok)
				}
			}
		case OpSet:
			// Replacing a value on an existing map key is still visible to
			// enumeration consumers that compare values.
			if e.kind == KindMap {
				c, ok := e.cells[IterateKey]
				add(c, ok)
			}
		}
	}

	var ev *DebugEvent
	if rt.onTrigger != nil {
		ev = &DebugEvent{Op: op, NewValue: newValue, OldValue: oldValue}
	}

	rt.StartBatch()
	toRun.Each(func(c *Cell) bool {
		c.trigger(ev)
		return false
	})
	rt.EndBatch()
}
