package cell

import (
	"reflect"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// OpKind classifies a mutation reported through Runtime.Trigger.
type OpKind uint8

const (
	opNone OpKind = iota
	OpAdd
	OpSet
	OpDelete
	OpClear
)

func (op OpKind) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSet:
		return "set"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	}
	return "none"
}

// TargetKind tells the trigger resolver which read patterns a target
// supports: plain objects have per-key cells and one iteration cell,
// sequences add length and whole-sequence cells, maps add a key-iteration
// cell.
type TargetKind uint8

const (
	KindPlain TargetKind = iota
	KindSequence
	KindMap
)

// Collection lets a target declare its kind explicitly instead of being
// classified by reflection. Instrumented container types implement it.
type Collection interface {
	CollectionKind() TargetKind
}

// LengthKey is the property key of a sequence-like target's length cell.
const LengthKey = "length"

// syntheticKey is the type of the artificial keys that track whole-shape
// read patterns. The distinct type keeps them from ever colliding with a
// caller's own integer keys.
type syntheticKey uint64

func newSyntheticKey(name string) syntheticKey {
	return syntheticKey(xxhash.Sum64String(name))
}

var (
	// IterateKey guards whole-collection enumeration of non-sequence
	// targets.
	IterateKey = newSyntheticKey("ITERATE_KEY")
	// MapKeyIterateKey guards key-set enumeration of map-like targets.
	MapKeyIterateKey = newSyntheticKey("MAP_KEY_ITERATE_KEY")
	// SeqIterateKey guards whole-sequence iteration of sequence-like
	// targets.
	SeqIterateKey = newSyntheticKey("SEQ_ITERATE_KEY")
)

type targetEntry struct {
	rt     *Runtime
	target any
	kind   TargetKind
	cells  map[any]*Cell
}

func (e *targetEntry) remove(key any) {
	delete(e.cells, key)
	if len(e.cells) == 0 {
		delete(e.rt.targets, e.target)
	}
}

func classify(target any) TargetKind {
	if c, ok := target.(Collection); ok {
		return c.CollectionKind()
	}
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return KindPlain
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Map:
		return KindMap
	}
	return KindPlain
}

// integerKey reports whether key denotes a sequence index. Synthetic keys
// never match: the type switch deliberately excludes named numeric types.
func integerKey(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int32:
		return int(k), true
	case int64:
		return int(k), true
	case uint:
		return int(k), true
	case uint32:
		return int(k), true
	case uint64:
		return int(k), true
	case string:
		n, err := strconv.Atoi(k)
		if err != nil || n < 0 || strconv.Itoa(n) != k {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Track records a read of target's key slot by the current subscriber,
// lazily creating the registry entry and the cell. Targets must be
// comparable; instrumentation layers normally pass a pointer.
func (rt *Runtime) Track(target, key any) *Link {
	if rt.activeSub == nil || !rt.shouldTrack {
		return nil
	}
	e := rt.targets[target]
	if e == nil {
		e = &targetEntry{
			rt:     rt,
			target: target,
			kind:   classify(target),
			cells:  map[any]*Cell{},
		}
		rt.targets[target] = e
	}
	c := e.cells[key]
	if c == nil {
		c = &Cell{rt: rt, entry: e, key: key}
		e.cells[key] = c
	}
	return c.Track()
}

// Lookup returns the cell for (target, key) without creating it. Inspection
// only, no side effects.
func (rt *Runtime) Lookup(target, key any) *Cell {
	e := rt.targets[target]
	if e == nil {
		return nil
	}
	return e.cells[key]
}

// Release drops every cell registered for target. Go has no weak maps to
// collect entries for unreachable targets automatically, so long-lived
// runtimes should release targets at their destruction point. Cells also
// prune their own slot when their last subscriber detaches, which bounds
// leakage for everything that was actually observed.
func (rt *Runtime) Release(target any) {
	delete(rt.targets, target)
}
