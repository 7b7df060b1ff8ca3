package cell

// OnErrorFunc receives errors returned by effect functions. Evaluation of
// the remaining notified subscribers continues after the callback returns.
type OnErrorFunc func(sub Subscriber, err error)

// DebugEvent describes a single track or trigger observation delivered to
// the runtime's debug hooks.
type DebugEvent struct {
	Cell     *Cell
	Sub      Subscriber
	Target   any
	Key      any
	Op       OpKind
	NewValue any
	OldValue any
}

type DebugFunc func(DebugEvent)

// Runtime owns all process-wide state of the reactive graph: the
// current-subscriber context, the reentrant batch scope, the global version
// counter and the target registry. It is single-threaded by design; callers
// that need the graph from multiple goroutines must serialize access
// themselves.
type Runtime struct {
	activeSub Subscriber

	shouldTrack bool
	pauseStack  []bool

	batchDepth       int
	batchedSubs      Subscriber
	batchedComputeds Subscriber

	globalVersion uint64

	targets map[any]*targetEntry

	onError   OnErrorFunc
	onTrack   DebugFunc
	onTrigger DebugFunc
}

// New creates an empty runtime. onError may be nil, in which case effect
// errors are silently dropped.
func New(onError OnErrorFunc) *Runtime {
	return &Runtime{
		shouldTrack: true,
		targets:     map[any]*targetEntry{},
		onError:     onError,
	}
}

// SetDebugHooks installs inspection callbacks fired on every tracked read
// and every cell trigger. Either may be nil. Hooks are for tooling only and
// carry no ordering guarantee beyond: onTrigger observes a cell's
// subscribers oldest-first, while notification itself runs newest-first.
func (rt *Runtime) SetDebugHooks(onTrack, onTrigger DebugFunc) {
	rt.onTrack = onTrack
	rt.onTrigger = onTrigger
}

// GlobalVersion returns the process-wide mutation counter. It increments on
// every cell trigger and on any mutation to a never-tracked target, so a
// cached value whose snapshot still matches knows nothing anywhere changed.
func (rt *Runtime) GlobalVersion() uint64 { return rt.globalVersion }

// PauseTracking disables dependency collection until the matching
// ResumeTracking. Calls nest.
func (rt *Runtime) PauseTracking() {
	rt.pauseStack = append(rt.pauseStack, rt.shouldTrack)
	rt.shouldTrack = false
}

// ResumeTracking restores the tracking state saved by the matching
// PauseTracking.
func (rt *Runtime) ResumeTracking() {
	lastIdx := len(rt.pauseStack) - 1
	rt.shouldTrack = rt.pauseStack[lastIdx]
	rt.pauseStack = rt.pauseStack[:lastIdx]
}

// Untracked runs fn with dependency collection disabled and returns its
// result.
func Untracked[T any](rt *Runtime, fn func() T) T {
	rt.PauseTracking()
	defer rt.ResumeTracking()
	return fn()
}

// StartBatch opens a batch scope. While at least one scope is open,
// notified subscribers are queued instead of re-run.
func (rt *Runtime) StartBatch() {
	rt.batchDepth++
}

// EndBatch closes the innermost batch scope; closing the outermost one
// flushes every queued subscriber exactly once.
func (rt *Runtime) EndBatch() {
	rt.batchDepth--
	if rt.batchDepth > 0 {
		return
	}
	rt.flush()
}

// Batch runs cb inside a batch scope.
func (rt *Runtime) Batch(cb func()) {
	rt.StartBatch()
	defer rt.EndBatch()
	cb()
}

// queue marks sub notified and pushes it on the pending list for the
// current batch. Computeds are queued separately: they only need their
// Notified flag cleared at flush time, the value refresh stays lazy.
func (rt *Runtime) queue(sub Subscriber, isComputed bool) {
	n := sub.node()
	n.flags |= fNotified
	if isComputed {
		n.next = rt.batchedComputeds
		rt.batchedComputeds = sub
		return
	}
	n.next = rt.batchedSubs
	rt.batchedSubs = sub
}

func (rt *Runtime) flush() {
	if rt.batchedComputeds != nil {
		sub := rt.batchedComputeds
		rt.batchedComputeds = nil
		for sub != nil {
			n := sub.node()
			next := n.next
			n.next = nil
			n.flags &^= fNotified
			sub = next
		}
	}

	// Running a subscriber may trigger further cells; those land on a fresh
	// batchedSubs list and are drained by the outer loop.
	for rt.batchedSubs != nil {
		sub := rt.batchedSubs
		rt.batchedSubs = nil
		for sub != nil {
			n := sub.node()
			next := n.next
			n.next = nil
			n.flags &^= fNotified
			if n.flags&fActive != 0 {
				if e, ok := sub.(*Effect); ok {
					e.schedule()
				}
			}
			sub = next
		}
	}
}
