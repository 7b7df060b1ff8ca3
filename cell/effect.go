package cell

// Effect is a subscriber that re-runs a function whenever one of the cells
// it read last time triggers. Re-runs happen when the outermost batch scope
// closes, either directly (run-if-dirty) or through a custom scheduler.
type Effect struct {
	subscriberNode
	rt        *Runtime
	fn        func() error
	scheduler func()
}

// Effect runs fn immediately under tracking and returns the running effect.
// Errors returned by fn go to the runtime's onError callback.
func (rt *Runtime) Effect(fn func() error) *Effect {
	e := &Effect{rt: rt, fn: fn}
	e.flags = fActive | fTracking
	e.Run()
	return e
}

// ScheduledEffect is Effect with a custom scheduler: instead of re-running
// directly on notification, the effect invokes scheduler, which decides
// when (and whether) to call RunIfDirty. The first run is still immediate.
func (rt *Runtime) ScheduledEffect(fn func() error, scheduler func()) *Effect {
	e := &Effect{rt: rt, fn: fn, scheduler: scheduler}
	e.flags = fActive | fTracking
	e.Run()
	return e
}

func (e *Effect) node() *subscriberNode { return &e.subscriberNode }

// Notify queues the effect for the current batch. Unless recursion is
// explicitly allowed, an effect triggered by its own run is skipped.
func (e *Effect) Notify() bool {
	if e.flags&fRunning != 0 && e.flags&fAllowRecurse == 0 {
		return false
	}
	if e.flags&fNotified == 0 {
		e.rt.queue(e, false)
	}
	return false
}

// SetAllowRecurse permits the effect to re-queue itself from its own run.
func (e *Effect) SetAllowRecurse(allow bool) {
	if allow {
		e.flags |= fAllowRecurse
	} else {
		e.flags &^= fAllowRecurse
	}
}

// Run evaluates the effect under tracking. Every link from the previous run
// is first marked stale; links not reconfirmed by the evaluation are
// detached afterwards.
func (e *Effect) Run() {
	rt := e.rt
	if e.flags&fActive == 0 {
		// Stopped effects still evaluate, they just no longer track.
		if err := e.fn(); err != nil && rt.onError != nil {
			rt.onError(e, err)
		}
		return
	}

	e.flags |= fRunning
	prepareDeps(e)
	prevSub := rt.activeSub
	prevShouldTrack := rt.shouldTrack
	rt.activeSub = e
	rt.shouldTrack = true

	defer func() {
		cleanupDeps(e)
		rt.activeSub = prevSub
		rt.shouldTrack = prevShouldTrack
		e.flags &^= fRunning
	}()

	if err := e.fn(); err != nil && rt.onError != nil {
		rt.onError(e, err)
	}
}

// schedule is the flush hand-off: either the custom scheduler decides what
// happens next, or the effect re-runs if anything really changed.
func (e *Effect) schedule() {
	if e.scheduler != nil {
		e.scheduler()
		return
	}
	e.RunIfDirty()
}

// RunIfDirty re-evaluates the effect only if one of its dependencies has
// actually changed since the last run. Custom schedulers call this.
func (e *Effect) RunIfDirty() {
	if isDirty(e) {
		e.Run()
	}
}

// Stop detaches the effect from every cell it observes. A stopped effect
// never re-runs on its own.
func (e *Effect) Stop() {
	if e.flags&fActive == 0 {
		return
	}
	for l := e.deps; l != nil; l = l.nextDep {
		removeSub(l)
	}
	e.deps = nil
	e.depsTail = nil
	e.flags &^= fActive | fTracking
}

// prepareDeps opens a tracking pass: every link from the previous run is
// marked stale, and each cell's activeLink is pointed at the pass's link
// with the previous value saved for restore. The save slot is what makes
// nested evaluation (a run triggered inside another run) come back to the
// outer subscriber's links intact.
func prepareDeps(sub Subscriber) {
	for l := sub.node().deps; l != nil; l = l.nextDep {
		l.version = staleVersion
		l.prevActiveLink = l.dep.activeLink
		l.dep.activeLink = l
	}
}

// cleanupDeps closes a tracking pass: links still stale were not read this
// time and are detached from both lists, and every cell's activeLink is
// restored.
func cleanupDeps(sub Subscriber) {
	n := sub.node()
	var head *Link
	tail := n.depsTail
	for l := tail; l != nil; {
		prev := l.prevDep
		if l.version == staleVersion {
			if l == tail {
				tail = prev
			}
			removeSub(l)
			removeDep(l)
		} else {
			head = l
		}
		l.dep.activeLink = l.prevActiveLink
		l.prevActiveLink = nil
		l = prev
	}
	n.deps = head
	n.depsTail = tail
}

func removeDep(l *Link) {
	if l.prevDep != nil {
		l.prevDep.nextDep = l.nextDep
	}
	if l.nextDep != nil {
		l.nextDep.prevDep = l.prevDep
	}
	l.prevDep = nil
	l.nextDep = nil
}

// isDirty reports whether any dependency of sub changed since sub last
// read it, refreshing nested computeds along the way so their versions are
// current before the comparison.
func isDirty(sub Subscriber) bool {
	for l := sub.node().deps; l != nil; l = l.nextDep {
		if l.dep.version != l.version {
			return true
		}
		if d := l.dep.computed; d != nil {
			d.refresh()
			if l.dep.version != l.version {
				return true
			}
		}
	}
	return false
}
