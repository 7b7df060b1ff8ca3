package cell

// Computed is a lazily cached derived value: a subscriber of the cells its
// getter reads, and the owner of an output cell other subscribers can
// observe. Its getter only re-runs when something observed it and an input
// actually changed; the output cell's version only moves when the produced
// value differs.
type Computed[T comparable] struct {
	subscriberNode
	rt     *Runtime
	out    *Cell
	value  T
	getter func(oldValue T) T

	// globalVersion snapshots the runtime counter at the last refresh; a
	// matching snapshot means nothing anywhere mutated, so the cached value
	// is good without touching individual dependencies.
	globalVersion uint64
}

// NewComputed creates a derived cell. The getter receives the previously
// cached value (the zero value on first run). Nothing runs until the value
// is first read.
func NewComputed[T comparable](rt *Runtime, getter func(oldValue T) T) *Computed[T] {
	c := &Computed[T]{
		rt:            rt,
		getter:        getter,
		globalVersion: rt.globalVersion - 1,
	}
	c.flags = fDirty
	c.out = &Cell{rt: rt, computed: c}
	return c
}

func (c *Computed[T]) node() *subscriberNode { return &c.subscriberNode }

func (c *Computed[T]) ownerCell() *Cell { return c.out }

// Out returns the computed's output cell. Inspection only.
func (c *Computed[T]) Out() *Cell { return c.out }

// Notify marks the computed dirty. It returns true when the invalidation
// must cascade to the output cell's own subscribers.
func (c *Computed[T]) Notify() bool {
	c.flags |= fDirty
	if c.flags&fNotified == 0 && Subscriber(c) != c.rt.activeSub {
		c.rt.queue(c, true)
		return true
	}
	return false
}

// Value links the output cell to the current subscriber, refreshes the
// cached value if needed and returns it.
func (c *Computed[T]) Value() T {
	link := c.out.Track()
	c.refresh()
	if link != nil {
		link.version = c.out.version
	}
	return c.value
}

func (c *Computed[T]) refresh() {
	rt := c.rt

	if c.flags&fRunning != 0 {
		return
	}
	// An actively tracked computed that nobody invalidated is current by
	// construction.
	if c.flags&(fTracking|fDirty) == fTracking {
		return
	}
	c.flags &^= fDirty

	if c.globalVersion == rt.globalVersion {
		return
	}
	c.globalVersion = rt.globalVersion

	// A dormant computed (no subscribers, so no invalidation signal) has to
	// walk its inputs to find out whether anything it read last time moved.
	if c.out.version > 0 && c.deps != nil && !isDirty(c) {
		return
	}

	c.flags |= fRunning
	prevSub := rt.activeSub
	prevShouldTrack := rt.shouldTrack
	rt.activeSub = c
	rt.shouldTrack = true
	prepareDeps(c)

	defer func() {
		cleanupDeps(c)
		rt.activeSub = prevSub
		rt.shouldTrack = prevShouldTrack
		c.flags &^= fRunning
	}()

	value := c.getter(c.value)
	if c.out.version == 0 || value != c.value {
		c.value = value
		c.out.version++
	}
}
