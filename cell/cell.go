// Package cell is a fine-grained dependency-tracking and change-propagation
// core: cells record which subscribers read them, and a mutation notifies
// exactly the subscribers whose inputs changed. Effects and computeds are
// the built-in subscribers; the registry maps (target, key) slots to cells
// and resolves collection-shaped mutations to the set of affected cells.
package cell

// Cell is the tracked unit for one observable slot: it owns the list of
// links to its current subscribers and a version counter bumped on every
// trigger. Registry-managed cells additionally know their (target, key)
// slot; manually created cells (NewCell) stand alone.
type Cell struct {
	rt      *Runtime
	version int

	// activeLink caches the link created for the subscriber currently being
	// tracked against this cell, so repeated reads within one pass reuse it.
	activeLink *Link

	subs     *Link // tail, most recently linked
	subsHead *Link

	// computed is set when this cell is the output of a derived computation.
	computed derived

	// sc counts links referencing this cell, incremented at link creation
	// and decremented only when a link is structurally removed. Registry
	// cells prune their slot when it drops back to zero.
	sc    int
	entry *targetEntry
	key   any
}

// NewCell creates a standalone cell, not attached to any registry target.
func NewCell(rt *Runtime) *Cell {
	return &Cell{rt: rt}
}

// Version returns the cell's mutation counter.
func (c *Cell) Version() int { return c.version }

// Key returns the registry key this cell guards, or nil for standalone
// cells.
func (c *Cell) Key() any { return c.key }

// Target returns the registry target this cell belongs to, or nil.
func (c *Cell) Target() any {
	if c.entry == nil {
		return nil
	}
	return c.entry.target
}

// Subscribers returns the cell's current subscribers, oldest link first.
// Inspection only.
func (c *Cell) Subscribers() []Subscriber {
	var subs []Subscriber
	for l := c.subsHead; l != nil; l = l.nextSub {
		subs = append(subs, l.sub)
	}
	return subs
}

// Track records that the current subscriber reads the value guarded by this
// cell and returns the link for it. It is a no-op when there is no active
// subscriber, tracking is paused, or the cell's own computation is the one
// reading (a computed reading its own output must not self-subscribe).
func (c *Cell) Track() *Link {
	rt := c.rt
	sub := rt.activeSub
	if sub == nil || !rt.shouldTrack {
		return nil
	}
	if c.computed != nil && Subscriber(c.computed) == sub {
		return nil
	}

	link := c.activeLink
	if link == nil || link.sub != sub {
		link = &Link{dep: c, sub: sub, version: c.version}
		c.activeLink = link
		c.sc++

		n := sub.node()
		if n.deps == nil {
			n.deps = link
			n.depsTail = link
		} else {
			link.prevDep = n.depsTail
			n.depsTail.nextDep = link
			n.depsTail = link
		}
		c.addSub(link)
	} else if link.version == staleVersion {
		// Carried over from the previous pass: reconfirm and move to the
		// tail so the dependency list keeps most-recent-access order.
		link.version = c.version
		if link.nextDep != nil {
			n := sub.node()
			next := link.nextDep
			next.prevDep = link.prevDep
			if link.prevDep != nil {
				link.prevDep.nextDep = next
			}
			link.prevDep = n.depsTail
			link.nextDep = nil
			n.depsTail.nextDep = link
			n.depsTail = link
			if n.deps == link {
				n.deps = next
			}
		}
	}

	if rt.onTrack != nil {
		rt.onTrack(DebugEvent{Cell: c, Sub: sub, Target: c.Target(), Key: c.key})
	}
	return link
}

// Trigger bumps the cell's version and the runtime's global version, then
// notifies every current subscriber inside one batch scope.
func (c *Cell) Trigger() {
	c.trigger(nil)
}

func (c *Cell) trigger(ev *DebugEvent) {
	c.version++
	c.rt.globalVersion++
	c.notify(ev)
}

func (c *Cell) notify(ev *DebugEvent) {
	rt := c.rt
	rt.StartBatch()
	defer rt.EndBatch()

	// The hook walk is oldest-first, which reads better in inspection
	// tools; actual notification below is newest-first.
	if rt.onTrigger != nil {
		for l := c.subsHead; l != nil; l = l.nextSub {
			e := DebugEvent{Cell: c, Sub: l.sub, Target: c.Target(), Key: c.key}
			if ev != nil {
				e.Op = ev.Op
				e.NewValue = ev.NewValue
				e.OldValue = ev.OldValue
			}
			rt.onTrigger(e)
		}
	}

	for l := c.subs; l != nil; l = l.prevSub {
		if l.sub.Notify() {
			if d, ok := l.sub.(derived); ok {
				d.ownerCell().notify(ev)
			}
		}
	}
}

// addSub registers a freshly created link in its cell's subscriber list.
// When a computed-owned cell gains its first subscriber the computation is
// activated: marked tracking and dirty, and every one of its own dependency
// links is registered in turn. The walk is iterative over a worklist, so an
// arbitrarily long chain of dormant computeds activates without recursion.
// The walk never touches sc: links carried over from a dormant run already
// counted themselves at creation.
func (c *Cell) addSub(link *Link) {
	work := []*Link{link}
	for len(work) > 0 {
		l := work[len(work)-1]
		work = work[:len(work)-1]
		d := l.dep

		if l.sub.node().flags&fTracking == 0 {
			continue
		}

		if cp := d.computed; cp != nil && d.subs == nil {
			n := cp.node()
			n.flags |= fTracking | fDirty
			for dl := n.deps; dl != nil; dl = dl.nextDep {
				work = append(work, dl)
			}
		}

		if tail := d.subs; tail != l {
			l.prevSub = tail
			if tail != nil {
				tail.nextSub = l
			}
		}
		if d.subsHead == nil {
			d.subsHead = l
		}
		d.subs = l
	}
}

// removeSub detaches a link from its cell's subscriber list. Losing the
// last subscriber of a computed-owned cell deactivates the computation:
// tracking is cleared and its own subscriptions are soft-removed (kept in
// the dependency lists so a later re-activation can re-register them).
// Only structural removals decrement sc, pairing with the creation-time
// increment; soft removals leave the count alone.
func removeSub(link *Link) {
	type item struct {
		l    *Link
		soft bool
	}
	work := []item{{link, false}}
	for len(work) > 0 {
		it := work[len(work)-1]
		work = work[:len(work)-1]
		l := it.l
		dep, prevSub, nextSub := l.dep, l.prevSub, l.nextSub

		if prevSub != nil {
			prevSub.nextSub = nextSub
			l.prevSub = nil
		}
		if nextSub != nil {
			nextSub.prevSub = prevSub
			l.nextSub = nil
		}
		if dep.subsHead == l {
			dep.subsHead = nextSub
		}
		if dep.subs == l {
			dep.subs = prevSub
			if prevSub == nil && dep.computed != nil {
				n := dep.computed.node()
				n.flags &^= fTracking
				for dl := n.deps; dl != nil; dl = dl.nextDep {
					work = append(work, item{dl, true})
				}
			}
		}

		if !it.soft {
			dep.sc--
			if dep.sc == 0 && dep.entry != nil {
				dep.entry.remove(dep.key)
			}
		}
	}
}
