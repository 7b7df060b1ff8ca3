package cell_test

import (
	"testing"

	"github.com/depcell/depcell/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// watch subscribes an effect to one (target, key) slot and counts its runs
func watch(rt *cell.Runtime, target, key any) *int {
	runs := new(int)
	rt.Effect(func() error {
		rt.Track(target, key)
		*runs++
		return nil
	})
	return runs
}

// repeated reads by one subscriber in one pass produce exactly one link
func TestTrackDeduplicatesRepeatedReads(t *testing.T) {
	rt := cell.New(nil)
	target := &struct{ name string }{}

	rt.Effect(func() error {
		for i := 0; i < 5; i++ {
			rt.Track(target, "name")
		}
		return nil
	})

	c := rt.Lookup(target, "name")
	require.NotNil(t, c)
	assert.Len(t, c.Subscribers(), 1)
}

// tracking without an active subscriber creates nothing
func TestTrackWithoutSubscriberIsNoop(t *testing.T) {
	rt := cell.New(nil)
	target := &struct{}{}

	rt.Track(target, "name")
	assert.Nil(t, rt.Lookup(target, "name"))
}

// triggering a never-tracked target bumps the global version by exactly one
// and notifies nobody
func TestTriggerUntrackedTarget(t *testing.T) {
	rt := cell.New(nil)
	tracked := &struct{ n int }{}
	runs := watch(rt, tracked, "k")

	other := &struct{ n int }{}
	before := rt.GlobalVersion()
	rt.Trigger(other, cell.OpSet, "k", 1, 0)

	assert.Equal(t, before+1, rt.GlobalVersion())
	assert.Equal(t, 1, *runs)
}

// shrinking a sequence fires length, whole-sequence iteration and every
// index at or past the new length
func TestSequenceLengthShrink(t *testing.T) {
	rt := cell.New(nil)
	seq := &[]int{0, 1, 2, 3, 4}

	lengthRuns := watch(rt, seq, cell.LengthKey)
	iterRuns := watch(rt, seq, cell.SeqIterateKey)
	idxRuns := make([]*int, 5)
	for i := range idxRuns {
		idxRuns[i] = watch(rt, seq, i)
	}

	rt.Trigger(seq, cell.OpSet, cell.LengthKey, 3, 5)

	assert.Equal(t, 2, *lengthRuns)
	assert.Equal(t, 2, *iterRuns)
	assert.Equal(t, 1, *idxRuns[0])
	assert.Equal(t, 1, *idxRuns[1])
	assert.Equal(t, 1, *idxRuns[2])
	assert.Equal(t, 2, *idxRuns[3])
	assert.Equal(t, 2, *idxRuns[4])

	// a never-tracked index has no cell at all
	assert.Nil(t, rt.Lookup(seq, 10))
}

// shrinking to zero fires every tracked index
func TestSequenceLengthShrinkToZero(t *testing.T) {
	rt := cell.New(nil)
	seq := &[]int{0, 1, 2, 3, 4}

	lengthRuns := watch(rt, seq, cell.LengthKey)
	iterRuns := watch(rt, seq, cell.SeqIterateKey)
	idxRuns := make([]*int, 5)
	for i := range idxRuns {
		idxRuns[i] = watch(rt, seq, i)
	}

	rt.Trigger(seq, cell.OpSet, cell.LengthKey, 0, 5)

	assert.Equal(t, 2, *lengthRuns)
	assert.Equal(t, 2, *iterRuns)
	for i := range idxRuns {
		assert.Equal(t, 2, *idxRuns[i], "index %d", i)
	}
}

// adding an index to a sequence fires the index, the whole-sequence cell
// and length, but not the plain-object iteration cell
func TestSequenceAdd(t *testing.T) {
	rt := cell.New(nil)
	seq := &[]int{0, 1, 2}

	idxRuns := watch(rt, seq, 3)
	lengthRuns := watch(rt, seq, cell.LengthKey)
	seqIterRuns := watch(rt, seq, cell.SeqIterateKey)
	objIterRuns := watch(rt, seq, cell.IterateKey)

	rt.Trigger(seq, cell.OpAdd, 3, 42, nil)

	assert.Equal(t, 2, *idxRuns)
	assert.Equal(t, 2, *lengthRuns)
	assert.Equal(t, 2, *seqIterRuns)
	assert.Equal(t, 1, *objIterRuns)
}

// setting an existing sequence index leaves length alone
func TestSequenceSetExistingIndex(t *testing.T) {
	rt := cell.New(nil)
	seq := &[]int{0, 1, 2}

	idxRuns := watch(rt, seq, 1)
	otherIdxRuns := watch(rt, seq, 2)
	lengthRuns := watch(rt, seq, cell.LengthKey)
	seqIterRuns := watch(rt, seq, cell.SeqIterateKey)

	rt.Trigger(seq, cell.OpSet, 1, 9, 1)

	assert.Equal(t, 2, *idxRuns)
	assert.Equal(t, 1, *otherIdxRuns)
	assert.Equal(t, 1, *lengthRuns)
	assert.Equal(t, 2, *seqIterRuns)
}

// a clear fires every cell ever created for the target exactly once
func TestClearFiresEverything(t *testing.T) {
	rt := cell.New(nil)
	m := &map[string]int{}

	aRuns := watch(rt, m, "a")
	bRuns := watch(rt, m, "b")
	iterRuns := watch(rt, m, cell.IterateKey)
	keyIterRuns := watch(rt, m, cell.MapKeyIterateKey)

	rt.Trigger(m, cell.OpClear, nil, nil, nil)

	assert.Equal(t, 2, *aRuns)
	assert.Equal(t, 2, *bRuns)
	assert.Equal(t, 2, *iterRuns)
	assert.Equal(t, 2, *keyIterRuns)
}

// map additions and deletions fire both iteration cells, value replacement
// only the enumeration cell
func TestMapOpKeySets(t *testing.T) {
	rt := cell.New(nil)
	m := &map[string]int{}

	keyRuns := watch(rt, m, "a")
	iterRuns := watch(rt, m, cell.IterateKey)
	keyIterRuns := watch(rt, m, cell.MapKeyIterateKey)

	rt.Trigger(m, cell.OpAdd, "a", 1, nil)
	assert.Equal(t, 2, *keyRuns)
	assert.Equal(t, 2, *iterRuns)
	assert.Equal(t, 2, *keyIterRuns)

	rt.Trigger(m, cell.OpSet, "a", 2, 1)
	assert.Equal(t, 3, *keyRuns)
	assert.Equal(t, 3, *iterRuns)
	assert.Equal(t, 2, *keyIterRuns)

	rt.Trigger(m, cell.OpDelete, "a", nil, 2)
	assert.Equal(t, 4, *keyRuns)
	assert.Equal(t, 4, *iterRuns)
	assert.Equal(t, 3, *keyIterRuns)
}

// plain objects have no key-iteration cell in play
func TestPlainObjectAdd(t *testing.T) {
	rt := cell.New(nil)
	obj := &struct{ a, b int }{}

	keyRuns := watch(rt, obj, "a")
	iterRuns := watch(rt, obj, cell.IterateKey)
	keyIterRuns := watch(rt, obj, cell.MapKeyIterateKey)

	rt.Trigger(obj, cell.OpAdd, "b", 1, nil)

	assert.Equal(t, 1, *keyRuns)
	assert.Equal(t, 2, *iterRuns)
	assert.Equal(t, 1, *keyIterRuns)
}

// lookup has no side effects
func TestLookupCreatesNothing(t *testing.T) {
	rt := cell.New(nil)
	target := &struct{}{}

	assert.Nil(t, rt.Lookup(target, "k"))
	assert.Nil(t, rt.Lookup(target, "k"))
}

// cells prune their registry slot when the last subscriber detaches
func TestRegistryPruneOnLastUnsubscribe(t *testing.T) {
	rt := cell.New(nil)
	target := &struct{}{}

	e := rt.Effect(func() error {
		rt.Track(target, "k")
		return nil
	})
	require.NotNil(t, rt.Lookup(target, "k"))

	e.Stop()
	assert.Nil(t, rt.Lookup(target, "k"))
}

// a slot first read by a dormant computed still prunes once the last link
// to it is gone; activation and deactivation leave the link count alone
func TestRegistryPruneAfterDormantComputedRead(t *testing.T) {
	rt := cell.New(nil)
	target := &struct{ v int }{}

	useTarget := true
	c := cell.NewComputed(rt, func(oldValue int) int {
		if useTarget {
			rt.Track(target, "v")
			return target.v
		}
		return -1
	})

	// dormant read: the slot exists but has no subscriber
	c.Value()
	require.NotNil(t, rt.Lookup(target, "v"))
	assert.Empty(t, rt.Lookup(target, "v").Subscribers())

	// activating the computed surfaces its carried-over link
	e := rt.Effect(func() error {
		c.Value()
		return nil
	})
	assert.Len(t, rt.Lookup(target, "v").Subscribers(), 1)

	// deactivation soft-removes the link; the slot stays for re-activation
	e.Stop()
	require.NotNil(t, rt.Lookup(target, "v"))
	assert.Empty(t, rt.Lookup(target, "v").Subscribers())

	// the computed dropping the dependency removes the last link
	useTarget = false
	rt.Trigger(target, cell.OpSet, "v", 1, 0)
	assert.Equal(t, -1, c.Value())
	assert.Nil(t, rt.Lookup(target, "v"))
}

// repeated activation cycles leave the link count balanced, so the slot
// still prunes when the dependency is finally dropped
func TestRegistryPruneAfterReactivationCycles(t *testing.T) {
	rt := cell.New(nil)
	target := &struct{ v int }{v: 3}

	useTarget := true
	c := cell.NewComputed(rt, func(oldValue int) int {
		if useTarget {
			rt.Track(target, "v")
			return target.v
		}
		return -1
	})

	for i := 0; i < 3; i++ {
		e := rt.Effect(func() error {
			c.Value()
			return nil
		})
		assert.Len(t, rt.Lookup(target, "v").Subscribers(), 1)
		e.Stop()
	}

	useTarget = false
	rt.Trigger(target, cell.OpSet, "v", 4, 3)
	assert.Equal(t, -1, c.Value())
	assert.Nil(t, rt.Lookup(target, "v"))
}

// release drops every cell of a target
func TestRelease(t *testing.T) {
	rt := cell.New(nil)
	target := &struct{}{}
	runs := watch(rt, target, "k")

	rt.Release(target)
	rt.Trigger(target, cell.OpSet, "k", 1, 0)

	assert.Equal(t, 1, *runs)
	assert.Nil(t, rt.Lookup(target, "k"))
}

// a single mutation matching several categories still notifies a shared
// subscriber once
func TestMultiCategoryMutationCoalesces(t *testing.T) {
	rt := cell.New(nil)
	seq := &[]int{0}

	runs := new(int)
	rt.Effect(func() error {
		rt.Track(seq, 1)
		rt.Track(seq, cell.LengthKey)
		rt.Track(seq, cell.SeqIterateKey)
		*runs++
		return nil
	})

	// fires all three cells the effect tracks, in one wave
	rt.Trigger(seq, cell.OpAdd, 1, 42, nil)
	assert.Equal(t, 2, *runs)
}
