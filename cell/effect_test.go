package cell_test

import (
	"errors"
	"testing"

	"github.com/depcell/depcell/cell"
	"github.com/depcell/depcell/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should clear subscriptions when stopped
func TestEffectClearSubsWhenStopped(t *testing.T) {
	bRunTimes := 0

	rt := cell.New(func(sub cell.Subscriber, err error) {
		assert.FailNow(t, err.Error())
	})
	a := reactive.NewRef(rt, 1)
	b := cell.NewComputed(rt, func(oldValue int) int {
		bRunTimes++
		return a.Value() * 2
	})
	e := rt.Effect(func() error {
		b.Value()
		return nil
	})

	assert.Equal(t, 1, bRunTimes)
	a.SetValue(2)
	assert.Equal(t, 2, bRunTimes)
	e.Stop()
	a.SetValue(3)
	assert.Equal(t, 2, bRunTimes)
}

// a dependency read only on some runs is dropped while unused and picked up
// again when used
func TestConditionalDependencySwitch(t *testing.T) {
	rt := cell.New(nil)
	cond := reactive.NewRef(rt, true)
	a := reactive.NewRef(rt, "a")
	b := reactive.NewRef(rt, "b")

	runs := 0
	rt.Effect(func() error {
		runs++
		if cond.Value() {
			a.Value()
		} else {
			b.Value()
		}
		return nil
	})
	require.Equal(t, 1, runs)

	b.SetValue("b2")
	assert.Equal(t, 1, runs)

	cond.SetValue(false)
	assert.Equal(t, 2, runs)
	assert.Empty(t, a.Cell().Subscribers())

	a.SetValue("a2")
	assert.Equal(t, 2, runs)

	b.SetValue("b3")
	assert.Equal(t, 3, runs)
}

// a scheduled effect defers its re-run to the scheduler
func TestScheduledEffect(t *testing.T) {
	rt := cell.New(nil)
	a := reactive.NewRef(rt, 1)

	runs := 0
	pending := 0
	e := rt.ScheduledEffect(func() error {
		a.Value()
		runs++
		return nil
	}, func() {
		pending++
	})
	require.Equal(t, 1, runs)

	a.SetValue(2)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, pending)

	e.RunIfDirty()
	assert.Equal(t, 2, runs)

	// not dirty: nothing to do
	e.RunIfDirty()
	assert.Equal(t, 2, runs)
}

// reads inside an untracked section do not subscribe
func TestUntracked(t *testing.T) {
	rt := cell.New(nil)
	a := reactive.NewRef(rt, 1)
	b := reactive.NewRef(rt, 10)

	runs := 0
	sum := 0
	rt.Effect(func() error {
		runs++
		sum = a.Value() + cell.Untracked(rt, b.Value)
		return nil
	})
	require.Equal(t, 11, sum)

	b.SetValue(20)
	assert.Equal(t, 1, runs)

	a.SetValue(2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 22, sum)
}

// pause and resume nest
func TestPauseTrackingNests(t *testing.T) {
	rt := cell.New(nil)
	a := reactive.NewRef(rt, 1)

	runs := 0
	rt.Effect(func() error {
		runs++
		rt.PauseTracking()
		rt.PauseTracking()
		rt.ResumeTracking()
		a.Value()
		rt.ResumeTracking()
		return nil
	})

	a.SetValue(2)
	assert.Equal(t, 1, runs)
}

// effect errors reach the runtime error callback
func TestEffectErrorCallback(t *testing.T) {
	boom := errors.New("boom")
	var got error
	rt := cell.New(func(sub cell.Subscriber, err error) {
		got = err
	})
	a := reactive.NewRef(rt, 1)

	rt.Effect(func() error {
		if a.Value() > 1 {
			return boom
		}
		return nil
	})
	require.NoError(t, got)

	a.SetValue(2)
	assert.Equal(t, boom, got)
}

// an effect triggering its own dependency is not re-queued unless recursion
// is allowed
func TestEffectSelfTriggerNeedsAllowRecurse(t *testing.T) {
	rt := cell.New(nil)
	a := reactive.NewRef(rt, 0)

	runs := 0
	rt.Effect(func() error {
		runs++
		if v := a.Value(); v < 3 && runs > 1 {
			a.SetValue(v + 1)
		}
		return nil
	})
	require.Equal(t, 1, runs)

	a.SetValue(1)
	// the write inside the run targets the effect itself and is skipped
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, a.Value())
}

// a stopped effect still evaluates on demand, without tracking
func TestStoppedEffectRunsUntracked(t *testing.T) {
	rt := cell.New(nil)
	a := reactive.NewRef(rt, 1)

	runs := 0
	e := rt.Effect(func() error {
		a.Value()
		runs++
		return nil
	})
	e.Stop()

	e.Run()
	assert.Equal(t, 2, runs)

	a.SetValue(5)
	assert.Equal(t, 2, runs)
	assert.Empty(t, a.Cell().Subscribers())
}
