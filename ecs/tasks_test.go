package ecs_test

import (
	"testing"

	"github.com/plus3/bitecs/ecs"
	"github.com/stretchr/testify/assert"
)

func countingSystem(calls *int) ecs.SystemFunc {
	return func(ids []ecs.EntityId, masks []ecs.ComponentMask, dt float64) {
		*calls++
	}
}

func TestFlushAppliesTasksInSubmissionOrder(t *testing.T) {
	w := newTestWorld()
	defer w.Terminate()

	// Enable followed by disable of the same handle, in one queue. FIFO
	// application leaves the system disabled; any reordering would leave
	// it active.
	var calls int
	h := w.EnableSystem(countingSystem(&calls), w.position, ecs.MatchAll, 1, 0)
	assert.NotEqual(t, ecs.NoSystem, h)
	w.DisableSystem(h)

	w.Flush()
	w.RunTick(0.1)

	assert.Zero(t, calls)
	assert.Zero(t, w.Stats().SystemCount)
}

func TestFlushAppliesMixedKindsInOrder(t *testing.T) {
	w := newTestWorld()
	defer w.Terminate()

	e := w.CreateEntity(w.position | w.velocity)

	w.DetachComponents(e, w.velocity)
	w.DestroyEntity(e)
	w.Flush()

	assert.Equal(t, 0, w.EntityCount())
	assert.Nil(t, w.GetComponent(e, w.position))
	assert.Nil(t, w.GetComponent(e, w.velocity))
}

func TestManualFlushAppliesPendingRegistrations(t *testing.T) {
	w := newTestWorld()
	defer w.Terminate()

	var calls int
	w.EnableSystem(countingSystem(&calls), w.position, ecs.MatchAll, 1, 0)

	// Registration is deferred; without a flush the first tick would not
	// see the system.
	assert.Zero(t, w.Stats().SystemCount)

	w.Flush()
	assert.Equal(t, 1, w.Stats().SystemCount)

	w.RunTick(0.1)
	assert.Equal(t, 1, calls)
}

func TestDisableUnknownHandleIsNoOp(t *testing.T) {
	w := newTestWorld()
	defer w.Terminate()

	var calls int
	w.EnableSystem(countingSystem(&calls), w.position, ecs.MatchAll, 1, 0)
	w.DisableSystem(ecs.SystemId(999))
	w.Flush()

	assert.Equal(t, 1, w.Stats().SystemCount)
}

func TestTasksSubmittedDuringTickApplyAfterIt(t *testing.T) {
	w := newTestWorld()
	defer w.Terminate()

	e := w.CreateEntity(w.position)

	var seenDuringTick int
	w.EnableSystem(func(ids []ecs.EntityId, masks []ecs.ComponentMask, dt float64) {
		seenDuringTick = len(ids)
		w.DestroyEntity(e)
	}, w.position, ecs.MatchAll, 1, 0)
	w.Flush()

	w.RunTick(0.1)

	// The destroy submitted mid-tick was flushed at the end of the tick.
	assert.Equal(t, 1, seenDuringTick)
	assert.Equal(t, 0, w.EntityCount())
	assert.Nil(t, w.GetComponent(e, w.position))
}
