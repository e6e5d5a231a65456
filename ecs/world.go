// Package ecs implements a mask-indexed entity-component-system runtime.
// Component payloads live in dense per-type record arrays sorted by owner
// id, systems run in priority order once per tick, and structural changes
// requested during a tick are deferred to a task queue flushed between
// ticks.
package ecs

import (
	"sync/atomic"

	"github.com/kamstrup/intmap"
)

type worldState uint8

const (
	stateUninitialized worldState = iota
	stateRunning
	stateTerminated
)

// World owns every registry of the runtime: the component type catalog and
// its per-type stores, the live entity set, the active system list, and the
// deferred task queue. All operations go through an explicitly owned World;
// there is no package-level state.
type World struct {
	state worldState

	// Component type catalog, indexed by bit position. Types are only ever
	// appended, never removed or mutated.
	types []componentType

	// Dense, unordered entity list plus an id-to-slot index. Slot positions
	// carry no meaning and may change when entities are destroyed.
	entities    []entityData
	entityIndex *intmap.Map[EntityId, int]
	nextEntity  EntityId

	// Active systems, kept sorted by ascending priority. The list is only
	// mutated during a flush, never while a tick is running. Handles are
	// drawn atomically because workers of a parallel dispatch may call
	// EnableSystem concurrently.
	systems    []*systemEntry
	nextSystem atomic.Uint32

	tasks taskQueue
}

// NewWorld creates a running World with no types, entities, or systems.
func NewWorld() *World {
	return &World{
		state:       stateRunning,
		entityIndex: intmap.New[EntityId, int](256),
		nextEntity:  1,
	}
}

// Terminate releases all storage owned by the World. Any use of the World
// after Terminate panics, as does terminating twice.
func (w *World) Terminate() {
	w.mustBeRunning()
	w.state = stateTerminated
	w.types = nil
	w.entities = nil
	w.entityIndex = nil
	w.systems = nil
	w.tasks.drain()
}

// mustBeRunning asserts the World lifecycle contract. Calling any operation
// on a zero-value or terminated World is a programmer error, not a runtime
// condition, so it aborts.
func (w *World) mustBeRunning() {
	switch w.state {
	case stateRunning:
	case stateUninitialized:
		panic("ecs: use of uninitialized World, use NewWorld")
	case stateTerminated:
		panic("ecs: use of World after Terminate")
	}
}
