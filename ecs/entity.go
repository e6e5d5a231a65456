package ecs

// EntityId identifies a live entity. Ids are assigned monotonically for the
// lifetime of a World and never reused, so a stale id simply stops
// resolving once its entity is destroyed.
type EntityId uint64

// NoEntity is the reserved "no entity" sentinel. No live entity ever has
// this id.
const NoEntity EntityId = 0

// entityData is one slot of the dense entity list: the entity's id and the
// bitwise OR of its attached component type masks.
type entityData struct {
	id   EntityId
	mask ComponentMask
}

// CreateEntity allocates a new entity and immediately attaches one
// component of every type set in components. Unlike destruction, creation
// is not deferred: the entity is visible to queries in the same tick.
func (w *World) CreateEntity(components ComponentMask) EntityId {
	w.mustBeRunning()
	id := w.nextEntity
	w.nextEntity++
	w.entities = append(w.entities, entityData{id: id})
	w.entityIndex.Put(id, len(w.entities)-1)
	w.attachComponentsNow(id, components)
	return id
}

// GetMask returns the component mask of the given entity, or NoComponent if
// the entity does not exist.
func (w *World) GetMask(e EntityId) ComponentMask {
	w.mustBeRunning()
	slot, ok := w.entityIndex.Get(e)
	if !ok {
		return NoComponent
	}
	return w.entities[slot].mask
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	w.mustBeRunning()
	return len(w.entities)
}

// DestroyEntity queues destruction of the entity. The entity and all of its
// components stay fully visible until the tick's task queue is flushed.
func (w *World) DestroyEntity(e EntityId) {
	w.mustBeRunning()
	w.tasks.push(task{kind: taskDestroyEntity, entity: e})
}

// destroyEntityNow detaches every component on the entity, then removes the
// entity slot. The entity list is unordered, so the last slot is swapped in
// rather than shifting the whole tail.
func (w *World) destroyEntityNow(e EntityId) {
	slot, ok := w.entityIndex.Get(e)
	if !ok {
		return
	}
	w.detachComponentsNow(e, w.entities[slot].mask)

	last := len(w.entities) - 1
	if slot != last {
		w.entities[slot] = w.entities[last]
		w.entityIndex.Put(w.entities[slot].id, slot)
	}
	w.entities = w.entities[:last]
	w.entityIndex.Del(e)
}
