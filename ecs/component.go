package ecs

import (
	"math/bits"
	"unsafe"
)

// ComponentMask is a bitset of component types. A registered type owns
// exactly one bit; entity masks and query masks are ORs of type masks.
type ComponentMask uint64

// NoComponent is the empty mask, doubling as the "no such type" sentinel
// returned by RegisterType once the catalog is full.
const NoComponent ComponentMask = 0

// MaxComponentTypes is the catalog capacity, one type per ComponentMask bit.
const MaxComponentTypes = 64

// componentType is one immutable entry of the type catalog together with
// the store holding its records.
type componentType struct {
	mask        ComponentMask
	payloadSize int
	store       componentStore
}

// RegisterType reserves the next unused mask bit for a component type whose
// payload occupies payloadSize bytes, and returns that bit. It returns
// NoComponent once all MaxComponentTypes bits are taken. Types are never
// unregistered; the catalog is append-only for the life of the World.
//
// payloadSize is rounded up to a multiple of 8, so views of the type are
// always aligned for As regardless of the requested size.
func (w *World) RegisterType(payloadSize int) ComponentMask {
	w.mustBeRunning()
	if payloadSize < 0 {
		panic("ecs: negative component payload size")
	}
	if len(w.types) == MaxComponentTypes {
		return NoComponent
	}
	// Records are packed at payload-size strides; an unrounded stride
	// would leave records of odd-sized types misaligned for typed views.
	payloadSize = (payloadSize + 7) &^ 7
	mask := ComponentMask(1) << uint(len(w.types))
	w.types = append(w.types, componentType{
		mask:        mask,
		payloadSize: payloadSize,
		store:       componentStore{payloadSize: payloadSize},
	})
	return mask
}

// RegisterComponent registers a component type sized for T and returns its
// mask. Views of the type can then be reinterpreted with As[T].
func RegisterComponent[T any](w *World) ComponentMask {
	var zero T
	return w.RegisterType(int(unsafe.Sizeof(zero)))
}

// typeAt resolves a single-bit mask to its catalog entry. Multi-bit masks,
// the empty mask, and unregistered bits all resolve to nil, which callers
// treat as a silent no-op.
func (w *World) typeAt(c ComponentMask) *componentType {
	if c == 0 || c&(c-1) != 0 {
		return nil
	}
	idx := bits.TrailingZeros64(uint64(c))
	if idx >= len(w.types) {
		return nil
	}
	return &w.types[idx]
}

// AttachComponent attaches a zero-initialized component of the single type
// c to the entity, immediately. It reports whether the attach happened;
// false means the type or entity is unknown or the entity already has the
// component.
func (w *World) AttachComponent(e EntityId, c ComponentMask) bool {
	w.mustBeRunning()
	return w.attachComponentNow(e, c)
}

func (w *World) attachComponentNow(e EntityId, c ComponentMask) bool {
	ct := w.typeAt(c)
	if ct == nil {
		return false
	}
	slot, ok := w.entityIndex.Get(e)
	if !ok {
		return false
	}
	if w.entities[slot].mask&c != 0 {
		return false
	}
	ct.store.attach(e)
	w.entities[slot].mask |= c
	return true
}

// AttachComponents attaches one component of every registered type set in
// components, immediately.
func (w *World) AttachComponents(e EntityId, components ComponentMask) {
	w.mustBeRunning()
	w.attachComponentsNow(e, components)
}

func (w *World) attachComponentsNow(e EntityId, components ComponentMask) {
	for i := range w.types {
		if c := w.types[i].mask; components&c != 0 {
			w.attachComponentNow(e, c)
		}
	}
}

// DetachComponent detaches the component of the single type c from the
// entity, immediately. It reports whether the detach happened; false means
// the type or entity is unknown or the entity lacks the component.
func (w *World) DetachComponent(e EntityId, c ComponentMask) bool {
	w.mustBeRunning()
	return w.detachComponentNow(e, c)
}

func (w *World) detachComponentNow(e EntityId, c ComponentMask) bool {
	ct := w.typeAt(c)
	if ct == nil {
		return false
	}
	slot, ok := w.entityIndex.Get(e)
	if !ok {
		return false
	}
	if w.entities[slot].mask&c == 0 {
		return false
	}
	ct.store.detach(e)
	w.entities[slot].mask &^= c
	return true
}

// DetachComponents queues detachment of every type set in components from
// the entity. Bulk detachment is always deferred; it is applied at the next
// flush.
func (w *World) DetachComponents(e EntityId, components ComponentMask) {
	w.mustBeRunning()
	w.tasks.push(task{kind: taskDetachComponents, entity: e, mask: components})
}

func (w *World) detachComponentsNow(e EntityId, components ComponentMask) {
	for i := range w.types {
		if c := w.types[i].mask; components&c != 0 {
			w.detachComponentNow(e, c)
		}
	}
}

// GetComponent returns a view of the entity's payload for the single type
// c, or nil if the type or entity is unknown or the entity lacks the
// component. The view aliases the store's backing buffer: it stays valid
// only until the next attach or detach on the same type, and must not be
// retained across one.
func (w *World) GetComponent(e EntityId, c ComponentMask) []byte {
	w.mustBeRunning()
	ct := w.typeAt(c)
	if ct == nil {
		return nil
	}
	return ct.store.get(e)
}

// Component is typed sugar over GetComponent and As.
func Component[T any](w *World, e EntityId, c ComponentMask) *T {
	return As[T](w.GetComponent(e, c))
}

// As reinterprets a payload view as *T. It returns nil for a nil view and
// panics if the view is smaller than T. The pointer has the same lifetime
// as the view: the next attach or detach on the type invalidates it.
//
// Record strides are rounded to 8 bytes at registration, so the pointer is
// aligned for any Go type.
func As[T any](view []byte) *T {
	if view == nil {
		return nil
	}
	var zero T
	if uintptr(len(view)) < unsafe.Sizeof(zero) {
		panic("ecs: component view smaller than target type")
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(view)))
}
