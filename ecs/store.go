package ecs

import "slices"

// componentStore is the dense record array for one component type. Records
// are split across two parallel buffers: owners holds the owning entity
// ids, strictly ascending and unique, and data holds the payload bytes at
// the matching positions. The ascending-owner invariant is what makes
// lookup a binary search, so every mutation must preserve it.
type componentStore struct {
	payloadSize int
	owners      []EntityId
	data        []byte
}

// emptyView is the non-nil view handed out for zero-size payloads, so
// presence is still distinguishable from a nil miss.
var emptyView = make([]byte, 0)

func (s *componentStore) len() int {
	return len(s.owners)
}

// attach inserts a zero-initialized record for e at its sorted position.
// Reports false if e already owns a record.
func (s *componentStore) attach(e EntityId) bool {
	i, ok := slices.BinarySearch(s.owners, e)
	if ok {
		return false
	}
	s.owners = slices.Insert(s.owners, i, e)
	if s.payloadSize > 0 {
		s.data = slices.Insert(s.data, i*s.payloadSize, make([]byte, s.payloadSize)...)
	}
	return true
}

// detach removes e's record, shifting the trailing records down one slot.
// Swapping the last record into the hole would be cheaper but breaks the
// ascending-owner invariant the binary search depends on.
func (s *componentStore) detach(e EntityId) bool {
	i, ok := slices.BinarySearch(s.owners, e)
	if !ok {
		return false
	}
	s.owners = slices.Delete(s.owners, i, i+1)
	if s.payloadSize > 0 {
		s.data = slices.Delete(s.data, i*s.payloadSize, (i+1)*s.payloadSize)
	}
	return true
}

// get returns a view of e's payload, or nil if e owns no record. The view
// aliases the backing buffer and is invalidated by the next attach or
// detach on this store.
func (s *componentStore) get(e EntityId) []byte {
	i, ok := slices.BinarySearch(s.owners, e)
	if !ok {
		return nil
	}
	if s.payloadSize == 0 {
		return emptyView
	}
	lo, hi := i*s.payloadSize, (i+1)*s.payloadSize
	return s.data[lo:hi:hi]
}
