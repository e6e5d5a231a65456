package ecs

// Comparison selects how a query mask is compared against entity masks.
type Comparison uint8

const (
	// MatchAll matches entities whose mask contains every bit of the query
	// mask.
	MatchAll Comparison = iota
	// MatchAny matches entities whose mask shares at least one bit with the
	// query mask.
	MatchAny
	// Unconditional systems run exactly once per tick with no entity set.
	Unconditional
)

// Query pairs a component mask with a comparison mode. It decides which
// entities a system receives each tick.
type Query struct {
	Mask       ComponentMask
	Comparison Comparison
}

// Matches reports whether an entity with the given mask satisfies the
// query. Unconditional queries match everything; the scheduler handles
// their empty-entity-set contract separately.
func (q Query) Matches(mask ComponentMask) bool {
	switch q.Comparison {
	case MatchAll:
		return mask&q.Mask == q.Mask
	case MatchAny:
		return mask&q.Mask != 0
	case Unconditional:
		return true
	}
	return false
}
