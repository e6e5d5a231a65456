package ecs

import (
	"context"
	"reflect"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// SystemFunc is the callback invoked for a system each tick. ids and masks
// are parallel slices over the entities matched by the system's query, in
// entity-list order; Unconditional systems receive nil slices. When a
// system dispatches across multiple workers, each worker gets a disjoint
// contiguous sub-slice and the shared dt.
//
// The slices are views over the tick's snapshot. Callbacks may read and
// write payloads of entities they were handed and may queue deferred tasks,
// but must not structurally mutate a store that another worker of the same
// dispatch could be touching.
type SystemFunc func(ids []EntityId, masks []ComponentMask, dt float64)

// SystemId is the opaque handle returned by EnableSystem and accepted by
// DisableSystem.
type SystemId uint32

// NoSystem is the zero SystemId; EnableSystem returns it for a nil callback.
const NoSystem SystemId = 0

// systemEntry is one active (or pending) system registration plus its
// execution stats.
type systemEntry struct {
	id          SystemId
	name        string
	fn          SystemFunc
	query       Query
	parallelism int
	priority    int

	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemEntry) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

// EnableSystem queues registration of fn as a system and returns its
// handle. The registration is deferred: the system joins the active list at
// the next flush, so the list never changes mid-tick. Systems run in
// ascending priority order; equal priorities keep registration order. A
// parallelism above 1 fans the matched entity set out across that many
// workers per tick.
func (w *World) EnableSystem(fn SystemFunc, mask ComponentMask, comparison Comparison, parallelism, priority int) SystemId {
	w.mustBeRunning()
	if fn == nil {
		return NoSystem
	}
	// Atomic draw: workers of a parallel dispatch may enable systems
	// concurrently. The first handle is 1, so NoSystem is never issued.
	id := SystemId(w.nextSystem.Add(1))
	w.tasks.push(task{kind: taskEnableSystem, system: &systemEntry{
		id:          id,
		name:        systemName(fn),
		fn:          fn,
		query:       Query{Mask: mask, Comparison: comparison},
		parallelism: parallelism,
		priority:    priority,
		minDuration: time.Duration(1<<63 - 1),
	}})
	return id
}

// DisableSystem queues removal of the system with the given handle. Unknown
// handles are a no-op at flush time.
func (w *World) DisableSystem(handle SystemId) {
	w.mustBeRunning()
	w.tasks.push(task{kind: taskDisableSystem, handle: handle})
}

func (w *World) enableSystemNow(s *systemEntry) {
	w.systems = append(w.systems, s)
	// Stable sort keeps registration order among equal priorities.
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].priority < w.systems[j].priority
	})
}

func (w *World) disableSystemNow(handle SystemId) {
	for i, s := range w.systems {
		if s.id == handle {
			// Ordered delete: the list stays priority-sorted.
			w.systems = slices.Delete(w.systems, i, i+1)
			return
		}
	}
}

// RunTick drives one simulation tick: every active system in priority
// order, each joined before the next starts, then a flush of the deferred
// task queue. Tasks queued by any system during the tick are invisible to
// every system in the same tick and take effect starting with the next one.
func (w *World) RunTick(dt float64) {
	w.mustBeRunning()
	for _, sys := range w.systems {
		start := time.Now()
		if sys.query.Comparison == Unconditional {
			sys.fn(nil, nil, dt)
		} else {
			ids, masks := w.matchEntities(sys.query)
			w.dispatch(sys, ids, masks, dt)
		}
		sys.record(time.Since(start))
	}
	w.Flush()
}

// matchEntities filters the current entity list through the query into
// parallel id and mask slices, preserving entity-list order. The slices are
// a snapshot: later structural changes do not move under a running system.
func (w *World) matchEntities(q Query) ([]EntityId, []ComponentMask) {
	ids := make([]EntityId, 0, len(w.entities))
	masks := make([]ComponentMask, 0, len(w.entities))
	for i := range w.entities {
		if q.Matches(w.entities[i].mask) {
			ids = append(ids, w.entities[i].id)
			masks = append(masks, w.entities[i].mask)
		}
	}
	return ids, masks
}

// dispatch invokes the system over the matched set, fanning out across
// min(parallelism, matched) workers. The slices are contiguous,
// non-overlapping, and cover the set exactly once, with the division
// remainder riding in the last slice. Workers are joined before dispatch
// returns.
func (w *World) dispatch(sys *systemEntry, ids []EntityId, masks []ComponentMask, dt float64) {
	workers := sys.parallelism
	if workers > len(ids) {
		workers = len(ids)
	}
	if workers <= 1 {
		sys.fn(ids, masks, dt)
		return
	}

	size := len(ids) / workers
	var wg sync.WaitGroup
	for k := 0; k < workers; k++ {
		lo := k * size
		hi := lo + size
		if k == workers-1 {
			hi = len(ids)
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			sys.fn(ids[lo:hi], masks[lo:hi], dt)
		}(lo, hi)
	}
	wg.Wait()
}

// Run drives RunTick repeatedly at the given interval until the context is
// cancelled, computing dt from wall-clock deltas.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			w.RunTick(dt)
		}
	}
}

// systemName derives a human-readable name from the callback for stats
// reporting, trimmed of its package path.
func systemName(fn SystemFunc) string {
	name := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
