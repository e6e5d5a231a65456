package ecs

import "sync"

// taskKind tags the closed set of deferred structural operations.
type taskKind uint8

const (
	taskDestroyEntity taskKind = iota
	taskDetachComponents
	taskEnableSystem
	taskDisableSystem
)

// task is one deferred structural mutation. Which fields are meaningful
// depends on kind; apply switches on it exhaustively.
type task struct {
	kind   taskKind
	entity EntityId
	mask   ComponentMask
	system *systemEntry
	handle SystemId
}

// taskQueue is an ordered log of deferred tasks. Submission order is the
// application order. Pushes are locked because workers of a parallel
// dispatch may submit while a tick is running; the flush itself always
// happens on the driving goroutine after every worker has joined.
type taskQueue struct {
	mu  sync.Mutex
	log []task
}

func (q *taskQueue) push(t task) {
	q.mu.Lock()
	q.log = append(q.log, t)
	q.mu.Unlock()
}

// drain takes ownership of the pending log and clears the queue.
func (q *taskQueue) drain() []task {
	q.mu.Lock()
	log := q.log
	q.log = nil
	q.mu.Unlock()
	return log
}

// Flush applies every pending deferred task in submission order and clears
// the queue. RunTick flushes automatically after all systems have joined;
// calling Flush directly applies pending system registrations and other
// tasks deterministically before the first tick.
func (w *World) Flush() {
	w.mustBeRunning()
	for _, t := range w.tasks.drain() {
		w.apply(t)
	}
}

func (w *World) apply(t task) {
	switch t.kind {
	case taskDestroyEntity:
		w.destroyEntityNow(t.entity)
	case taskDetachComponents:
		w.detachComponentsNow(t.entity, t.mask)
	case taskEnableSystem:
		w.enableSystemNow(t.system)
	case taskDisableSystem:
		w.disableSystemNow(t.handle)
	}
}
