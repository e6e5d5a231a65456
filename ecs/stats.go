package ecs

import "time"

// WorldStats provides statistics about system execution.
type WorldStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single active system.
type SystemStats struct {
	Id             SystemId
	Name           string
	Priority       int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// Stats returns a snapshot of execution statistics for every active
// system, in execution order. Systems whose registration has not been
// flushed yet do not appear.
func (w *World) Stats() *WorldStats {
	w.mustBeRunning()

	stats := &WorldStats{
		SystemCount: len(w.systems),
		Systems:     make([]SystemStats, len(w.systems)),
	}

	var totalExecs int64
	for i, s := range w.systems {
		avgDuration := time.Duration(0)
		if s.executionCount > 0 {
			avgDuration = s.totalDuration / time.Duration(s.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Id:             s.id,
			Name:           s.name,
			Priority:       s.priority,
			ExecutionCount: s.executionCount,
			MinDuration:    s.minDuration,
			MaxDuration:    s.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   s.lastDuration,
			TotalDuration:  s.totalDuration,
		}
		totalExecs += s.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
