package ecs_test

import (
	"testing"

	"github.com/plus3/bitecs/ecs"
)

func BenchmarkCreateEntity(b *testing.B) {
	w := newTestWorld()
	defer w.Terminate()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.CreateEntity(w.position | w.velocity)
	}
}

func BenchmarkGetComponent(b *testing.B) {
	w := newTestWorld()
	defer w.Terminate()

	var e ecs.EntityId
	for i := 0; i < 1024; i++ {
		e = w.CreateEntity(w.position | w.velocity)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.GetComponent(e, w.position)
	}
}

func BenchmarkAttachDetach(b *testing.B) {
	w := newTestWorld()
	defer w.Terminate()

	e := w.CreateEntity(ecs.NoComponent)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.AttachComponent(e, w.health)
		w.DetachComponent(e, w.health)
	}
}

func BenchmarkRunTickSequential(b *testing.B) {
	benchmarkRunTick(b, 1)
}

func BenchmarkRunTickParallel4(b *testing.B) {
	benchmarkRunTick(b, 4)
}

func benchmarkRunTick(b *testing.B, parallelism int) {
	w := newTestWorld()
	defer w.Terminate()

	for i := 0; i < 4096; i++ {
		w.CreateEntity(w.position | w.velocity)
	}

	w.EnableSystem(func(ids []ecs.EntityId, masks []ecs.ComponentMask, dt float64) {
		for _, e := range ids {
			pos := ecs.Component[Position](w.World, e, w.position)
			vel := ecs.Component[Velocity](w.World, e, w.velocity)
			pos.X += vel.DX * float32(dt)
			pos.Y += vel.DY * float32(dt)
		}
	}, w.position|w.velocity, ecs.MatchAll, parallelism, 0)
	w.Flush()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.RunTick(1.0 / 60.0)
	}
}
