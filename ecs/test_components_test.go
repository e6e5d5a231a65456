package ecs_test

import "github.com/plus3/bitecs/ecs"

// Common test component layouts.
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current, Max int32
}

// Tag components carry no payload.
type Frozen struct{}

// testWorld bundles a World with the masks of the common test types.
type testWorld struct {
	*ecs.World
	position ecs.ComponentMask
	velocity ecs.ComponentMask
	health   ecs.ComponentMask
	frozen   ecs.ComponentMask
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		World:    w,
		position: ecs.RegisterComponent[Position](w),
		velocity: ecs.RegisterComponent[Velocity](w),
		health:   ecs.RegisterComponent[Health](w),
		frozen:   ecs.RegisterComponent[Frozen](w),
	}
}
