package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/plus3/bitecs/ecs"
)

// Scenario describes the synthetic world a stress run builds: the component
// type catalog, the initial entity population, and the systems driven each
// tick.
type Scenario struct {
	Entities int          `toml:"entities"`
	Types    []TypeSpec   `toml:"type"`
	Systems  []SystemSpec `toml:"system"`
}

// TypeSpec registers one component type.
type TypeSpec struct {
	Size int `toml:"size"` // payload size in bytes
}

// SystemSpec enables one system over the listed type indices.
type SystemSpec struct {
	Types       []int  `toml:"types"` // indices into the [[type]] list
	Comparison  string `toml:"comparison"`
	Parallelism int    `toml:"parallelism"`
	Priority    int    `toml:"priority"`
}

func (s *SystemSpec) comparison() (ecs.Comparison, error) {
	switch s.Comparison {
	case "all", "":
		return ecs.MatchAll, nil
	case "any":
		return ecs.MatchAny, nil
	case "none":
		return ecs.Unconditional, nil
	}
	return 0, fmt.Errorf("unknown comparison %q (want all, any, or none)", s.Comparison)
}

// loadScenario reads a TOML scenario file, or returns the built-in default
// scenario when path is empty.
func loadScenario(path string) (*Scenario, error) {
	if path == "" {
		return defaultScenario(), nil
	}

	var s Scenario
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Entities <= 0 {
		return fmt.Errorf("entities must be positive, got %d", s.Entities)
	}
	if len(s.Types) == 0 {
		return fmt.Errorf("at least one [[type]] is required")
	}
	if len(s.Types) > ecs.MaxComponentTypes {
		return fmt.Errorf("%d types exceed the %d-type catalog", len(s.Types), ecs.MaxComponentTypes)
	}
	for i, ts := range s.Types {
		if ts.Size < 0 {
			return fmt.Errorf("type %d has negative size %d", i, ts.Size)
		}
	}
	for i, sys := range s.Systems {
		if _, err := sys.comparison(); err != nil {
			return fmt.Errorf("system %d: %w", i, err)
		}
		for _, ti := range sys.Types {
			if ti < 0 || ti >= len(s.Types) {
				return fmt.Errorf("system %d references type %d, have %d types", i, ti, len(s.Types))
			}
		}
	}
	return nil
}

func defaultScenario() *Scenario {
	return &Scenario{
		Entities: 10000,
		Types: []TypeSpec{
			{Size: 16}, // position-like
			{Size: 16}, // velocity-like
			{Size: 8},  // health-like
			{Size: 0},  // tag
		},
		Systems: []SystemSpec{
			{Types: []int{0, 1}, Comparison: "all", Parallelism: 4, Priority: 0},
			{Types: []int{2}, Comparison: "all", Parallelism: 1, Priority: 10},
			{Types: []int{0, 3}, Comparison: "any", Parallelism: 2, Priority: 20},
		},
	}
}
