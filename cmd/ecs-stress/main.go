package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/bitecs/ecs"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML scenario file. Empty runs the built-in scenario.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 0, "Override the scenario's initial entity count.")
	profileMode := flag.String("profile", "", "Write a pprof profile: cpu or mem.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Fatal("unknown profile mode", zap.String("mode", *profileMode))
	}

	scenario, err := loadScenario(*configPath)
	if err != nil {
		logger.Fatal("load scenario", zap.Error(err))
	}
	if *entityCount > 0 {
		scenario.Entities = *entityCount
	}

	logger.Info("starting ECS stress test",
		zap.Int("entities", scenario.Entities),
		zap.Int("types", len(scenario.Types)),
		zap.Int("systems", len(scenario.Systems)),
		zap.Duration("duration", *duration))

	// 1. Build the world from the scenario.
	w := ecs.NewWorld()
	defer w.Terminate()

	masks := make([]ecs.ComponentMask, len(scenario.Types))
	for i, ts := range scenario.Types {
		masks[i] = w.RegisterType(ts.Size)
		if masks[i] == ecs.NoComponent {
			logger.Fatal("component type catalog full", zap.Int("type", i))
		}
	}

	for _, spec := range scenario.Systems {
		var query ecs.ComponentMask
		for _, ti := range spec.Types {
			query |= masks[ti]
		}
		comparison, _ := spec.comparison() // validated at load
		w.EnableSystem(makeSystem(w, masks), query, comparison, spec.Parallelism, spec.Priority)
	}
	w.Flush()

	// 2. Populate the initial entity set.
	logger.Info("populating world")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < scenario.Entities; i++ {
		w.CreateEntity(randomMask(rng, masks))
	}
	logger.Info("population complete", zap.Int("entities", w.EntityCount()))

	// 3. Run the simulation loop.
	report := &Report{
		Duration:       *duration,
		Entities:       scenario.Entities,
		Types:          len(scenario.Types),
		Systems:        len(scenario.Systems),
		GCPauseMetrics: *gcPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalTicks int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			tickStart := time.Now()
			w.RunTick(deltaTime.Seconds())
			tickDuration := time.Since(tickStart)

			report.TickTime.Samples = append(report.TickTime.Samples, tickDuration)
			totalTicks++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalTicks = totalTicks
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished",
		zap.Int64("ticks", totalTicks),
		zap.Int("entities", w.EntityCount()))

	for _, s := range w.Stats().Systems {
		logger.Info("system stats",
			zap.String("name", s.Name),
			zap.Int64("executions", s.ExecutionCount),
			zap.Duration("avg", s.AvgDuration),
			zap.Duration("max", s.MaxDuration))
	}

	// 4. Generate the report to the console.
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// makeSystem returns a callback that bumps a counter in the first 8 payload
// bytes of every component its entities own. Workers of a parallel dispatch
// only touch payloads of their own slice, so no locking is needed.
func makeSystem(w *ecs.World, masks []ecs.ComponentMask) ecs.SystemFunc {
	return func(ids []ecs.EntityId, entityMasks []ecs.ComponentMask, dt float64) {
		for i, e := range ids {
			for _, c := range masks {
				if entityMasks[i]&c == 0 {
					continue
				}
				if view := w.GetComponent(e, c); len(view) >= 8 {
					*ecs.As[uint64](view) += uint64(dt*1e6) + 1
				}
			}
		}
	}
}

// randomMask picks 1 to 4 random registered types.
func randomMask(rng *rand.Rand, masks []ecs.ComponentMask) ecs.ComponentMask {
	var m ecs.ComponentMask
	for n := rng.Intn(4) + 1; n > 0; n-- {
		m |= masks[rng.Intn(len(masks))]
	}
	return m
}
