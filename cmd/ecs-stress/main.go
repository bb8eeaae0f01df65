package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/plus3/ecsloop/config"
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/engine"
	"github.com/plus3/ecsloop/scene"
	"github.com/plus3/ecsloop/vmath"
)

// firstExtraEntity leaves room for the scene's fixed entities.
const firstExtraEntity ecs.EntityId = 100

// tickRecorder is a surface that samples the wall time between presents.
type tickRecorder struct {
	mu      sync.Mutex
	last    time.Time
	samples []time.Duration
	failed  int
}

func (r *tickRecorder) Present(report *ecs.TickReport) error {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.last.IsZero() {
		r.samples = append(r.samples, now.Sub(r.last))
	}
	r.last = now
	if report.Failed() {
		r.failed++
	}
	return nil
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of extra balls to spawn.")
	configPath := flag.String("config", "", "Settings file. Built-in defaults are used when empty.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting ECS stress test...")

	settings := config.Default()
	if *configPath != "" {
		var err error
		if settings, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}
	settings.Logging.Enabled = false
	settings.Loop.FPSTargetEnabled = false
	settings.Loop.DelayFixed = 0

	// 1. Build the scene
	sc, err := scene.New(settings, nil)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	// 2. Populate Storage with extra balls
	log.Printf("Populating storage with %d entities...\n", *entityCount)
	for i := 0; i < *entityCount; i++ {
		at := vmath.V(rand.Float64()*2-1, rand.Float64()*2-1)
		velocity := vmath.V(rand.Float64()*0.02-0.01, rand.Float64()*0.02-0.01)
		c := color.RGBA{R: uint8(rand.Intn(256)), G: uint8(rand.Intn(256)), B: uint8(rand.Intn(256)), A: 255}
		if _, err := sc.SpawnBall(firstExtraEntity+ecs.EntityId(i), "BALL", at, velocity, 1.0/48.0, c); err != nil {
			log.Fatalf("Failed to spawn ball %d: %v", i, err)
		}
	}
	log.Println("Population complete.")

	// 3. Run the loop
	recorder := &tickRecorder{}
	loop := engine.New(sc.Scheduler,
		engine.WithSurface(recorder),
		engine.WithTiming(settings.Timing()),
	)

	report := &Report{
		Duration:       *duration,
		Entities:       sc.Storage.Len(),
		Components:     sc.Storage.Registry().Len(),
		Systems:        len(sc.Scheduler.Systems()),
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Fatalf("Loop failed: %v", err)
	}

	report.RunID = loop.RunID()
	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(loop.Ticks())
	report.FailedTicks = recorder.failed
	report.UpdateTime.Samples = recorder.samples
	report.UpdateTime.Finalize()
	report.SystemStats = sc.Scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
