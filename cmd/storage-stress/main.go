package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/structof/ecs"
)

func main() {
	cfg, err := loadConfig(os.Args[1:], nil)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Starting storage stress test...")

	stop := startProfile(cfg)

	report, err := run(cfg)
	stop()
	if err != nil {
		log.Fatalf("Stress test failed: %v", err)
	}

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// startProfile starts the profiler selected by cfg and returns its stop func.
func startProfile(cfg Config) func() {
	var mode func(*profile.Profile)
	switch cfg.Profile {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return func() {}
	}

	log.Printf("Writing %s profile to %s\n", cfg.Profile, cfg.ProfileDir)
	p := profile.Start(mode, profile.ProfilePath(cfg.ProfileDir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}

// run executes the workload for every family selected by cfg.
func run(cfg Config) (*Report, error) {
	report := &Report{
		Duration:  cfg.Duration,
		Entities:  cfg.Entities,
		Churn:     cfg.Churn,
		Seed:      cfg.Seed,
		MaxFrames: cfg.MaxFrames,
	}
	registry := newRegistry()

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	for _, name := range cfg.families() {
		log.Printf("Running %s family with %d entities...\n", name, cfg.Entities)

		ctx := context.Background()
		cancel := func() {}
		if cfg.Duration > 0 {
			ctx, cancel = context.WithTimeout(ctx, cfg.Duration)
		}

		var result Result
		var err error
		switch name {
		case "dense":
			result, err = runFamily(ctx, cfg, registry, ecs.Family[int](ecs.DenseFamily{}))
		case "generational":
			result, err = runFamily(ctx, cfg, registry, ecs.Family[ecs.Index](ecs.ArenaFamily{}))
		}
		cancel()
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", name, err)
		}

		log.Printf("Finished %s family: %d frames.\n", name, result.Frames)
		report.Results = append(report.Results, result)
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report, nil
}
