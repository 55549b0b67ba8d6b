package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plus3/structof/ecs"
)

// Particle components used by the workload.
type Transform struct {
	X, Y float64
}

type Motion struct {
	DX, DY float64
}

type Lifetime struct {
	Frames int
}

type Particle struct {
	Transform Transform
	Motion    Motion
	Lifetime  Lifetime
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Motion](registry)
	ecs.RegisterComponent[Lifetime](registry)
	return registry
}

// Result holds the outcome of running the workload against one family.
type Result struct {
	Family     string
	Frames     int64
	Inserted   int64
	Removed    int64
	FinalLen   int
	UpdateTime Stats
}

func newParticle(rng *rand.Rand) Particle {
	return Particle{
		Transform: Transform{X: rng.Float64() * 100, Y: rng.Float64() * 100},
		Motion:    Motion{DX: rng.NormFloat64(), DY: rng.NormFloat64()},
	}
}

// runFamily populates a StructOf for family and runs frames until ctx is done
// or cfg.MaxFrames is reached. Each frame moves every particle, replaces a
// random share of them through a command buffer, and is timed as one sample.
// The composite's consistency is verified at the end.
func runFamily[ID comparable](ctx context.Context, cfg Config, registry *ecs.ComponentRegistry, family ecs.Family[ID]) (Result, error) {
	// Every family draws from an identically seeded source.
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	particles := ecs.NewStructOf[Particle](registry, family)
	cmds := ecs.NewCommands[Particle, ID]()

	for i := 0; i < cfg.Entities; i++ {
		particles.Insert(newParticle(rng))
	}

	result := Result{
		Family:   family.Name(),
		Inserted: int64(cfg.Entities),
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	const dt = 1.0 / 60

Loop:
	for cfg.MaxFrames <= 0 || result.Frames < cfg.MaxFrames {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		removed := 0
		for id, p := range particles.Iter() {
			if rng.Float64() < cfg.Churn {
				cmds.Remove(id)
				removed++
				continue
			}
			t := ecs.Field[Transform](particles, "Transform", id)
			t.X += p.Motion.DX * dt
			t.Y += p.Motion.DY * dt
			ecs.Field[Lifetime](particles, "Lifetime", id).Frames++
		}
		for range removed {
			cmds.Insert(newParticle(rng))
		}
		cmds.Flush(particles)

		result.UpdateTime.Samples = append(result.UpdateTime.Samples, time.Since(updateStart))
		result.Frames++
		result.Removed += int64(removed)
		result.Inserted += int64(removed)
	}

	result.UpdateTime.Finalize()
	result.FinalLen = particles.Len()

	if err := particles.Check(); err != nil {
		return result, fmt.Errorf("%s: %w", family.Name(), err)
	}
	if result.FinalLen != cfg.Entities {
		return result, fmt.Errorf("%s: population drifted to %d, want %d", family.Name(), result.FinalLen, cfg.Entities)
	}
	return result, nil
}
