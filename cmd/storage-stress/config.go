package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls a stress run. Values are read from the environment first and
// can be overridden by command line flags.
type Config struct {
	Duration   time.Duration `env:"STRESS_DURATION" envDefault:"5s"`
	Entities   int           `env:"STRESS_ENTITIES" envDefault:"10000"`
	Family     string        `env:"STRESS_FAMILY" envDefault:"both"`
	Churn      float64       `env:"STRESS_CHURN" envDefault:"0.05"`
	Seed       uint64        `env:"STRESS_SEED" envDefault:"1"`
	MaxFrames  int64         `env:"STRESS_MAX_FRAMES" envDefault:"0"`
	Profile    string        `env:"STRESS_PROFILE"`
	ProfileDir string        `env:"STRESS_PROFILE_DIR" envDefault:"."`
}

// loadConfig parses the environment (or environ when non-nil) and then args.
func loadConfig(args []string, environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("storage-stress", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "The total duration each family should run for.")
	fs.IntVar(&cfg.Entities, "entities", cfg.Entities, "The number of live entities to maintain.")
	fs.StringVar(&cfg.Family, "family", cfg.Family, "Storage family to run: dense, generational or both.")
	fs.Float64Var(&cfg.Churn, "churn", cfg.Churn, "Probability that an entity is replaced each frame.")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the workload's random source.")
	fs.Int64Var(&cfg.MaxFrames, "max-frames", cfg.MaxFrames, "Stop after this many frames (0 for no limit).")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "Write a cpu or mem profile.")
	fs.StringVar(&cfg.ProfileDir, "profile-dir", cfg.ProfileDir, "Directory for profile output.")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var errInvalidConfig = errors.New("invalid config")

func (c Config) validate() error {
	if c.Entities <= 0 {
		return fmt.Errorf("%w: entities must be positive, got %d", errInvalidConfig, c.Entities)
	}
	if c.Churn < 0 || c.Churn > 1 {
		return fmt.Errorf("%w: churn must be within [0, 1], got %v", errInvalidConfig, c.Churn)
	}
	if c.Duration <= 0 && c.MaxFrames <= 0 {
		return fmt.Errorf("%w: either duration or max-frames must be positive", errInvalidConfig)
	}
	switch c.Family {
	case "dense", "generational", "both":
	default:
		return fmt.Errorf("%w: unknown family %q", errInvalidConfig, c.Family)
	}
	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return fmt.Errorf("%w: unknown profile %q", errInvalidConfig, c.Profile)
	}
	return nil
}

// families returns the family names selected by the config, in run order.
func (c Config) families() []string {
	if c.Family == "both" {
		return []string{"dense", "generational"}
	}
	return []string{c.Family}
}
