package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that override file configuration
const (
	EnvDifficulty  = "STARSTRIKE_DIFFICULTY"
	EnvSeed        = "STARSTRIKE_SEED"
	EnvStartGalaxy = "STARSTRIKE_START_GALAXY"
	EnvArenaRadius = "STARSTRIKE_ARENA_RADIUS"
)

// ApplyEnvironmentOverrides updates config from STARSTRIKE_* environment variables.
// Unset variables leave the config untouched.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	if v, ok := os.LookupEnv(EnvDifficulty); ok {
		d, err := ParseDifficulty(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDifficulty, err)
		}
		config.Difficulty = d
	}

	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid seed %q: %w", EnvSeed, v, err)
		}
		config.Seed = seed
	}

	if v, ok := os.LookupEnv(EnvStartGalaxy); ok {
		galaxy, err := strconv.Atoi(v)
		if err != nil || galaxy < 1 {
			return fmt.Errorf("%s: invalid galaxy %q", EnvStartGalaxy, v)
		}
		config.StartGalaxy = galaxy
	}

	if v, ok := os.LookupEnv(EnvArenaRadius); ok {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			return fmt.Errorf("%s: invalid radius %q", EnvArenaRadius, v)
		}
		config.Arena.Radius = radius
	}

	return nil
}
