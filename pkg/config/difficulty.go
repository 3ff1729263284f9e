package config

import (
	"fmt"
	"strings"
)

// Difficulty is the player-selected difficulty tier
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// ParseDifficulty converts a tier name into a Difficulty.
// An empty name selects Normal.
func ParseDifficulty(name string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(name))) {
	case Easy:
		return Easy, nil
	case Normal, "":
		return Normal, nil
	case Hard:
		return Hard, nil
	default:
		return Normal, fmt.Errorf("unknown difficulty %q", name)
	}
}

// HealthMultiplier scales boss health for the tier
func (d Difficulty) HealthMultiplier() float64 {
	switch d {
	case Easy:
		return 0.75
	case Hard:
		return 1.5
	default:
		return 1.0
	}
}

// DamageMultiplier scales boss projectile damage for the tier
func (d Difficulty) DamageMultiplier() float64 {
	switch d {
	case Easy:
		return 0.75
	case Hard:
		return 1.5
	default:
		return 1.0
	}
}
