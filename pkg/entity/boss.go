package entity

import (
	"fmt"

	"github.com/opd-ai/go-starstrike/pkg/physics"
)

// AttackPattern is one of the boss's projectile patterns
type AttackPattern int

const (
	NoPattern AttackPattern = iota
	CirclePattern
	BeamPattern
	MissilePattern
)

// AttackPatterns lists the patterns a boss chooses from
var AttackPatterns = []AttackPattern{CirclePattern, BeamPattern, MissilePattern}

func (p AttackPattern) String() string {
	switch p {
	case NoPattern:
		return "none"
	case CirclePattern:
		return "circle"
	case BeamPattern:
		return "beam"
	case MissilePattern:
		return "missiles"
	default:
		return fmt.Sprintf("AttackPattern(%d)", int(p))
	}
}

// Boss phase thresholds on the health ratio
const (
	PhaseTwoRatio   = 0.6
	PhaseThreeRatio = 0.3
)

// Boss is the single end-of-galaxy enemy
type Boss struct {
	BaseEntity
	Health         float64
	MaxHealth      float64
	Phase          int
	Pattern        AttackPattern
	AttackCooldown float64
	AttackTimer    float64
}

// NewBoss creates a boss in phase 1 with full health
func NewBoss(position physics.Vec3, maxHealth, radius float64) (*Boss, error) {
	if !(maxHealth > 0) {
		return nil, configError("boss", "maxHealth", maxHealth, "must be positive")
	}
	base, err := newBaseEntity("boss", position, radius)
	if err != nil {
		return nil, err
	}
	return &Boss{
		BaseEntity: base,
		Health:     maxHealth,
		MaxHealth:  maxHealth,
		Phase:      1,
	}, nil
}

// HealthRatio returns remaining health as a fraction of max health
func (b *Boss) HealthRatio() float64 {
	if b.Health <= 0 {
		return 0
	}
	return b.Health / b.MaxHealth
}

// PhaseForRatio derives the phase from a health ratio
func PhaseForRatio(ratio float64) int {
	switch {
	case ratio < PhaseThreeRatio:
		return 3
	case ratio < PhaseTwoRatio:
		return 2
	default:
		return 1
	}
}

// TakeDamage subtracts amount from the boss's health and reports whether
// this hit took it from above zero to zero or below. NaN and amounts that
// are not positive are ignored.
func (b *Boss) TakeDamage(amount float64) bool {
	if !(amount > 0) {
		return false
	}
	wasStanding := b.Health > 0
	b.Health -= amount
	if wasStanding && b.Health <= 0 {
		b.Alive = false
		return true
	}
	return false
}
