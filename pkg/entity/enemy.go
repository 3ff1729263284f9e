package entity

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/physics"
)

// EnemyKind selects an enemy's behavior archetype
type EnemyKind int

const (
	Chaser EnemyKind = iota
	Shooter
)

func (k EnemyKind) String() string {
	switch k {
	case Chaser:
		return "chaser"
	case Shooter:
		return "shooter"
	default:
		return fmt.Sprintf("EnemyKind(%d)", int(k))
	}
}

// EnemyKindFromString converts a name to an EnemyKind
func EnemyKindFromString(s string) (EnemyKind, error) {
	switch strings.ToLower(s) {
	case "chaser":
		return Chaser, nil
	case "shooter":
		return Shooter, nil
	default:
		return Chaser, fmt.Errorf("unknown enemy kind %q", s)
	}
}

// Enemy is a hostile ship controlled by the AI
type Enemy struct {
	BaseEntity
	Kind         EnemyKind
	Stats        config.EnemyStats
	Health       int
	MaxHealth    int
	LastFireTime float64
	SpawnTime    float64
}

// NewEnemy creates an enemy at position with the given stats and starting health.
// now is the simulation time used as the reference for its first shot.
func NewEnemy(kind EnemyKind, stats config.EnemyStats, health int, position physics.Vec3, now float64) (*Enemy, error) {
	if kind != Chaser && kind != Shooter {
		return nil, configError("enemy", "kind", kind, "is not a known behavior")
	}
	if health <= 0 {
		return nil, configError("enemy", "health", health, "must be positive")
	}
	if stats.Speed < 0 {
		return nil, configError("enemy", "speed", stats.Speed, "must not be negative")
	}

	base, err := newBaseEntity("enemy", position, stats.HitRadius)
	if err != nil {
		return nil, err
	}

	return &Enemy{
		BaseEntity:   base,
		Kind:         kind,
		Stats:        stats,
		Health:       health,
		MaxHealth:    health,
		LastFireTime: now,
		SpawnTime:    now,
	}, nil
}

// TakeDamage subtracts amount from the enemy's health. It returns true only
// on the hit that takes health from above zero to zero or below; later hits
// still subtract (overkill) but never report a second kill. Amounts that
// are not positive are ignored so health never increases.
func (e *Enemy) TakeDamage(amount int) bool {
	if amount <= 0 {
		return false
	}
	wasStanding := e.Health > 0
	e.Health -= amount
	if wasStanding && e.Health <= 0 {
		e.Alive = false
		return true
	}
	return false
}

// HealthRatio returns remaining health as a fraction of max health
func (e *Enemy) HealthRatio() float64 {
	if e.MaxHealth <= 0 || e.Health <= 0 {
		return 0
	}
	return float64(e.Health) / float64(e.MaxHealth)
}

// Points returns the score awarded for killing this enemy
func (e *Enemy) Points() int {
	return e.Stats.Points
}
