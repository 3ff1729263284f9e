// pkg/player/ship.go
package player

import (
	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/physics"
)

// DamageOutcome describes what a hit did to the player
type DamageOutcome int

const (
	// Damaged means health dropped but stayed above zero
	Damaged DamageOutcome = iota
	// LifeLost means health reached zero, a life was spent and health restored
	LifeLost
	// Destroyed means health reached zero with no lives left
	Destroyed
	// Ignored means the ship was already destroyed or the amount was not positive
	Ignored
)

func (o DamageOutcome) String() string {
	switch o {
	case Damaged:
		return "damaged"
	case LifeLost:
		return "life_lost"
	case Destroyed:
		return "destroyed"
	default:
		return "ignored"
	}
}

// Ship represents the player's spaceship
type Ship struct {
	Position  physics.Vec3
	Velocity  physics.Vec3
	Rotation  physics.Orientation
	HitRadius float64
	Health    int
	MaxHealth int
	Lives     int

	FireCooldown float64
	LastFire     float64
	fired        bool

	// Control inputs set by the input layer each frame
	Thrusting bool
	YawRate   float64
	PitchRate float64

	Acceleration float64
	MaxSpeed     float64
	Drag         float64
}

// NewShip creates a ship at the origin with full health
func NewShip(cfg config.PlayerConfig) *Ship {
	return &Ship{
		HitRadius:    cfg.HitRadius,
		Health:       cfg.MaxHealth,
		MaxHealth:    cfg.MaxHealth,
		Lives:        cfg.Lives,
		FireCooldown: cfg.FireCooldown,
		Acceleration: cfg.Acceleration,
		MaxSpeed:     cfg.MaxSpeed,
		Drag:         cfg.Drag,
	}
}

// Forward returns the direction the ship faces
func (s *Ship) Forward() physics.Vec3 {
	return s.Rotation.Forward()
}

// Update handles the ship's state for a single tick and keeps it inside the arena
func (s *Ship) Update(deltaTime, arenaRadius float64) {
	s.Rotation.Yaw += s.YawRate * deltaTime
	s.Rotation.Pitch = clampPitch(s.Rotation.Pitch + s.PitchRate*deltaTime)

	if s.Thrusting {
		s.Velocity = s.Velocity.Add(s.Forward().Mul(s.Acceleration * deltaTime))
		s.Velocity = physics.ClampLength(s.Velocity, s.MaxSpeed)
	}

	s.Velocity = s.Velocity.Mul(max(0, 1-s.Drag*deltaTime))
	s.Position = s.Position.Add(s.Velocity.Mul(deltaTime))

	if arenaRadius > 0 {
		s.Position = physics.ClampToRadius(s.Position, arenaRadius)
	}
}

func clampPitch(p float64) float64 {
	const limit = 1.5
	return min(max(p, -limit), limit)
}

// CanFire reports whether the weapon cooldown has elapsed
func (s *Ship) CanFire(now float64) bool {
	if s.Destroyed() {
		return false
	}
	return !s.fired || now-s.LastFire >= s.FireCooldown
}

// MarkFired starts the weapon cooldown
func (s *Ship) MarkFired(now float64) {
	s.LastFire = now
	s.fired = true
}

// Destroyed reports whether the ship has no health and no lives left
func (s *Ship) Destroyed() bool {
	return s.Health <= 0 && s.Lives <= 0
}

// HealthRatio returns remaining health as a fraction of max health
func (s *Ship) HealthRatio() float64 {
	if s.MaxHealth <= 0 || s.Health <= 0 {
		return 0
	}
	return float64(s.Health) / float64(s.MaxHealth)
}

// TakeDamage applies damage and resolves the life lifecycle: reaching zero
// spends a life and restores full health while lives remain.
func (s *Ship) TakeDamage(amount int) DamageOutcome {
	if amount <= 0 || s.Destroyed() {
		return Ignored
	}

	s.Health -= amount
	if s.Health > 0 {
		return Damaged
	}

	s.Lives--
	if s.Lives > 0 {
		s.Health = s.MaxHealth
		return LifeLost
	}

	s.Lives = 0
	s.Health = 0
	return Destroyed
}
