package entity

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-starstrike/pkg/physics"
)

// Owner records who fired a bullet
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
	OwnerBoss
)

func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	case OwnerBoss:
		return "boss"
	default:
		return fmt.Sprintf("Owner(%d)", int(o))
	}
}

// BulletKind distinguishes projectile behaviors
type BulletKind int

const (
	Standard BulletKind = iota
	CircleShot
	BeamShot
	Missile
)

func (k BulletKind) String() string {
	switch k {
	case Standard:
		return "standard"
	case CircleShot:
		return "circle"
	case BeamShot:
		return "beam"
	case Missile:
		return "missile"
	default:
		return fmt.Sprintf("BulletKind(%d)", int(k))
	}
}

// BulletSpec describes a projectile to create
type BulletSpec struct {
	Owner            Owner
	Kind             BulletKind
	Position         physics.Vec3
	Direction        physics.Vec3
	Speed            float64
	Radius           float64
	Lifetime         float64
	Damage           float64
	DamageMultiplier float64
}

// Bullet is a projectile with a hard lifetime
type Bullet struct {
	BaseEntity
	Owner            Owner
	Kind             BulletKind
	SpawnTime        float64
	Lifetime         float64
	Damage           int
	DamageMultiplier float64
	Speed            float64
	// Heading is the homing direction; only missiles change it after launch.
	Heading physics.Vec3
}

// NewBullet creates a bullet moving along spec.Direction at spec.Speed.
// The damage carried is spec.Damage scaled by spec.DamageMultiplier (1 when unset),
// rounded half away from zero since ship and enemy health are whole numbers.
func NewBullet(spec BulletSpec, now float64) (*Bullet, error) {
	if !(spec.Lifetime > 0) {
		return nil, configError("bullet", "lifetime", spec.Lifetime, "must be positive")
	}
	if spec.Speed < 0 {
		return nil, configError("bullet", "speed", spec.Speed, "must not be negative")
	}
	if spec.Damage < 0 {
		return nil, configError("bullet", "damage", spec.Damage, "must not be negative")
	}

	base, err := newBaseEntity("bullet", spec.Position, spec.Radius)
	if err != nil {
		return nil, err
	}

	multiplier := spec.DamageMultiplier
	if multiplier == 0 {
		multiplier = 1
	}

	heading := physics.Normalize(spec.Direction)
	base.Velocity = heading.Mul(spec.Speed)
	base.Rotation = physics.LookAlong(heading)

	return &Bullet{
		BaseEntity:       base,
		Owner:            spec.Owner,
		Kind:             spec.Kind,
		SpawnTime:        now,
		Lifetime:         spec.Lifetime,
		Damage:           int(math.Round(spec.Damage * multiplier)),
		DamageMultiplier: multiplier,
		Speed:            spec.Speed,
		Heading:          heading,
	}, nil
}

// FromPlayer reports whether the player fired the bullet
func (b *Bullet) FromPlayer() bool {
	return b.Owner == OwnerPlayer
}

// Age returns the seconds since the bullet was fired
func (b *Bullet) Age(now float64) float64 {
	return now - b.SpawnTime
}

// Expired reports whether the bullet has outlived its lifetime
func (b *Bullet) Expired(now float64) bool {
	return b.Age(now) > b.Lifetime
}

// SteerTowards turns a missile's heading toward target by turnRate (0..1) and
// re-derives its velocity. Other bullet kinds ignore the call.
func (b *Bullet) SteerTowards(target physics.Vec3, turnRate float64) {
	if b.Kind != Missile {
		return
	}
	desired := physics.Direction(b.Position, target)
	if desired.Len() == 0 {
		return
	}
	heading := physics.Normalize(physics.Lerp(b.Heading, desired, turnRate))
	if heading.Len() == 0 {
		heading = desired
	}
	b.Heading = heading
	b.Velocity = heading.Mul(b.Speed)
	b.Rotation = physics.LookAlong(heading)
}
