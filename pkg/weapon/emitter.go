// pkg/weapon/emitter.go
package weapon

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/logging"
	"github.com/opd-ai/go-starstrike/pkg/physics"
	"github.com/opd-ai/go-starstrike/pkg/player"
	"github.com/opd-ai/go-starstrike/pkg/schedule"
)

var (
	// ErrNoPlayer is returned when a shot needs the player and none is attached
	ErrNoPlayer = errors.New("player not available")
	// ErrCoolingDown is returned when the player fires before the cooldown elapsed
	ErrCoolingDown = errors.New("weapon cooling down")
)

// Emitter creates every projectile in the simulation. Boss bursts are
// staggered through the deferred-action queue rather than fired at once.
type Emitter struct {
	ctx    context.Context
	cfg    *config.GameConfig
	store  *entity.Store
	sched  *schedule.Queue
	player *player.Handle
	rng    *rand.Rand
	logger *logging.Logger
}

// NewEmitter creates an emitter that adds bullets to store
func NewEmitter(ctx context.Context, cfg *config.GameConfig, store *entity.Store, sched *schedule.Queue,
	handle *player.Handle, rng *rand.Rand, logger *logging.Logger,
) *Emitter {
	return &Emitter{
		ctx:    ctx,
		cfg:    cfg,
		store:  store,
		sched:  sched,
		player: handle,
		rng:    rng,
		logger: logger,
	}
}

// FirePlayer fires one bullet along the ship's forward vector, offset ahead
// of the hull so it cannot hit the ship that fired it.
func (em *Emitter) FirePlayer(now float64) (*entity.Bullet, error) {
	ship, ok := em.player.Ship()
	if !ok {
		return nil, ErrNoPlayer
	}
	if !ship.CanFire(now) {
		return nil, ErrCoolingDown
	}

	pc := em.cfg.Player
	forward := ship.Forward()
	b, err := entity.NewBullet(entity.BulletSpec{
		Owner:     entity.OwnerPlayer,
		Kind:      entity.Standard,
		Position:  ship.Position.Add(forward.Mul(pc.MuzzleOffset)),
		Direction: forward,
		Speed:     pc.BulletSpeed,
		Radius:    pc.BulletRadius,
		Lifetime:  pc.BulletLifetime,
		Damage:    float64(pc.BulletDamage),
	}, now)
	if err != nil {
		return nil, err
	}

	ship.MarkFired(now)
	em.store.AddBullet(b)
	return b, nil
}

// FireEnemy fires one bullet from e toward the player's position at this
// moment. The bullet is never re-aimed.
func (em *Emitter) FireEnemy(e *entity.Enemy, now float64) (*entity.Bullet, error) {
	target, ok := em.player.Position()
	if !ok {
		return nil, ErrNoPlayer
	}

	ec := em.cfg.Enemies
	b, err := entity.NewBullet(entity.BulletSpec{
		Owner:     entity.OwnerEnemy,
		Kind:      entity.Standard,
		Position:  e.Position,
		Direction: physics.Direction(e.Position, target),
		Speed:     ec.BulletSpeed,
		Radius:    ec.BulletRadius,
		Lifetime:  ec.BulletLifetime,
		Damage:    float64(ec.BulletDamage),
	}, now)
	if err != nil {
		return nil, err
	}

	em.store.AddBullet(b)
	return b, nil
}

// ShotCount returns how many projectiles a pattern emits in the given phase
func ShotCount(pattern entity.AttackPattern, phase int) int {
	switch pattern {
	case entity.CirclePattern:
		return 8 + phase*4
	case entity.BeamPattern:
		return 5 + phase*2
	case entity.MissilePattern:
		return 2 + phase
	default:
		return 0
	}
}

// Volley describes one boss attack
type Volley struct {
	Boss       *entity.Boss
	Pattern    entity.AttackPattern
	Phase      int
	BaseDamage float64
	// Live reports whether the encounter that launched the volley is still
	// running. Staggered shots are dropped once it returns false.
	Live func() bool
}

// FireBoss launches a boss attack pattern and returns the number of shots
// scheduled. Circle and beam shots are staggered; missiles launch together.
func (em *Emitter) FireBoss(v Volley, now float64) int {
	count := ShotCount(v.Pattern, v.Phase)
	bc := em.cfg.Boss

	switch v.Pattern {
	case entity.CirclePattern:
		for i := 0; i < count; i++ {
			angle := 2 * math.Pi * float64(i) / float64(count)
			dir := physics.RotateYaw(physics.Vec3{0, 0, -1}, angle)
			em.sched.At(now+float64(i)*bc.CircleStagger, func(at float64) {
				if !em.volleyLive(v) {
					return
				}
				em.bossShot(v, entity.CircleShot, dir, 1, at)
			})
		}
	case entity.BeamPattern:
		spread := bc.BeamSpread / float64(max(v.Phase, 1))
		for i := 0; i < count; i++ {
			em.sched.At(now+float64(i)*bc.BeamStagger, func(at float64) {
				if !em.volleyLive(v) {
					return
				}
				target, ok := em.player.Position()
				if !ok {
					return
				}
				dir := em.jitter(physics.Direction(v.Boss.Position, target), spread)
				em.bossShot(v, entity.BeamShot, dir, bc.BeamMultiplier, at)
			})
		}
	case entity.MissilePattern:
		for i := 0; i < count; i++ {
			yaw := em.rng.Float64() * 2 * math.Pi
			pitch := (em.rng.Float64() - 0.5) * math.Pi / 3
			em.bossShot(v, entity.Missile, physics.FromYawPitch(yaw, pitch, 1), 1, now)
		}
	default:
		return 0
	}

	return count
}

func (em *Emitter) volleyLive(v Volley) bool {
	if !v.Boss.IsAlive() {
		return false
	}
	return v.Live == nil || v.Live()
}

// jitter rotates dir by a random yaw and pitch offset within ±spread/2
func (em *Emitter) jitter(dir physics.Vec3, spread float64) physics.Vec3 {
	o := physics.LookAlong(dir)
	o.Yaw += (em.rng.Float64() - 0.5) * spread
	o.Pitch += (em.rng.Float64() - 0.5) * spread
	return o.Forward()
}

func (em *Emitter) bossShot(v Volley, kind entity.BulletKind, dir physics.Vec3, multiplier, now float64) {
	bc := em.cfg.Boss
	b, err := entity.NewBullet(entity.BulletSpec{
		Owner:            entity.OwnerBoss,
		Kind:             kind,
		Position:         v.Boss.Position.Add(dir.Mul(v.Boss.Radius)),
		Direction:        dir,
		Speed:            bc.ProjectileSpeed,
		Radius:           bc.ProjectileRadius,
		Lifetime:         bc.ProjectileLifetime,
		Damage:           v.BaseDamage,
		DamageMultiplier: multiplier,
	}, now)
	if err != nil {
		em.logger.Error(em.ctx, "boss projectile rejected", err, "kind", kind.String())
		return
	}
	em.store.AddBullet(b)
}

// SteerMissiles nudges every live missile toward the player. Missiles keep
// their heading while no player is attached.
func (em *Emitter) SteerMissiles() {
	target, ok := em.player.Position()
	if !ok {
		return
	}
	for _, b := range em.store.EnemyBullets() {
		if b.Kind != entity.Missile || !b.IsAlive() {
			continue
		}
		b.SteerTowards(target, em.cfg.Boss.MissileTurnRate)
	}
}
