// pkg/boss/encounter.go
package boss

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/event"
	"github.com/opd-ai/go-starstrike/pkg/logging"
	"github.com/opd-ai/go-starstrike/pkg/physics"
	"github.com/opd-ai/go-starstrike/pkg/player"
	"github.com/opd-ai/go-starstrike/pkg/schedule"
	"github.com/opd-ai/go-starstrike/pkg/weapon"
)

// State is the encounter's lifecycle stage
type State int

const (
	Inactive State = iota
	Intro
	Active
	Defeated
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Intro:
		return "intro"
	case Active:
		return "active"
	case Defeated:
		return "defeated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Attacker launches boss volleys
type Attacker interface {
	FireBoss(v weapon.Volley, now float64) int
}

// Encounter owns the single boss of a galaxy and drives it through
// Inactive -> Intro -> Active -> Defeated.
type Encounter struct {
	ctx      context.Context
	cfg      *config.GameConfig
	sched    *schedule.Queue
	player   *player.Handle
	attacker Attacker
	rng      *rand.Rand
	events   event.Sink
	logger   *logging.Logger

	state         State
	boss          *entity.Boss
	id            string
	coolingDown   bool
	cooldownUntil float64
}

// NewEncounter creates an inactive encounter
func NewEncounter(ctx context.Context, cfg *config.GameConfig, sched *schedule.Queue, handle *player.Handle,
	attacker Attacker, rng *rand.Rand, events event.Sink, logger *logging.Logger,
) *Encounter {
	return &Encounter{
		ctx:      ctx,
		cfg:      cfg,
		sched:    sched,
		player:   handle,
		attacker: attacker,
		rng:      rng,
		events:   events,
		logger:   logger,
	}
}

// State returns the current lifecycle stage
func (e *Encounter) State() State {
	return e.state
}

// ID returns the current encounter id, empty while inactive
func (e *Encounter) ID() string {
	return e.id
}

// Boss returns the boss of the current encounter
func (e *Encounter) Boss() (*entity.Boss, bool) {
	return e.boss, e.boss != nil
}

// Vulnerable reports whether the boss can take damage
func (e *Encounter) Vulnerable() bool {
	return e.state == Active
}

// MaxHealth returns the boss health for a galaxy at the configured difficulty
func (e *Encounter) MaxHealth(galaxy int) float64 {
	return e.cfg.Boss.BaseHealth * float64(galaxy) * e.cfg.Difficulty.HealthMultiplier()
}

// BaseDamage returns the per-projectile damage before pattern multipliers
func (e *Encounter) BaseDamage() float64 {
	return e.cfg.Boss.BaseDamage * e.cfg.Difficulty.DamageMultiplier()
}

// Activate starts the intro for a new boss. It returns false and does
// nothing unless the encounter is inactive.
func (e *Encounter) Activate(now float64, galaxy int) (bool, error) {
	if e.state != Inactive {
		return false, nil
	}

	b, err := entity.NewBoss(e.spawnPosition(), e.MaxHealth(galaxy), e.cfg.Boss.HitRadius)
	if err != nil {
		return false, fmt.Errorf("activate boss: %w", err)
	}

	id := uuid.NewString()
	e.boss = b
	e.id = id
	e.state = Intro
	e.coolingDown = false
	e.faceTarget()

	e.events.Emit(event.NewBossEvent(event.BossActivated, e, id, b.Phase, ""))
	e.logger.Info(e.ctx, "boss encounter started",
		"encounter_id", id,
		"galaxy", galaxy,
		"max_health", b.MaxHealth,
	)

	e.sched.At(now+e.cfg.Boss.IntroDelay, func(float64) {
		if e.id != id || e.state != Intro {
			return
		}
		e.state = Active
		e.events.Emit(event.NewBossEvent(event.BossEngaged, e, id, e.boss.Phase, ""))
		e.logger.Info(e.ctx, "boss engaged", "encounter_id", id)
	})

	return true, nil
}

func (e *Encounter) spawnPosition() physics.Vec3 {
	ship, ok := e.player.Ship()
	if !ok {
		return physics.Vec3{0, 0, -e.cfg.Boss.Distance}
	}
	pos := ship.Position.Add(ship.Forward().Mul(e.cfg.Boss.Distance))
	return physics.ClampToRadius(pos, e.cfg.Arena.Radius)
}

func (e *Encounter) faceTarget() {
	if target, ok := e.player.Position(); ok {
		e.boss.Rotation = physics.LookAt(e.boss.Position, target)
	}
}

// Update evaluates the phase and runs attack scheduling once per tick.
// It does nothing outside the Active state.
func (e *Encounter) Update(now, deltaTime float64) {
	if e.state != Active {
		return
	}
	b := e.boss
	e.faceTarget()

	if phase := entity.PhaseForRatio(b.HealthRatio()); phase > b.Phase {
		b.Phase = phase
		e.events.Emit(event.NewBossEvent(event.BossPhaseChanged, e, e.id, phase, ""))
		e.logger.Info(e.ctx, "boss phase changed", "encounter_id", e.id, "phase", phase)
	}

	if e.coolingDown {
		b.AttackCooldown = max(0, e.cooldownUntil-now)
	}

	b.AttackTimer += deltaTime
	if b.AttackTimer <= float64(4-b.Phase) || e.coolingDown {
		return
	}

	b.AttackTimer = 0
	b.Pattern = entity.AttackPatterns[e.rng.IntN(len(entity.AttackPatterns))]

	id := e.id
	shots := e.attacker.FireBoss(weapon.Volley{
		Boss:       b,
		Pattern:    b.Pattern,
		Phase:      b.Phase,
		BaseDamage: e.BaseDamage(),
		Live:       func() bool { return e.id == id && e.state == Active },
	}, now)
	e.events.Emit(event.NewBossEvent(event.BossAttackStarted, e, id, b.Phase, b.Pattern.String()))
	e.logger.Debug(e.ctx, "boss attack", "encounter_id", id, "pattern", b.Pattern.String(), "shots", shots)

	cooldown := 4 - float64(b.Phase)*0.5
	e.coolingDown = true
	e.cooldownUntil = now + cooldown
	b.AttackCooldown = cooldown
	e.sched.At(e.cooldownUntil, func(float64) {
		if e.id != id {
			return
		}
		e.coolingDown = false
		b.AttackCooldown = 0
	})
}

// ApplyDamage damages the boss while it is Active and reports whether this
// hit defeated it. The defeat event is emitted exactly once.
func (e *Encounter) ApplyDamage(amount float64) bool {
	if e.state != Active {
		return false
	}
	if !e.boss.TakeDamage(amount) {
		return false
	}

	e.state = Defeated
	e.coolingDown = false
	e.events.Emit(event.NewBossEvent(event.BossDefeated, e, e.id, e.boss.Phase, ""))
	e.logger.Info(e.ctx, "boss defeated", "encounter_id", e.id)
	return true
}

// Reset returns the encounter to Inactive. Pending intro and cooldown
// callbacks from the old encounter become no-ops.
func (e *Encounter) Reset() {
	e.state = Inactive
	e.boss = nil
	e.id = ""
	e.coolingDown = false
	e.cooldownUntil = 0
}
