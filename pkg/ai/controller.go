// pkg/ai/controller.go
package ai

import (
	"context"
	"math"

	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/logging"
	"github.com/opd-ai/go-starstrike/pkg/physics"
	"github.com/opd-ai/go-starstrike/pkg/player"
)

// Firer launches an enemy's shot at the player
type Firer interface {
	FireEnemy(e *entity.Enemy, now float64) (*entity.Bullet, error)
}

// Controller moves enemies and decides when shooters fire
type Controller struct {
	ctx    context.Context
	cfg    *config.EnemiesConfig
	player *player.Handle
	firer  Firer
	logger *logging.Logger

	degraded bool
}

// NewController creates an AI controller
func NewController(ctx context.Context, cfg *config.EnemiesConfig, handle *player.Handle, firer Firer, logger *logging.Logger) *Controller {
	return &Controller{
		ctx:    ctx,
		cfg:    cfg,
		player: handle,
		firer:  firer,
		logger: logger,
	}
}

// SpeedFor returns an enemy's speed in the given galaxy
func (c *Controller) SpeedFor(stats config.EnemyStats, galaxy int) float64 {
	return stats.Speed * math.Pow(c.cfg.SpeedGrowth, float64(max(galaxy, 1)-1))
}

// FireIntervalFor returns a shooter's fire interval in the given galaxy
func (c *Controller) FireIntervalFor(stats config.EnemyStats, galaxy int) float64 {
	interval := stats.FireInterval * math.Pow(c.cfg.FireIntervalDecay, float64(max(galaxy, 1)-1))
	return max(interval, c.cfg.MinFireInterval)
}

// Degraded reports whether the last update ran without a player
func (c *Controller) Degraded() bool {
	return c.degraded
}

// Update steers and moves every alive enemy once
func (c *Controller) Update(enemies []*entity.Enemy, now, deltaTime float64, galaxy int) {
	target, ok := c.player.Position()
	c.trackPlayer(ok)

	for _, e := range enemies {
		if !e.IsAlive() {
			continue
		}
		if ok && physics.Distance(e.Position, target) <= e.Stats.DetectionRange {
			switch e.Kind {
			case entity.Chaser:
				c.chase(e, target, galaxy)
			case entity.Shooter:
				c.standOff(e, target, now, deltaTime, galaxy)
			}
		} else {
			c.drift(e)
		}
		e.Integrate(deltaTime)
	}
}

func (c *Controller) trackPlayer(present bool) {
	switch {
	case !present && !c.degraded:
		c.degraded = true
		c.logger.Warn(c.ctx, "player unavailable, enemies drifting")
	case present && c.degraded:
		c.degraded = false
		c.logger.Info(c.ctx, "player available, enemies targeting")
	}
}

func (c *Controller) chase(e *entity.Enemy, target physics.Vec3, galaxy int) {
	dir := physics.Direction(e.Position, target)
	e.Velocity = dir.Mul(c.SpeedFor(e.Stats, galaxy))
	e.Rotation = physics.LookAlong(dir)
}

// Inside the band a shooter keeps bandDamping of its velocity per 1/60 s
const (
	bandDamping  = 0.9
	dampingSteps = 60
)

// BandDamping returns the velocity factor applied to an in-band shooter over deltaTime
func BandDamping(deltaTime float64) float64 {
	return math.Pow(bandDamping, deltaTime*dampingSteps)
}

// standOff keeps a shooter inside its preferred distance band and fires on its interval
func (c *Controller) standOff(e *entity.Enemy, target physics.Vec3, now, deltaTime float64, galaxy int) {
	dir := physics.Direction(e.Position, target)
	dist := physics.Distance(e.Position, target)
	half := c.SpeedFor(e.Stats, galaxy) / 2

	switch {
	case dist < c.cfg.NearDistance:
		e.Velocity = dir.Mul(-half)
	case dist > c.cfg.FarDistance:
		e.Velocity = dir.Mul(half)
	default:
		e.Velocity = e.Velocity.Mul(BandDamping(deltaTime))
	}
	e.Rotation = physics.LookAlong(dir)

	if now-e.LastFireTime > c.FireIntervalFor(e.Stats, galaxy) {
		if _, err := c.firer.FireEnemy(e, now); err != nil {
			c.logger.Debug(c.ctx, "shooter could not fire", "enemy", uint64(e.GetID()), "error", err.Error())
			return
		}
		e.LastFireTime = now
	}
}

func (c *Controller) drift(e *entity.Enemy) {
	e.Velocity = e.Velocity.Mul(c.cfg.Drag)
}
