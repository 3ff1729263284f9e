// pkg/progression/controller.go
package progression

import (
	"context"

	"github.com/opd-ai/go-starstrike/pkg/boss"
	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/event"
	"github.com/opd-ai/go-starstrike/pkg/logging"
	"github.com/opd-ai/go-starstrike/pkg/player"
	"github.com/opd-ai/go-starstrike/pkg/schedule"
)

// BossControl is the part of the boss encounter progression drives
type BossControl interface {
	State() boss.State
	Activate(now float64, galaxy int) (bool, error)
	Reset()
}

// Resetter is reset when a new galaxy starts
type Resetter interface {
	Reset()
}

// Controller tracks score, kills and exploration for the current galaxy and
// is the only component that advances the galaxy.
type Controller struct {
	ctx    context.Context
	cfg    *config.GameConfig
	store  *entity.Store
	sched  *schedule.Queue
	player *player.Handle
	boss   BossControl
	events event.Sink
	logger *logging.Logger

	resetters []Resetter

	galaxy      int
	score       int
	kills       int
	exploration float64
	gameOver    bool
}

// NewController creates a controller starting at cfg.StartGalaxy
func NewController(ctx context.Context, cfg *config.GameConfig, store *entity.Store, sched *schedule.Queue,
	handle *player.Handle, bossControl BossControl, events event.Sink, logger *logging.Logger,
) *Controller {
	return &Controller{
		ctx:    ctx,
		cfg:    cfg,
		store:  store,
		sched:  sched,
		player: handle,
		boss:   bossControl,
		events: events,
		logger: logger,
		galaxy: max(cfg.StartGalaxy, 1),
	}
}

// ResetOnAdvance registers components to reset on every galaxy advance
func (c *Controller) ResetOnAdvance(r ...Resetter) {
	c.resetters = append(c.resetters, r...)
}

// Galaxy returns the current galaxy index, starting at 1
func (c *Controller) Galaxy() int { return c.galaxy }

// Score returns the total score
func (c *Controller) Score() int { return c.score }

// Kills returns enemies killed in the current galaxy
func (c *Controller) Kills() int { return c.kills }

// Exploration returns the exploration percentage of the current galaxy
func (c *Controller) Exploration() float64 { return c.exploration }

// GameOver reports whether the player has run out of lives
func (c *Controller) GameOver() bool { return c.gameOver }

// EnemyKilled credits a kill
func (c *Controller) EnemyKilled(e *entity.Enemy) {
	c.score += e.Points()
	c.kills++
	c.addExploration(c.cfg.Progression.KillExploration)
	c.events.Emit(event.NewEnemyEvent(event.EnemyKilled, c, uint64(e.GetID()), e.Kind.String(), e.Points()))
}

// Explore records a non-combat progress action
func (c *Controller) Explore() {
	c.addExploration(c.cfg.Progression.ExploreStep)
}

func (c *Controller) addExploration(amount float64) {
	c.exploration = min(100, c.exploration+amount)
}

// DamagePlayer applies damage to the player's ship and emits the resulting
// lifecycle events. It does nothing while no ship is attached.
func (c *Controller) DamagePlayer(amount int) {
	ship, ok := c.player.Ship()
	if !ok || c.gameOver {
		return
	}

	outcome := ship.TakeDamage(amount)
	if outcome == player.Ignored {
		return
	}
	c.events.Emit(event.NewPlayerEvent(event.PlayerDamaged, c, amount, ship.Health, ship.Lives))

	switch outcome {
	case player.LifeLost:
		c.events.Emit(event.NewPlayerEvent(event.PlayerDied, c, amount, ship.Health, ship.Lives))
		c.logger.Info(c.ctx, "player lost a life", "lives_left", ship.Lives)
	case player.Destroyed:
		c.gameOver = true
		c.events.Emit(event.NewPlayerEvent(event.PlayerDied, c, amount, ship.Health, ship.Lives))
		c.events.Emit(event.NewProgressEvent(event.GameOver, c, c.galaxy, c.score))
		c.logger.Info(c.ctx, "game over", "galaxy", c.galaxy, "score", c.score)
	}
}

// Update activates the boss once exploration reaches the threshold and
// advances the galaxy once the boss is defeated.
func (c *Controller) Update(now float64) {
	if c.gameOver {
		return
	}

	switch c.boss.State() {
	case boss.Defeated:
		c.advance()
	case boss.Inactive:
		if c.exploration >= c.cfg.Progression.BossThreshold {
			if _, err := c.boss.Activate(now, c.galaxy); err != nil {
				c.logger.Error(c.ctx, "boss activation failed", err, "galaxy", c.galaxy)
			}
		}
	}
}

// ActivateBoss starts the boss encounter regardless of exploration
func (c *Controller) ActivateBoss(now float64) (bool, error) {
	if c.gameOver {
		return false, nil
	}
	return c.boss.Activate(now, c.galaxy)
}

func (c *Controller) advance() {
	bonus := c.galaxy * c.cfg.Progression.BossBonusPerGalaxy
	c.score += bonus
	c.galaxy++
	c.kills = 0
	c.exploration = 0

	c.store.Clear()
	c.sched.Clear()
	c.boss.Reset()
	for _, r := range c.resetters {
		r.Reset()
	}

	c.events.Emit(event.NewProgressEvent(event.GalaxyAdvanced, c, c.galaxy, c.score))
	c.logger.Info(c.ctx, "galaxy advanced", "galaxy", c.galaxy, "bonus", bonus, "score", c.score)
}
