package engine

import (
	"fmt"
	"math"

	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/physics"
)

// ActivateBossBattle starts the boss intro regardless of exploration.
// It returns false when an encounter is already running or finished.
func (g *Game) ActivateBossBattle() (bool, error) {
	var (
		ok  bool
		err error
	)
	g.withLock(func() {
		if g.Status == GameStatusOver {
			err = ErrGameOver
			return
		}
		ok, err = g.progress.ActivateBoss(g.ElapsedTime)
	})
	return ok, err
}

// SpawnEnemy creates an enemy at position, subject to the population cap
func (g *Game) SpawnEnemy(kind entity.EnemyKind, position physics.Vec3) (entity.ID, error) {
	var (
		id  entity.ID
		err error
	)
	g.withLock(func() {
		if g.Status == GameStatusOver {
			err = ErrGameOver
			return
		}
		var e *entity.Enemy
		e, err = g.spawner.Spawn(kind, position, g.ElapsedTime, g.progress.Galaxy())
		if err == nil {
			id = e.GetID()
		}
	})
	return id, err
}

// DamageEntity applies damage to an enemy or the boss through the same
// kill and defeat bookkeeping as bullet hits. amount must be positive and
// finite.
func (g *Game) DamageEntity(id entity.ID, amount float64) error {
	if !(amount > 0) || math.IsInf(amount, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidDamage, amount)
	}

	var err error
	g.withLock(func() {
		if g.Status == GameStatusOver {
			err = ErrGameOver
			return
		}
		if e, ok := g.store.Enemy(id); ok {
			if e.IsAlive() {
				g.resolver.DamageEnemy(e, int(math.Round(amount)))
			}
			return
		}
		if b, ok := g.encounter.Boss(); ok && b.GetID() == id {
			g.resolver.DamageBoss(amount)
			return
		}
		err = ErrEntityNotFound
	})
	return err
}

// FirePlayer fires the player's weapon and returns the new bullet's id
func (g *Game) FirePlayer() (entity.ID, error) {
	var (
		id  entity.ID
		err error
	)
	g.withLock(func() {
		if g.Status == GameStatusOver {
			err = ErrGameOver
			return
		}
		var b *entity.Bullet
		b, err = g.emitter.FirePlayer(g.ElapsedTime)
		if err == nil {
			id = b.GetID()
		}
	})
	return id, err
}

// Explore records a non-combat progress action
func (g *Game) Explore() {
	g.withLock(func() {
		if g.Status != GameStatusOver {
			g.progress.Explore()
		}
	})
}

// Controls are the player's steering inputs for the following ticks
type Controls struct {
	Thrust    bool
	YawRate   float64
	PitchRate float64
}

// SteerPlayer sets the player's steering inputs
func (g *Game) SteerPlayer(c Controls) {
	g.withLock(func() {
		if ship, ok := g.player.Ship(); ok {
			ship.Thrusting = c.Thrust
			ship.YawRate = c.YawRate
			ship.PitchRate = c.PitchRate
		}
	})
}

// DetachPlayer removes the player reference; the simulation keeps running
// in its degraded mode until AttachPlayer is called.
func (g *Game) DetachPlayer() {
	g.withLock(func() {
		g.player.Detach()
	})
}

// AttachPlayer restores the player reference
func (g *Game) AttachPlayer() {
	g.withLock(func() {
		g.player.Attach(g.ship)
	})
}
