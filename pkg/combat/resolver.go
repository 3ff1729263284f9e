// pkg/combat/resolver.go
package combat

import (
	"context"

	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/logging"
	"github.com/opd-ai/go-starstrike/pkg/physics"
	"github.com/opd-ai/go-starstrike/pkg/player"
)

// Scorekeeper receives the outcome of hits
type Scorekeeper interface {
	EnemyKilled(e *entity.Enemy)
	DamagePlayer(amount int)
}

// BossTarget is the boss as seen by the resolver
type BossTarget interface {
	Boss() (*entity.Boss, bool)
	Vulnerable() bool
	ApplyDamage(amount float64) bool
}

// Result summarizes one collision pass
type Result struct {
	Hits         int
	Kills        int
	BossHits     int
	BossDefeated bool
	PlayerHits   int
	Contacts     int
}

// Resolver applies bullet and contact damage
type Resolver struct {
	ctx    context.Context
	cfg    *config.PlayerConfig
	store  *entity.Store
	player *player.Handle
	boss   BossTarget
	score  Scorekeeper
	logger *logging.Logger
}

// NewResolver creates a collision resolver
func NewResolver(ctx context.Context, cfg *config.PlayerConfig, store *entity.Store, handle *player.Handle,
	boss BossTarget, score Scorekeeper, logger *logging.Logger,
) *Resolver {
	return &Resolver{
		ctx:    ctx,
		cfg:    cfg,
		store:  store,
		player: handle,
		boss:   boss,
		score:  score,
		logger: logger,
	}
}

// Resolve runs one collision pass. Targets are the enemies alive when the
// pass starts, so several bullets may hit the same enemy in one tick but
// each bullet hits at most once.
func (r *Resolver) Resolve(now float64) Result {
	var res Result

	targets := r.aliveEnemies()
	boss, bossHittable := r.boss.Boss()
	bossHittable = bossHittable && r.boss.Vulnerable()

	for _, b := range r.store.PlayerBullets() {
		if !b.IsAlive() || b.Expired(now) {
			continue
		}
		collider := b.GetCollider()

		if e := firstHit(collider, targets); e != nil {
			b.Kill()
			res.Hits++
			if r.DamageEnemy(e, b.Damage) {
				res.Kills++
			}
			continue
		}

		if bossHittable && collider.Collides(boss.GetCollider()) {
			b.Kill()
			res.BossHits++
			if r.DamageBoss(float64(b.Damage)) {
				res.BossDefeated = true
			}
		}
	}

	ship, ok := r.player.Ship()
	if !ok {
		return res
	}
	shipCollider := physics.Sphere{Center: ship.Position, Radius: ship.HitRadius}

	for _, b := range r.store.EnemyBullets() {
		if !b.IsAlive() || b.Expired(now) {
			continue
		}
		if b.GetCollider().Collides(shipCollider) {
			b.Kill()
			res.PlayerHits++
			r.score.DamagePlayer(b.Damage)
		}
	}

	for _, e := range targets {
		if !e.IsAlive() {
			continue
		}
		if e.GetCollider().Collides(shipCollider) {
			e.Kill()
			res.Contacts++
			r.logger.Debug(r.ctx, "enemy rammed player", "enemy", uint64(e.GetID()), "kind", e.Kind.String())
			r.score.DamagePlayer(r.cfg.ContactDamage)
		}
	}

	return res
}

func (r *Resolver) aliveEnemies() []*entity.Enemy {
	enemies := r.store.Enemies()
	alive := make([]*entity.Enemy, 0, len(enemies))
	for _, e := range enemies {
		if e.IsAlive() {
			alive = append(alive, e)
		}
	}
	return alive
}

func firstHit(collider physics.Sphere, targets []*entity.Enemy) *entity.Enemy {
	for _, e := range targets {
		if collider.Collides(e.GetCollider()) {
			return e
		}
	}
	return nil
}

// DamageEnemy applies damage to e and credits the kill when this hit is the
// one that took its health to zero.
func (r *Resolver) DamageEnemy(e *entity.Enemy, amount int) bool {
	if !e.TakeDamage(amount) {
		return false
	}
	r.score.EnemyKilled(e)
	return true
}

// DamageBoss applies damage to the boss and reports whether it was defeated
func (r *Resolver) DamageBoss(amount float64) bool {
	return r.boss.ApplyDamage(amount)
}
