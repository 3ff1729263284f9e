// pkg/engine/snapshot.go
package engine

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/opd-ai/go-starstrike/pkg/boss"
	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/physics"
)

// Snapshot is a read-only view of every alive entity after a tick
type Snapshot struct {
	Tick        uint64        `msgpack:"tick"`
	Time        float64       `msgpack:"time"`
	Status      string        `msgpack:"status"`
	Galaxy      int           `msgpack:"galaxy"`
	Score       int           `msgpack:"score"`
	Kills       int           `msgpack:"kills"`
	Exploration float64       `msgpack:"exploration"`
	Player      *PlayerState  `msgpack:"player,omitempty"`
	Boss        *BossState    `msgpack:"boss,omitempty"`
	Enemies     []EnemyState  `msgpack:"enemies"`
	Bullets     []BulletState `msgpack:"bullets"`
}

// PlayerState represents a snapshot of the player's ship
type PlayerState struct {
	Position  physics.Vec3 `msgpack:"pos"`
	Rotation  physics.Vec3 `msgpack:"rot"`
	Health    int          `msgpack:"health"`
	MaxHealth int          `msgpack:"max_health"`
	Lives     int          `msgpack:"lives"`
}

// EnemyState represents a snapshot of an enemy
type EnemyState struct {
	ID          uint64       `msgpack:"id"`
	Kind        string       `msgpack:"kind"`
	Position    physics.Vec3 `msgpack:"pos"`
	Rotation    physics.Vec3 `msgpack:"rot"`
	HealthRatio float64      `msgpack:"health"`
}

// BulletState represents a snapshot of a bullet
type BulletState struct {
	ID       uint64       `msgpack:"id"`
	Owner    string       `msgpack:"owner"`
	Kind     string       `msgpack:"kind"`
	Position physics.Vec3 `msgpack:"pos"`
	Rotation physics.Vec3 `msgpack:"rot"`
}

// BossState represents a snapshot of the boss encounter
type BossState struct {
	ID             uint64       `msgpack:"id"`
	EncounterID    string       `msgpack:"encounter"`
	State          string       `msgpack:"state"`
	Phase          int          `msgpack:"phase"`
	Pattern        string       `msgpack:"pattern"`
	Position       physics.Vec3 `msgpack:"pos"`
	Rotation       physics.Vec3 `msgpack:"rot"`
	HealthRatio    float64      `msgpack:"health"`
	AttackCooldown float64      `msgpack:"cooldown"`
}

func rotation(o physics.Orientation) physics.Vec3 {
	return physics.Vec3{o.Yaw, o.Pitch, o.Roll}
}

// Snapshot returns a view of the current game state
func (g *Game) Snapshot() *Snapshot {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.createSnapshot()
}

// createSnapshot builds the snapshot; the caller holds the lock
func (g *Game) createSnapshot() *Snapshot {
	snap := &Snapshot{
		Tick:        g.CurrentTick,
		Time:        g.ElapsedTime,
		Status:      g.Status.String(),
		Galaxy:      g.progress.Galaxy(),
		Score:       g.progress.Score(),
		Kills:       g.progress.Kills(),
		Exploration: g.progress.Exploration(),
		Enemies:     make([]EnemyState, 0, len(g.store.Enemies())),
		Bullets:     make([]BulletState, 0, len(g.store.PlayerBullets())+len(g.store.EnemyBullets())),
	}

	if ship, ok := g.player.Ship(); ok {
		snap.Player = &PlayerState{
			Position:  ship.Position,
			Rotation:  rotation(ship.Rotation),
			Health:    ship.Health,
			MaxHealth: ship.MaxHealth,
			Lives:     ship.Lives,
		}
	}

	for _, e := range g.store.Enemies() {
		if !e.IsAlive() {
			continue
		}
		snap.Enemies = append(snap.Enemies, EnemyState{
			ID:          uint64(e.GetID()),
			Kind:        e.Kind.String(),
			Position:    e.Position,
			Rotation:    rotation(e.Rotation),
			HealthRatio: e.HealthRatio(),
		})
	}

	for _, bullets := range [][]*entity.Bullet{g.store.PlayerBullets(), g.store.EnemyBullets()} {
		for _, b := range bullets {
			if !b.IsAlive() || b.Expired(g.ElapsedTime) {
				continue
			}
			snap.Bullets = append(snap.Bullets, BulletState{
				ID:       uint64(b.GetID()),
				Owner:    b.Owner.String(),
				Kind:     b.Kind.String(),
				Position: b.Position,
				Rotation: rotation(b.Rotation),
			})
		}
	}

	if b, ok := g.encounter.Boss(); ok && g.encounter.State() != boss.Inactive {
		snap.Boss = &BossState{
			ID:             uint64(b.GetID()),
			EncounterID:    g.encounter.ID(),
			State:          g.encounter.State().String(),
			Phase:          b.Phase,
			Pattern:        b.Pattern.String(),
			Position:       b.Position,
			Rotation:       rotation(b.Rotation),
			HealthRatio:    b.HealthRatio(),
			AttackCooldown: b.AttackCooldown,
		}
	}

	return snap
}

// Encode serializes the snapshot with msgpack for an out-of-process renderer
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot produced by Encode
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
