// pkg/engine/systems.go
package engine

import (
	"errors"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starstrike/pkg/spawn"
)

// Tick stage priorities. The ecs.World runs higher priorities first.
const (
	priorityMovement    = 100
	prioritySpawn       = 90
	priorityBoss        = 80
	priorityDeferred    = 70
	priorityCollision   = 60
	priorityProgression = 50
	priorityPrune       = 40
)

// stage is one step of the tick. Stages read the float64 delta stored on
// the game rather than the float32 the world passes in.
type stage struct {
	name     string
	priority int
	run      func(g *Game)
	game     *Game
}

// Update satisfies ecs.System
func (s *stage) Update(float32) {
	s.run(s.game)
}

// Remove satisfies ecs.System; stages hold no per-entity state
func (s *stage) Remove(ecs.BasicEntity) {}

// Priority satisfies ecs.Prioritizer
func (s *stage) Priority() int {
	return s.priority
}

// initSystems registers the tick stages on the world
func (g *Game) initSystems() {
	stages := []*stage{
		{name: "movement", priority: priorityMovement, run: (*Game).moveEntities},
		{name: "spawn", priority: prioritySpawn, run: (*Game).spawnEnemies},
		{name: "boss", priority: priorityBoss, run: (*Game).updateBoss},
		{name: "deferred", priority: priorityDeferred, run: (*Game).runDeferred},
		{name: "collision", priority: priorityCollision, run: (*Game).processCollisions},
		{name: "progression", priority: priorityProgression, run: (*Game).updateProgression},
		{name: "prune", priority: priorityPrune, run: (*Game).cleanupInactiveEntities},
	}
	for _, s := range stages {
		s.game = g
		g.world.AddSystem(s)
	}
}

// moveEntities moves the player, steers enemies and missiles, and moves bullets
func (g *Game) moveEntities() {
	if ship, ok := g.player.Ship(); ok {
		ship.Update(g.delta, g.Config.Arena.Radius)
	}

	g.ai.Update(g.store.Enemies(), g.ElapsedTime, g.delta, g.progress.Galaxy())
	g.emitter.SteerMissiles()

	for _, b := range g.store.PlayerBullets() {
		if b.IsAlive() {
			b.Integrate(g.delta)
		}
	}
	for _, b := range g.store.EnemyBullets() {
		if b.IsAlive() {
			b.Integrate(g.delta)
		}
	}
}

func (g *Game) spawnEnemies() {
	_, err := g.spawner.MaybeSpawn(g.ElapsedTime, g.progress.Galaxy())
	switch {
	case err == nil, errors.Is(err, spawn.ErrPopulationCap):
	default:
		g.logger.Error(g.ctx, "spawn failed", err)
	}
}

func (g *Game) updateBoss() {
	g.encounter.Update(g.ElapsedTime, g.delta)
}

func (g *Game) runDeferred() {
	g.sched.RunDue(g.ElapsedTime)
}

func (g *Game) processCollisions() {
	g.lastCollision = g.resolver.Resolve(g.ElapsedTime)
}

func (g *Game) updateProgression() {
	g.progress.Update(g.ElapsedTime)
}

// cleanupInactiveEntities removes dead enemies and dead or expired bullets
func (g *Game) cleanupInactiveEntities() {
	if removed := g.store.Prune(g.ElapsedTime); removed > 0 {
		g.logger.Debug(g.ctx, "pruned entities", "removed", removed, "tick", g.CurrentTick)
	}
}

// Stages returns the tick stage names in the order the world runs them
func (g *Game) Stages() []string {
	var names []string
	for _, sys := range g.world.Systems() {
		if s, ok := sys.(*stage); ok {
			names = append(names, s.name)
		}
	}
	return names
}
