// Package engine provides unit tests for game.go
package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/opd-ai/go-starstrike/pkg/boss"
	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/event"
	"github.com/opd-ai/go-starstrike/pkg/logging"
	"github.com/opd-ai/go-starstrike/pkg/physics"
)

func defaultConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Seed = 42
	return cfg
}

func newStartedGame(t *testing.T, cfg *config.GameConfig, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithLogger(logging.Discard())}, opts...)
	game, err := NewGame(cfg, opts...)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	game.Start()
	return game
}

func tickFor(g *Game, seconds, step float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed += step {
		g.Tick(step)
	}
}

func TestNewGame_RejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Arena.Radius = -1

	if _, err := NewGame(cfg, WithLogger(logging.Discard())); err == nil {
		t.Error("expected NewGame to reject an invalid config")
	}
}

func TestGame_StageOrder(t *testing.T) {
	game := newStartedGame(t, defaultConfig())

	want := []string{"movement", "spawn", "boss", "deferred", "collision", "progression", "prune"}
	if got := game.Stages(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected stages %v, got %v", want, got)
	}
}

func TestGame_StartTransitions(t *testing.T) {
	game, err := NewGame(defaultConfig(), WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	game.Tick(0.1)
	if game.CurrentTick != 0 || game.GetStatus() != GameStatusWaiting {
		t.Errorf("tick before Start should be a no-op, tick %d status %v", game.CurrentTick, game.GetStatus())
	}

	game.Start()
	game.Tick(0.1)
	if game.GetStatus() != GameStatusActive || game.CurrentTick != 1 {
		t.Errorf("expected active game after one tick, status %v tick %d", game.GetStatus(), game.CurrentTick)
	}
}

func TestGame_UpdateCapsDelta(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	game.LastUpdate = time.Now().Add(-2 * time.Second)

	game.Update()

	if got := game.Now(); got != game.Config.MaxDeltaTime {
		t.Errorf("expected delta capped at %v, got %v", game.Config.MaxDeltaTime, got)
	}
}

func TestGame_BulletLifetimePruning(t *testing.T) {
	game := newStartedGame(t, defaultConfig())

	id, err := game.FirePlayer()
	if err != nil {
		t.Fatalf("FirePlayer failed: %v", err)
	}

	tickFor(game, game.Config.Player.BulletLifetime+0.3, 0.1)

	if _, ok := game.store.Bullet(id); ok {
		t.Error("expired bullet still in the store")
	}
	for _, b := range game.Snapshot().Bullets {
		if entity.ID(b.ID) == id {
			t.Error("expired bullet still in the snapshot")
		}
	}
}

func TestGame_PopulationBound(t *testing.T) {
	cfg := defaultConfig()
	cfg.Spawner.BaseInterval = 0
	cfg.Spawner.MinInterval = 0
	game := newStartedGame(t, cfg, WithoutPlayer())
	limit := game.spawner.Cap(1)

	for i := 0; i < 100; i++ {
		game.Tick(0.05)
		if n := game.store.AliveEnemies(); n > limit {
			t.Fatalf("tick %d: %d enemies exceed cap %d", i, n, limit)
		}
	}

	if n := len(game.Snapshot().Enemies); n != limit {
		t.Errorf("expected population to plateau at %d, got %d", limit, n)
	}
}

func TestGame_EventsDeliveredOutsideLock(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	var seen []int

	game.EventBus.Subscribe(event.EnemySpawned, func(e event.Event) {
		// Would deadlock if handlers ran under the game lock
		seen = append(seen, len(game.Snapshot().Enemies))
	})

	if _, err := game.SpawnEnemy(entity.Shooter, physics.Vec3{0, 0, -100}); err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	game.Tick(0.1)

	if len(seen) != 2 {
		t.Fatalf("expected 2 spawn events, got %d", len(seen))
	}
	if seen[0] != 1 {
		t.Errorf("expected handler to observe the spawned enemy, saw %d", seen[0])
	}
}

func TestGame_DamageEntity(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	var kills []*event.EnemyEvent
	game.EventBus.Subscribe(event.EnemyKilled, func(e event.Event) {
		kills = append(kills, e.(*event.EnemyEvent))
	})

	id, err := game.SpawnEnemy(entity.Chaser, physics.Vec3{0, 0, -150})
	if err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}

	if err := game.DamageEntity(id, 1); err != nil {
		t.Errorf("DamageEntity failed: %v", err)
	}
	if err := game.DamageEntity(id, 10); err != nil {
		t.Errorf("DamageEntity failed: %v", err)
	}
	if err := game.DamageEntity(id, 10); err != nil {
		t.Errorf("damaging a dead but unpruned enemy should be a no-op, got %v", err)
	}

	if len(kills) != 1 || kills[0].EnemyID != uint64(id) || kills[0].Points != 100 {
		t.Errorf("expected one kill event for %d, got %+v", id, kills)
	}
	if game.Score() != 100 {
		t.Errorf("expected score 100, got %d", game.Score())
	}

	game.Tick(0.1)
	if err := game.DamageEntity(id, 1); !errors.Is(err, ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound after pruning, got %v", err)
	}
	if err := game.DamageEntity(entity.ID(1<<60), 1); !errors.Is(err, ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestGame_DamageEntityRejectsInvalidAmounts(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	enemyID, err := game.SpawnEnemy(entity.Chaser, physics.Vec3{0, 0, -150})
	if err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	if ok, err := game.ActivateBossBattle(); !ok || err != nil {
		t.Fatalf("ActivateBossBattle failed: %v, %v", ok, err)
	}
	tickFor(game, 3.2, 0.1)
	bossID := entity.ID(game.Snapshot().Boss.ID)
	if err := game.DamageEntity(bossID, 500); err != nil {
		t.Fatalf("DamageEntity failed: %v", err)
	}
	bossRatio := game.Snapshot().Boss.HealthRatio

	tests := []struct {
		name   string
		amount float64
	}{
		{"negative", -5},
		{"zero", 0},
		{"nan", math.NaN()},
		{"positive_infinity", math.Inf(1)},
		{"negative_infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, id := range []entity.ID{enemyID, bossID} {
				if err := game.DamageEntity(id, tt.amount); !errors.Is(err, ErrInvalidDamage) {
					t.Errorf("expected ErrInvalidDamage for %v, got %v", tt.amount, err)
				}
			}
			if e, _ := game.store.Enemy(enemyID); e.Health != e.MaxHealth {
				t.Errorf("expected enemy health %d, got %d", e.MaxHealth, e.Health)
			}
			if got := game.Snapshot().Boss.HealthRatio; got != bossRatio {
				t.Errorf("expected boss health ratio %v, got %v", bossRatio, got)
			}
		})
	}

	if err := game.DamageEntity(bossID, 1e12); err != nil {
		t.Fatalf("DamageEntity failed: %v", err)
	}
	game.Tick(0.1)
	if game.Galaxy() != 2 {
		t.Errorf("expected galaxy 2 after defeating the boss, got %d", game.Galaxy())
	}
}

func TestGame_BossDefeatAdvancesGalaxy(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	var got []event.Type
	record := func(e event.Event) { got = append(got, e.GetType()) }
	for _, typ := range []event.Type{event.BossActivated, event.BossEngaged, event.BossDefeated, event.GalaxyAdvanced} {
		game.EventBus.Subscribe(typ, record)
	}

	if ok, err := game.ActivateBossBattle(); !ok || err != nil {
		t.Fatalf("ActivateBossBattle failed: %v, %v", ok, err)
	}
	if ok, _ := game.ActivateBossBattle(); ok {
		t.Error("second activation should be a no-op")
	}

	tickFor(game, 3.2, 0.1)
	snap := game.Snapshot()
	if snap.Boss == nil || snap.Boss.State != boss.Active.String() {
		t.Fatalf("expected active boss after the intro, got %+v", snap.Boss)
	}

	if err := game.DamageEntity(entity.ID(snap.Boss.ID), 1e9); err != nil {
		t.Fatalf("DamageEntity on boss failed: %v", err)
	}
	scoreBefore := game.Score()
	game.Tick(0.1)

	if game.Galaxy() != 2 {
		t.Errorf("expected galaxy 2, got %d", game.Galaxy())
	}
	if game.Score() != scoreBefore+500 {
		t.Errorf("expected boss bonus 500, score %d -> %d", scoreBefore, game.Score())
	}
	if game.store.Len() != 0 {
		t.Errorf("expected store cleared on advance, %d entities left", game.store.Len())
	}
	if game.sched.Len() != 0 {
		t.Errorf("expected deferred actions cleared on advance, %d left", game.sched.Len())
	}
	if game.Snapshot().Boss != nil {
		t.Error("expected no boss in the new galaxy")
	}

	want := []event.Type{event.BossActivated, event.BossEngaged, event.BossDefeated, event.GalaxyAdvanced}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected events %v, got %v", want, got)
	}
}

func TestGame_ExplorationTriggersBoss(t *testing.T) {
	game := newStartedGame(t, defaultConfig())

	for i := 0; i < 15; i++ {
		game.Explore()
	}
	game.Tick(0.1)

	snap := game.Snapshot()
	if snap.Exploration != 75 {
		t.Errorf("expected exploration 75, got %v", snap.Exploration)
	}
	if snap.Boss == nil || snap.Boss.State != boss.Intro.String() {
		t.Errorf("expected boss intro at the threshold, got %+v", snap.Boss)
	}
}

func TestGame_GameOverStopsTicks(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	game.ship.Lives = 1
	game.ship.Health = 10
	var over int
	game.EventBus.Subscribe(event.GameOver, func(event.Event) { over++ })

	if _, err := game.SpawnEnemy(entity.Chaser, physics.Vec3{0, 0, -1}); err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	game.Tick(0.1)

	if game.GetStatus() != GameStatusOver {
		t.Fatalf("expected game over, got %v", game.GetStatus())
	}
	if over != 1 {
		t.Errorf("expected one GameOver event, got %d", over)
	}

	tick := game.CurrentTick
	game.Tick(0.1)
	if game.CurrentTick != tick {
		t.Error("tick after game over should be a no-op")
	}
	if _, err := game.FirePlayer(); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver, got %v", err)
	}
	if _, err := game.ActivateBossBattle(); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver, got %v", err)
	}
}

func TestGame_MissingPlayerIsStable(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	id, _ := game.SpawnEnemy(entity.Chaser, physics.Vec3{0, 0, -100})
	game.Tick(0.1)

	game.DetachPlayer()
	e, _ := game.store.Enemy(id)
	speed := e.Velocity.Len()
	for i := 0; i < 10; i++ {
		game.Tick(0.1)
	}

	if e.Velocity.Len() >= speed {
		t.Errorf("expected enemy to slow down without a player, %v -> %v", speed, e.Velocity.Len())
	}
	if game.Snapshot().Player != nil {
		t.Error("expected no player in the snapshot")
	}
	if _, err := game.FirePlayer(); err == nil {
		t.Error("expected FirePlayer to fail without a player")
	}

	game.AttachPlayer()
	game.Tick(0.1)
	if game.Snapshot().Player == nil {
		t.Error("expected player back in the snapshot")
	}
}

func TestGame_PlayerClampedToArena(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	game.ship.Position = physics.Vec3{0, 0, -195}
	game.SteerPlayer(Controls{Thrust: true})

	tickFor(game, 5, 0.1)

	if r := game.Snapshot().Player.Position.Len(); r > game.Config.Arena.Radius+1e-9 {
		t.Errorf("player left the arena, radius %v", r)
	}
}
