// pkg/engine/game.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starstrike/pkg/ai"
	"github.com/opd-ai/go-starstrike/pkg/boss"
	"github.com/opd-ai/go-starstrike/pkg/combat"
	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/event"
	"github.com/opd-ai/go-starstrike/pkg/logging"
	"github.com/opd-ai/go-starstrike/pkg/player"
	"github.com/opd-ai/go-starstrike/pkg/progression"
	"github.com/opd-ai/go-starstrike/pkg/schedule"
	"github.com/opd-ai/go-starstrike/pkg/spawn"
	"github.com/opd-ai/go-starstrike/pkg/weapon"
)

var (
	// ErrEntityNotFound is returned when a command names an unknown entity
	ErrEntityNotFound = errors.New("entity not found")
	// ErrGameOver is returned by commands issued after the game has ended
	ErrGameOver = errors.New("game over")
	// ErrInvalidDamage is returned for damage amounts that are not positive and finite
	ErrInvalidDamage = errors.New("invalid damage amount")
)

// GameStatus is the overall lifecycle of a game
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusOver
)

func (s GameStatus) String() string {
	switch s {
	case GameStatusWaiting:
		return "waiting"
	case GameStatusActive:
		return "active"
	case GameStatusOver:
		return "game_over"
	default:
		return fmt.Sprintf("GameStatus(%d)", int(s))
	}
}

// Game represents the core combat simulation and owns every component
type Game struct {
	Config      *config.GameConfig
	EntityLock  sync.RWMutex
	EventBus    *event.Bus
	Status      GameStatus
	CurrentTick uint64
	LastUpdate  time.Time
	StartTime   time.Time
	ElapsedTime float64 // simulation seconds

	ctx    context.Context
	logger *logging.Logger
	rng    *rand.Rand

	world   *ecs.World
	store   *entity.Store
	sched   *schedule.Queue
	player  *player.Handle
	ship    *player.Ship
	pending event.Queue

	ai        *ai.Controller
	spawner   *spawn.Spawner
	emitter   *weapon.Emitter
	encounter *boss.Encounter
	resolver  *combat.Resolver
	progress  *progression.Controller

	delta         float64
	lastCollision combat.Result
	lastTickAt    time.Time
}

// Option customizes a Game at construction
type Option func(*Game)

// WithLogger sets the logger used by the game and its components
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithContext sets the base context carried into log records
func WithContext(ctx context.Context) Option {
	return func(g *Game) { g.ctx = ctx }
}

// WithoutPlayer starts the game with no ship attached
func WithoutPlayer() Option {
	return func(g *Game) { g.player.Detach() }
}

// NewGame creates a new game with the specified configuration
func NewGame(cfg *config.GameConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	ship := player.NewShip(cfg.Player)
	game := &Game{
		Config:     cfg,
		EventBus:   event.NewEventBus(),
		LastUpdate: time.Now(),
		ctx:        context.Background(),
		rng:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		world:      &ecs.World{},
		store:      entity.NewStore(),
		sched:      schedule.New(),
		player:     player.NewHandle(ship),
		ship:       ship,
	}
	for _, opt := range opts {
		opt(game)
	}
	if game.logger == nil {
		game.logger = logging.NewLogger()
	}
	if logging.GetSessionID(game.ctx) == "" {
		game.ctx = logging.WithSessionID(game.ctx, "")
	}

	game.initComponents()
	game.initSystems()

	return game, nil
}

// initComponents wires the simulation components to the shared store,
// deferred-action queue, player handle and event queue.
func (g *Game) initComponents() {
	cfg := g.Config
	sink := &g.pending

	g.emitter = weapon.NewEmitter(g.ctx, cfg, g.store, g.sched, g.player, g.rng, g.logger.With("component", "weapon"))
	g.ai = ai.NewController(g.ctx, &cfg.Enemies, g.player, g.emitter, g.logger.With("component", "ai"))
	g.spawner = spawn.NewSpawner(g.ctx, cfg, g.store, g.player, g.rng, sink, g.logger.With("component", "spawn"))
	g.encounter = boss.NewEncounter(g.ctx, cfg, g.sched, g.player, g.emitter, g.rng, sink, g.logger.With("component", "boss"))
	g.progress = progression.NewController(g.ctx, cfg, g.store, g.sched, g.player, g.encounter, sink,
		g.logger.With("component", "progression"))
	g.progress.ResetOnAdvance(g.spawner)
	g.resolver = combat.NewResolver(g.ctx, &cfg.Player, g.store, g.player, g.encounter, g.progress,
		g.logger.With("component", "combat"))
}

// Start begins the game
func (g *Game) Start() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.Status != GameStatusWaiting {
		return
	}
	g.Status = GameStatusActive
	g.StartTime = time.Now()
	g.LastUpdate = g.StartTime
	g.lastTickAt = g.StartTime
	g.logger.Info(g.ctx, "game started",
		"galaxy", g.progress.Galaxy(),
		"difficulty", string(g.Config.Difficulty),
		"seed", g.Config.Seed,
	)
}

// Update advances the game by the wall-clock time since the last update,
// capped at MaxDeltaTime.
func (g *Game) Update() {
	g.Tick(g.calculateDeltaTime())
}

// calculateDeltaTime calculates the time since the last update and caps it.
func (g *Game) calculateDeltaTime() float64 {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	now := time.Now()
	deltaTime := now.Sub(g.LastUpdate).Seconds()
	g.LastUpdate = now

	if deltaTime > g.Config.MaxDeltaTime {
		deltaTime = g.Config.MaxDeltaTime
	}
	return deltaTime
}

// Tick advances the simulation by deltaTime seconds. It does nothing unless
// the game is active. Events raised during the tick are published after
// the lock is released.
func (g *Game) Tick(deltaTime float64) {
	g.withLock(func() {
		g.tick(deltaTime)
	})
}

func (g *Game) tick(deltaTime float64) {
	if g.Status != GameStatusActive {
		return
	}
	if deltaTime < 0 {
		deltaTime = 0
	}

	g.delta = deltaTime
	g.ElapsedTime += deltaTime
	g.world.Update(float32(deltaTime))
	g.CurrentTick++
	g.lastTickAt = time.Now()

	if g.progress.GameOver() {
		g.Status = GameStatusOver
		g.sched.Clear()
	}
}

// withLock runs fn under the write lock and then delivers queued events
func (g *Game) withLock(fn func()) {
	g.EntityLock.Lock()
	fn()
	events := g.pending.Drain()
	g.EntityLock.Unlock()

	for _, e := range events {
		g.EventBus.Publish(e)
	}
}

// Now returns the simulation time in seconds
func (g *Game) Now() float64 {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.ElapsedTime
}

// Galaxy returns the current galaxy index
func (g *Game) Galaxy() int {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.progress.Galaxy()
}

// Score returns the total score
func (g *Game) Score() int {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.progress.Score()
}

// GetStatus returns the game status
func (g *Game) GetStatus() GameStatus {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.Status
}

// LastCollision returns the summary of the most recent collision pass
func (g *Game) LastCollision() combat.Result {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.lastCollision
}

// LastTickAt returns the wall-clock time the last tick finished
func (g *Game) LastTickAt() time.Time {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.lastTickAt
}

// EntityCount returns the number of stored enemies and bullets, including
// dead ones not yet pruned
func (g *Game) EntityCount() int {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.store.Len()
}
