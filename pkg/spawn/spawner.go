// pkg/spawn/spawner.go
package spawn

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/opd-ai/go-starstrike/pkg/config"
	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/event"
	"github.com/opd-ai/go-starstrike/pkg/logging"
	"github.com/opd-ai/go-starstrike/pkg/physics"
	"github.com/opd-ai/go-starstrike/pkg/player"
)

// ErrPopulationCap is returned when the galaxy already holds its maximum number of enemies
var ErrPopulationCap = errors.New("enemy population cap reached")

// Spawner creates enemies on a throttled schedule around the player
type Spawner struct {
	ctx    context.Context
	cfg    *config.GameConfig
	store  *entity.Store
	player *player.Handle
	rng    *rand.Rand
	events event.Sink
	logger *logging.Logger

	lastSpawn float64
	hasSpawn  bool
}

// NewSpawner creates a spawner that inserts enemies into store
func NewSpawner(ctx context.Context, cfg *config.GameConfig, store *entity.Store, handle *player.Handle,
	rng *rand.Rand, events event.Sink, logger *logging.Logger,
) *Spawner {
	return &Spawner{
		ctx:    ctx,
		cfg:    cfg,
		store:  store,
		player: handle,
		rng:    rng,
		events: events,
		logger: logger,
	}
}

// Interval returns the minimum time between spawns in the given galaxy
func (s *Spawner) Interval(galaxy int) float64 {
	sc := s.cfg.Spawner
	return max(sc.MinInterval, sc.BaseInterval-float64(galaxy-1)*sc.IntervalStep)
}

// Cap returns the maximum number of alive enemies in the given galaxy
func (s *Spawner) Cap(galaxy int) int {
	return s.cfg.Spawner.BaseMax + galaxy*s.cfg.Spawner.PerGalaxy
}

// HealthFor returns the starting health of an enemy in the given galaxy
func (s *Spawner) HealthFor(stats config.EnemyStats, galaxy int) int {
	scale := 1 + float64(galaxy-1)*s.cfg.Enemies.HealthScale
	return int(math.Ceil(float64(stats.Health) * scale))
}

// Reset forgets the last spawn time, used when a new galaxy starts
func (s *Spawner) Reset() {
	s.hasSpawn = false
	s.lastSpawn = 0
}

// MaybeSpawn creates at most one enemy when the spawn interval has elapsed.
// It returns nil without error while throttled.
func (s *Spawner) MaybeSpawn(now float64, galaxy int) (*entity.Enemy, error) {
	if s.hasSpawn && now-s.lastSpawn < s.Interval(galaxy) {
		return nil, nil
	}

	kind := entity.Shooter
	if s.rng.Float64() < s.cfg.Spawner.ChaserWeight {
		kind = entity.Chaser
	}

	e, err := s.Spawn(kind, s.placement(), now, galaxy)
	if err != nil {
		return nil, err
	}
	s.lastSpawn = now
	s.hasSpawn = true
	return e, nil
}

// Spawn creates an enemy of kind at position, subject to the population cap
func (s *Spawner) Spawn(kind entity.EnemyKind, position physics.Vec3, now float64, galaxy int) (*entity.Enemy, error) {
	if s.store.AliveEnemies() >= s.Cap(galaxy) {
		return nil, ErrPopulationCap
	}

	stats, err := s.statsFor(kind)
	if err != nil {
		return nil, err
	}

	e, err := entity.NewEnemy(kind, stats, s.HealthFor(stats, galaxy), position, now)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", kind, err)
	}

	s.store.AddEnemy(e)
	s.events.Emit(event.NewEnemyEvent(event.EnemySpawned, s, uint64(e.GetID()), kind.String(), e.Points()))
	return e, nil
}

func (s *Spawner) statsFor(kind entity.EnemyKind) (config.EnemyStats, error) {
	switch kind {
	case entity.Chaser:
		return s.cfg.Enemies.Chaser, nil
	case entity.Shooter:
		return s.cfg.Enemies.Shooter, nil
	default:
		return config.EnemyStats{}, fmt.Errorf("unknown enemy kind %v", kind)
	}
}

// placement picks a point in the annulus between the safety distance and the
// arena radius around the player. After MaxAttempts rejected candidates it
// falls back to the configured safe position.
func (s *Spawner) placement() physics.Vec3 {
	sc := s.cfg.Spawner
	arena := s.cfg.Arena.Radius

	center, hasPlayer := s.player.Position()

	for attempt := 0; attempt < sc.MaxAttempts; attempt++ {
		candidate := center.Add(s.annulusPoint(sc.SafeDistance, arena, sc.VerticalSpread))
		if candidate.Len() > arena {
			continue
		}
		if hasPlayer && physics.Distance(candidate, center) < sc.SafeDistance {
			continue
		}
		return candidate
	}

	fallback := physics.Vec3(sc.FallbackPosition)
	s.logger.Warn(s.ctx, "spawn placement exhausted, using fallback position",
		"attempts", sc.MaxAttempts,
		"x", fallback.X(), "y", fallback.Y(), "z", fallback.Z(),
	)
	return fallback
}

// annulusPoint samples uniformly by area in the XZ ring [inner, outer] with a
// vertical offset in [-spread, spread].
func (s *Spawner) annulusPoint(inner, outer, spread float64) physics.Vec3 {
	r := math.Sqrt(s.rng.Float64()*(outer*outer-inner*inner) + inner*inner)
	theta := s.rng.Float64() * 2 * math.Pi
	y := (s.rng.Float64()*2 - 1) * spread
	return physics.Vec3{r * math.Sin(theta), y, r * math.Cos(theta)}
}
