// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// GameConfig contains every tunable of the combat simulation
type GameConfig struct {
	Difficulty   Difficulty        `json:"difficulty" toml:"difficulty"`
	Seed         uint64            `json:"seed" toml:"seed"`
	StartGalaxy  int               `json:"startGalaxy" toml:"start_galaxy"`
	MaxDeltaTime float64           `json:"maxDeltaTime" toml:"max_delta_time"`
	Arena        ArenaConfig       `json:"arena" toml:"arena"`
	Player       PlayerConfig      `json:"player" toml:"player"`
	Enemies      EnemiesConfig     `json:"enemies" toml:"enemies"`
	Spawner      SpawnerConfig     `json:"spawner" toml:"spawner"`
	Boss         BossConfig        `json:"boss" toml:"boss"`
	Progression  ProgressionConfig `json:"progression" toml:"progression"`
}

// ArenaConfig bounds the playable area
type ArenaConfig struct {
	Radius float64 `json:"radius" toml:"radius"`
}

// PlayerConfig contains player ship and player weapon settings
type PlayerConfig struct {
	MaxHealth      int     `json:"maxHealth" toml:"max_health"`
	Lives          int     `json:"lives" toml:"lives"`
	HitRadius      float64 `json:"hitRadius" toml:"hit_radius"`
	FireCooldown   float64 `json:"fireCooldown" toml:"fire_cooldown"`
	BulletSpeed    float64 `json:"bulletSpeed" toml:"bullet_speed"`
	BulletLifetime float64 `json:"bulletLifetime" toml:"bullet_lifetime"`
	BulletRadius   float64 `json:"bulletRadius" toml:"bullet_radius"`
	BulletDamage   int     `json:"bulletDamage" toml:"bullet_damage"`
	MuzzleOffset   float64 `json:"muzzleOffset" toml:"muzzle_offset"`
	ContactDamage  int     `json:"contactDamage" toml:"contact_damage"`
	Acceleration   float64 `json:"acceleration" toml:"acceleration"`
	MaxSpeed       float64 `json:"maxSpeed" toml:"max_speed"`
	Drag           float64 `json:"drag" toml:"drag"`
}

// EnemyStats holds the fixed stats of one enemy behavior type
type EnemyStats struct {
	Speed          float64 `json:"speed" toml:"speed"`
	DetectionRange float64 `json:"detectionRange" toml:"detection_range"`
	FireInterval   float64 `json:"fireInterval" toml:"fire_interval"`
	Health         int     `json:"health" toml:"health"`
	Points         int     `json:"points" toml:"points"`
	HitRadius      float64 `json:"hitRadius" toml:"hit_radius"`
}

// EnemiesConfig contains enemy behavior settings
type EnemiesConfig struct {
	Chaser            EnemyStats `json:"chaser" toml:"chaser"`
	Shooter           EnemyStats `json:"shooter" toml:"shooter"`
	SpeedGrowth       float64    `json:"speedGrowth" toml:"speed_growth"`
	HealthScale       float64    `json:"healthScale" toml:"health_scale"`
	FireIntervalDecay float64    `json:"fireIntervalDecay" toml:"fire_interval_decay"`
	MinFireInterval   float64    `json:"minFireInterval" toml:"min_fire_interval"`
	NearDistance      float64    `json:"nearDistance" toml:"near_distance"`
	FarDistance       float64    `json:"farDistance" toml:"far_distance"`
	Drag              float64    `json:"drag" toml:"drag"`
	BulletSpeed       float64    `json:"bulletSpeed" toml:"bullet_speed"`
	BulletLifetime    float64    `json:"bulletLifetime" toml:"bullet_lifetime"`
	BulletRadius      float64    `json:"bulletRadius" toml:"bullet_radius"`
	BulletDamage      int        `json:"bulletDamage" toml:"bullet_damage"`
}

// SpawnerConfig contains population and placement settings
type SpawnerConfig struct {
	BaseInterval     float64    `json:"baseInterval" toml:"base_interval"`
	IntervalStep     float64    `json:"intervalStep" toml:"interval_step"`
	MinInterval      float64    `json:"minInterval" toml:"min_interval"`
	BaseMax          int        `json:"baseMax" toml:"base_max"`
	PerGalaxy        int        `json:"perGalaxy" toml:"per_galaxy"`
	SafeDistance     float64    `json:"safeDistance" toml:"safe_distance"`
	MaxAttempts      int        `json:"maxAttempts" toml:"max_attempts"`
	ChaserWeight     float64    `json:"chaserWeight" toml:"chaser_weight"`
	VerticalSpread   float64    `json:"verticalSpread" toml:"vertical_spread"`
	FallbackPosition [3]float64 `json:"fallbackPosition" toml:"fallback_position"`
}

// BossConfig contains boss encounter settings
type BossConfig struct {
	BaseHealth         float64 `json:"baseHealth" toml:"base_health"`
	IntroDelay         float64 `json:"introDelay" toml:"intro_delay"`
	HitRadius          float64 `json:"hitRadius" toml:"hit_radius"`
	Distance           float64 `json:"distance" toml:"distance"`
	ProjectileSpeed    float64 `json:"projectileSpeed" toml:"projectile_speed"`
	ProjectileLifetime float64 `json:"projectileLifetime" toml:"projectile_lifetime"`
	ProjectileRadius   float64 `json:"projectileRadius" toml:"projectile_radius"`
	BaseDamage         float64 `json:"baseDamage" toml:"base_damage"`
	BeamMultiplier     float64 `json:"beamMultiplier" toml:"beam_multiplier"`
	CircleStagger      float64 `json:"circleStagger" toml:"circle_stagger"`
	BeamStagger        float64 `json:"beamStagger" toml:"beam_stagger"`
	BeamSpread         float64 `json:"beamSpread" toml:"beam_spread"`
	MissileTurnRate    float64 `json:"missileTurnRate" toml:"missile_turn_rate"`
}

// ProgressionConfig contains scoring and galaxy advancement settings
type ProgressionConfig struct {
	KillExploration    float64 `json:"killExploration" toml:"kill_exploration"`
	ExploreStep        float64 `json:"exploreStep" toml:"explore_step"`
	BossThreshold      float64 `json:"bossThreshold" toml:"boss_threshold"`
	BossBonusPerGalaxy int     `json:"bossBonusPerGalaxy" toml:"boss_bonus_per_galaxy"`
}

// LoadConfig loads a configuration from a .json or .toml file
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch format(path) {
	case "toml":
		if _, err := toml.Decode(string(data), config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveConfig saves a configuration to a .json or .toml file
func SaveConfig(config *GameConfig, path string) error {
	var data []byte
	switch format(path) {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = buf.Bytes()
	default:
		var err error
		data, err = json.MarshalIndent(config, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func format(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "json"
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Difficulty:   Normal,
		Seed:         1,
		StartGalaxy:  1,
		MaxDeltaTime: 0.1,
		Arena: ArenaConfig{
			Radius: 200,
		},
		Player: PlayerConfig{
			MaxHealth:      100,
			Lives:          3,
			HitRadius:      1.5,
			FireCooldown:   0.15,
			BulletSpeed:    120,
			BulletLifetime: 2,
			BulletRadius:   0.5,
			BulletDamage:   1,
			MuzzleOffset:   2,
			ContactDamage:  20,
			Acceleration:   60,
			MaxSpeed:       50,
			Drag:           0.5,
		},
		Enemies: EnemiesConfig{
			Chaser: EnemyStats{
				Speed:          15,
				DetectionRange: 400,
				Health:         2,
				Points:         100,
				HitRadius:      1.5,
			},
			Shooter: EnemyStats{
				Speed:          10,
				DetectionRange: 300,
				FireInterval:   2,
				Health:         3,
				Points:         150,
				HitRadius:      1.5,
			},
			SpeedGrowth:       1.1,
			HealthScale:       0.5,
			FireIntervalDecay: 0.9,
			MinFireInterval:   0.6,
			NearDistance:      30,
			FarDistance:       60,
			Drag:              0.95,
			BulletSpeed:       40,
			BulletLifetime:    3,
			BulletRadius:      0.5,
			BulletDamage:      10,
		},
		Spawner: SpawnerConfig{
			BaseInterval:     2,
			IntervalStep:     0.2,
			MinInterval:      0.5,
			BaseMax:          15,
			PerGalaxy:        5,
			SafeDistance:     45,
			MaxAttempts:      20,
			ChaserWeight:     0.7,
			VerticalSpread:   10,
			FallbackPosition: [3]float64{0, 0, -180},
		},
		Boss: BossConfig{
			BaseHealth:         1000,
			IntroDelay:         3,
			HitRadius:          8,
			Distance:           90,
			ProjectileSpeed:    30,
			ProjectileLifetime: 5,
			ProjectileRadius:   1,
			BaseDamage:         10,
			BeamMultiplier:     1.5,
			CircleStagger:      0.05,
			BeamStagger:        0.1,
			BeamSpread:         0.3,
			MissileTurnRate:    0.1,
		},
		Progression: ProgressionConfig{
			KillExploration:    2,
			ExploreStep:        5,
			BossThreshold:      75,
			BossBonusPerGalaxy: 500,
		},
	}
}

// Validate reports every impossible value in the configuration
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, field, reason string) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %s", field, reason))
		}
	}

	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		errs = append(errs, err)
	}
	check(c.StartGalaxy >= 1, "startGalaxy", "must be at least 1")
	check(c.MaxDeltaTime > 0, "maxDeltaTime", "must be positive")
	check(c.Arena.Radius > 0, "arena.radius", "must be positive")

	check(c.Player.MaxHealth > 0, "player.maxHealth", "must be positive")
	check(c.Player.Lives >= 1, "player.lives", "must be at least 1")
	check(c.Player.HitRadius > 0, "player.hitRadius", "must be positive")
	check(c.Player.BulletLifetime > 0, "player.bulletLifetime", "must be positive")
	check(c.Player.BulletRadius > 0, "player.bulletRadius", "must be positive")
	check(c.Player.Acceleration >= 0, "player.acceleration", "must not be negative")
	check(c.Player.MaxSpeed > 0, "player.maxSpeed", "must be positive")
	check(c.Player.Drag >= 0, "player.drag", "must not be negative")

	enemies := []struct {
		name  string
		stats EnemyStats
	}{{"chaser", c.Enemies.Chaser}, {"shooter", c.Enemies.Shooter}}
	for _, e := range enemies {
		check(e.stats.Health > 0, "enemies."+e.name+".health", "must be positive")
		check(e.stats.HitRadius > 0, "enemies."+e.name+".hitRadius", "must be positive")
		check(e.stats.Speed >= 0, "enemies."+e.name+".speed", "must not be negative")
	}
	check(c.Enemies.Drag > 0 && c.Enemies.Drag <= 1, "enemies.drag", "must be in (0, 1]")
	check(c.Enemies.NearDistance < c.Enemies.FarDistance, "enemies.nearDistance", "must be below farDistance")
	check(c.Enemies.BulletLifetime > 0, "enemies.bulletLifetime", "must be positive")

	check(c.Spawner.MaxAttempts >= 1, "spawner.maxAttempts", "must be at least 1")
	check(c.Spawner.BaseMax >= 0, "spawner.baseMax", "must not be negative")
	check(c.Spawner.ChaserWeight >= 0 && c.Spawner.ChaserWeight <= 1, "spawner.chaserWeight", "must be in [0, 1]")
	check(c.Spawner.SafeDistance < c.Arena.Radius, "spawner.safeDistance", "must be inside the arena")

	check(c.Boss.BaseHealth > 0, "boss.baseHealth", "must be positive")
	check(c.Boss.HitRadius > 0, "boss.hitRadius", "must be positive")
	check(c.Boss.ProjectileLifetime > 0, "boss.projectileLifetime", "must be positive")
	check(c.Boss.MissileTurnRate > 0 && c.Boss.MissileTurnRate <= 1, "boss.missileTurnRate", "must be in (0, 1]")

	check(c.Progression.BossThreshold > 0 && c.Progression.BossThreshold <= 100, "progression.bossThreshold", "must be in (0, 100]")

	return errors.Join(errs...)
}
