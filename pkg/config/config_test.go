package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if config.Difficulty != Normal {
		t.Errorf("Expected difficulty normal, got %q", config.Difficulty)
	}
	if config.StartGalaxy != 1 {
		t.Errorf("Expected StartGalaxy 1, got %d", config.StartGalaxy)
	}
	if config.Spawner.BaseMax != 15 {
		t.Errorf("Expected Spawner.BaseMax 15, got %d", config.Spawner.BaseMax)
	}
	if config.Spawner.MaxAttempts != 20 {
		t.Errorf("Expected Spawner.MaxAttempts 20, got %d", config.Spawner.MaxAttempts)
	}
	if config.Boss.IntroDelay != 3 {
		t.Errorf("Expected Boss.IntroDelay 3, got %f", config.Boss.IntroDelay)
	}
	if config.Progression.BossThreshold != 75 {
		t.Errorf("Expected Progression.BossThreshold 75, got %f", config.Progression.BossThreshold)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "starstrike"+ext)

			original := DefaultConfig()
			original.Difficulty = Hard
			original.Seed = 99
			original.Arena.Radius = 321
			original.Spawner.FallbackPosition = [3]float64{1, 2, 3}

			if err := SaveConfig(original, path); err != nil {
				t.Fatalf("SaveConfig failed: %v", err)
			}

			loaded, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}

			if loaded.Difficulty != Hard {
				t.Errorf("Expected difficulty hard, got %q", loaded.Difficulty)
			}
			if loaded.Seed != 99 {
				t.Errorf("Expected seed 99, got %d", loaded.Seed)
			}
			if loaded.Arena.Radius != 321 {
				t.Errorf("Expected arena radius 321, got %f", loaded.Arena.Radius)
			}
			if loaded.Spawner.FallbackPosition != [3]float64{1, 2, 3} {
				t.Errorf("Expected fallback (1,2,3), got %v", loaded.Spawner.FallbackPosition)
			}
			if loaded.Enemies.Shooter.Points != original.Enemies.Shooter.Points {
				t.Errorf("Expected shooter points %d, got %d", original.Enemies.Shooter.Points, loaded.Enemies.Shooter.Points)
			}
		})
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.toml")
	content := "difficulty = \"easy\"\n\n[arena]\nradius = 150.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Difficulty != Easy {
		t.Errorf("Expected easy, got %q", config.Difficulty)
	}
	if config.Arena.Radius != 150 {
		t.Errorf("Expected radius 150, got %f", config.Arena.Radius)
	}
	if config.Boss.BaseHealth != 1000 {
		t.Errorf("Expected default boss health 1000, got %f", config.Boss.BaseHealth)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid_json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		os.WriteFile(path, []byte("{not json"), 0o644)
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("invalid_toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		os.WriteFile(path, []byte("arena = = 1"), 0o644)
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestValidate_RejectsImpossibleValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
		field  string
	}{
		{"zero_arena", func(c *GameConfig) { c.Arena.Radius = 0 }, "arena.radius"},
		{"negative_chaser_health", func(c *GameConfig) { c.Enemies.Chaser.Health = -1 }, "enemies.chaser.health"},
		{"zero_shooter_radius", func(c *GameConfig) { c.Enemies.Shooter.HitRadius = 0 }, "enemies.shooter.hitRadius"},
		{"no_attempts", func(c *GameConfig) { c.Spawner.MaxAttempts = 0 }, "spawner.maxAttempts"},
		{"bad_weight", func(c *GameConfig) { c.Spawner.ChaserWeight = 1.5 }, "spawner.chaserWeight"},
		{"inverted_band", func(c *GameConfig) { c.Enemies.NearDistance = 80 }, "enemies.nearDistance"},
		{"bad_difficulty", func(c *GameConfig) { c.Difficulty = "nightmare" }, "nightmare"},
		{"zero_galaxy", func(c *GameConfig) { c.StartGalaxy = 0 }, "startGalaxy"},
		{"zero_max_speed", func(c *GameConfig) { c.Player.MaxSpeed = 0 }, "player.maxSpeed"},
		{"negative_drag", func(c *GameConfig) { c.Player.Drag = -1 }, "player.drag"},
		{"threshold_over_100", func(c *GameConfig) { c.Progression.BossThreshold = 120 }, "progression.bossThreshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error mentioning %q, got %v", tt.field, err)
			}
		})
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		health  float64
		damage  float64
		wantErr bool
	}{
		{"easy", Easy, 0.75, 0.75, false},
		{"Normal", Normal, 1, 1, false},
		{"", Normal, 1, 1, false},
		{" HARD ", Hard, 1.5, 1.5, false},
		{"insane", Normal, 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if tt.wantErr != (err != nil) {
				t.Fatalf("ParseDifficulty(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got.HealthMultiplier() != tt.health {
				t.Errorf("HealthMultiplier() = %v, want %v", got.HealthMultiplier(), tt.health)
			}
			if got.DamageMultiplier() != tt.damage {
				t.Errorf("DamageMultiplier() = %v, want %v", got.DamageMultiplier(), tt.damage)
			}
		})
	}
}
