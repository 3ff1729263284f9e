package engine

import (
	"testing"

	"github.com/opd-ai/go-starstrike/pkg/entity"
	"github.com/opd-ai/go-starstrike/pkg/physics"
)

func TestSnapshot_EncodeDecode(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	if _, err := game.SpawnEnemy(entity.Shooter, physics.Vec3{10, 0, -80}); err != nil {
		t.Fatalf("SpawnEnemy failed: %v", err)
	}
	if _, err := game.FirePlayer(); err != nil {
		t.Fatalf("FirePlayer failed: %v", err)
	}
	game.Tick(0.1)

	snap := game.Snapshot()
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot failed: %v", err)
	}

	if decoded.Tick != 1 || decoded.Status != "active" || decoded.Galaxy != 1 {
		t.Errorf("unexpected header: tick %d status %q galaxy %d", decoded.Tick, decoded.Status, decoded.Galaxy)
	}
	if decoded.Player == nil || decoded.Player.Lives != 3 {
		t.Fatalf("expected player with 3 lives, got %+v", decoded.Player)
	}
	if len(decoded.Enemies) != len(snap.Enemies) || len(decoded.Bullets) != len(snap.Bullets) {
		t.Errorf("expected %d enemies and %d bullets, got %d and %d",
			len(snap.Enemies), len(snap.Bullets), len(decoded.Enemies), len(decoded.Bullets))
	}
	if decoded.Enemies[0].Position != snap.Enemies[0].Position {
		t.Errorf("expected enemy position %v, got %v", snap.Enemies[0].Position, decoded.Enemies[0].Position)
	}
	if decoded.Boss != nil {
		t.Error("expected no boss before activation")
	}
}

func TestDecodeSnapshot_Garbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Error("expected error decoding garbage")
	}
}

func TestSnapshot_BossDuringIntro(t *testing.T) {
	game := newStartedGame(t, defaultConfig())
	if _, err := game.ActivateBossBattle(); err != nil {
		t.Fatalf("ActivateBossBattle failed: %v", err)
	}

	snap := game.Snapshot()
	if snap.Boss == nil {
		t.Fatal("expected boss in snapshot during intro")
	}
	if snap.Boss.HealthRatio != 1 || snap.Boss.Phase != 1 {
		t.Errorf("expected full health phase 1 boss, got %+v", snap.Boss)
	}
	if err := game.DamageEntity(entity.ID(snap.Boss.ID), 100); err != nil {
		t.Fatalf("DamageEntity failed: %v", err)
	}
	if got := game.Snapshot().Boss.HealthRatio; got != 1 {
		t.Errorf("boss should be invulnerable during intro, health ratio %v", got)
	}
}
