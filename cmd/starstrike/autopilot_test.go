package main

import (
	"math"
	"testing"

	"github.com/opd-ai/go-starstrike/pkg/engine"
	"github.com/opd-ai/go-starstrike/pkg/physics"
)

func TestHeadingTo(t *testing.T) {
	tests := []struct {
		name   string
		offset physics.Vec3
		yaw    float64
		pitch  float64
	}{
		{"straight ahead", physics.Vec3{0, 0, -10}, 0, 0},
		{"left", physics.Vec3{-10, 0, 0}, math.Pi / 2, 0},
		{"right", physics.Vec3{10, 0, 0}, -math.Pi / 2, 0},
		{"above", physics.Vec3{0, 10, -10}, 0, math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yaw, pitch := headingTo(tt.offset)
			if math.Abs(yaw-tt.yaw) > 1e-9 || math.Abs(pitch-tt.pitch) > 1e-9 {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.yaw, tt.pitch, yaw, pitch)
			}
		})
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}

	for _, tt := range tests {
		if got := wrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wrapAngle(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestAutopilot_Decide(t *testing.T) {
	player := &engine.PlayerState{Position: physics.Vec3{0, 0, 0}}

	t.Run("no player", func(t *testing.T) {
		d := newAutopilot().decide(&engine.Snapshot{})
		if d.fire || d.explore || d.controls.Thrust {
			t.Errorf("expected idle decision, got %+v", d)
		}
	})

	t.Run("lined up on distant enemy", func(t *testing.T) {
		snap := &engine.Snapshot{
			Player: player,
			Enemies: []engine.EnemyState{
				{Position: physics.Vec3{60, 0, 60}},
				{Position: physics.Vec3{0, 0, -80}},
			},
		}
		d := newAutopilot().decide(snap)
		if !d.fire || !d.controls.Thrust {
			t.Errorf("expected fire with thrust, got %+v", d)
		}
		if d.controls.YawRate != 0 {
			t.Errorf("expected no turn, got yaw rate %v", d.controls.YawRate)
		}
	})

	t.Run("turns toward enemy on the left", func(t *testing.T) {
		snap := &engine.Snapshot{
			Player:  player,
			Enemies: []engine.EnemyState{{Position: physics.Vec3{-20, 0, 0}}},
		}
		d := newAutopilot().decide(snap)
		if d.fire || d.controls.Thrust {
			t.Errorf("expected no fire or thrust inside stand-off, got %+v", d)
		}
		if d.controls.YawRate != 2.5 {
			t.Errorf("expected clamped yaw rate 2.5, got %v", d.controls.YawRate)
		}
	})

	t.Run("ignores boss during intro", func(t *testing.T) {
		snap := &engine.Snapshot{
			Player: player,
			Boss:   &engine.BossState{State: "intro", Position: physics.Vec3{0, 0, -90}},
		}
		if _, ok := nearestTarget(snap); ok {
			t.Error("expected no target while boss is in intro")
		}
	})

	t.Run("explores periodically", func(t *testing.T) {
		pilot := newAutopilot()
		var explored int
		for _, now := range []float64{0.5, 2.0, 2.5, 4.1} {
			if pilot.decide(&engine.Snapshot{Time: now, Player: player}).explore {
				explored++
			}
		}
		if explored != 2 {
			t.Errorf("expected 2 explore actions, got %d", explored)
		}
	})
}
