package main

import (
	"math"

	"github.com/opd-ai/go-starstrike/pkg/engine"
	"github.com/opd-ai/go-starstrike/pkg/physics"
)

// autopilot flies the player ship toward the nearest target and fires when
// lined up. It drives the simulation when no human is at the controls.
type autopilot struct {
	turnGain     float64
	maxTurnRate  float64
	fireAngle    float64
	standOff     float64
	exploreEvery float64
	lastExplore  float64
}

func newAutopilot() *autopilot {
	return &autopilot{
		turnGain:     3,
		maxTurnRate:  2.5,
		fireAngle:    0.15,
		standOff:     40,
		exploreEvery: 2,
	}
}

// decision is what the autopilot wants to do this tick
type decision struct {
	controls engine.Controls
	fire     bool
	explore  bool
}

// decide picks steering inputs from a snapshot
func (a *autopilot) decide(snap *engine.Snapshot) decision {
	var d decision
	if snap.Player == nil {
		return d
	}

	if snap.Time-a.lastExplore >= a.exploreEvery {
		a.lastExplore = snap.Time
		d.explore = true
	}

	target, ok := nearestTarget(snap)
	if !ok {
		return d
	}

	offset := target.Sub(snap.Player.Position)
	dist := offset.Len()
	if dist == 0 {
		return d
	}

	yaw, pitch := headingTo(offset)
	yawErr := wrapAngle(yaw - snap.Player.Rotation.X())
	pitchErr := pitch - snap.Player.Rotation.Y()

	d.controls = engine.Controls{
		Thrust:    dist > a.standOff,
		YawRate:   clamp(yawErr*a.turnGain, a.maxTurnRate),
		PitchRate: clamp(pitchErr*a.turnGain, a.maxTurnRate),
	}
	d.fire = math.Abs(yawErr) < a.fireAngle && math.Abs(pitchErr) < a.fireAngle
	return d
}

// nearestTarget returns the closest alive enemy, or the boss if it is closer
func nearestTarget(snap *engine.Snapshot) (physics.Vec3, bool) {
	var (
		best  physics.Vec3
		found bool
		bestD = math.Inf(1)
	)
	consider := func(pos physics.Vec3) {
		if d := pos.Sub(snap.Player.Position).Len(); d < bestD {
			best, bestD, found = pos, d, true
		}
	}

	for _, e := range snap.Enemies {
		consider(e.Position)
	}
	if snap.Boss != nil && snap.Boss.State == "active" {
		consider(snap.Boss.Position)
	}
	return best, found
}

// headingTo returns the yaw and pitch that point the ship's forward axis
// along offset. Yaw 0 faces -Z.
func headingTo(offset physics.Vec3) (yaw, pitch float64) {
	yaw = math.Atan2(-offset.X(), -offset.Z())
	pitch = math.Asin(offset.Y() / offset.Len())
	return yaw, pitch
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
