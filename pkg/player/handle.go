package player

import "github.com/opd-ai/go-starstrike/pkg/physics"

// Handle is an optional reference to the player's ship. Components hold a
// Handle instead of a *Ship so they keep working while no ship is attached.
// A nil *Handle behaves like a detached one.
type Handle struct {
	ship *Ship
}

// NewHandle returns a handle attached to ship, which may be nil
func NewHandle(ship *Ship) *Handle {
	return &Handle{ship: ship}
}

// Attach points the handle at ship
func (h *Handle) Attach(ship *Ship) {
	h.ship = ship
}

// Detach clears the reference
func (h *Handle) Detach() {
	h.ship = nil
}

// Ship returns the ship and whether one is attached
func (h *Handle) Ship() (*Ship, bool) {
	if h == nil || h.ship == nil {
		return nil, false
	}
	return h.ship, true
}

// Position returns the ship's position and whether one is attached
func (h *Handle) Position() (physics.Vec3, bool) {
	s, ok := h.Ship()
	if !ok {
		return physics.Vec3{}, false
	}
	return s.Position, true
}
