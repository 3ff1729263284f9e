// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starstrike/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// BaseEntity contains common state for every simulated object.
// Identity comes from the embedded ecs.BasicEntity so ids are unique
// across enemies, bullets and bosses.
type BaseEntity struct {
	ecs.BasicEntity
	Position physics.Vec3
	Velocity physics.Vec3
	Rotation physics.Orientation
	Radius   float64
	Alive    bool
}

func newBaseEntity(kind string, position physics.Vec3, radius float64) (BaseEntity, error) {
	if !(radius > 0) {
		return BaseEntity{}, configError(kind, "radius", radius, "must be positive")
	}
	return BaseEntity{
		BasicEntity: ecs.NewBasic(),
		Position:    position,
		Radius:      radius,
		Alive:       true,
	}, nil
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return ID(e.BasicEntity.ID())
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vec3 {
	return e.Position
}

// GetCollider returns the entity's collision shape
func (e *BaseEntity) GetCollider() physics.Sphere {
	return physics.Sphere{
		Center: e.Position,
		Radius: e.Radius,
	}
}

// IsAlive reports whether the entity still takes part in the simulation
func (e *BaseEntity) IsAlive() bool {
	return e.Alive
}

// Kill marks the entity not alive. It is pruned from its store at the end of the tick.
func (e *BaseEntity) Kill() {
	e.Alive = false
}

// Integrate moves the entity along its velocity
func (e *BaseEntity) Integrate(deltaTime float64) {
	e.Position = e.Position.Add(e.Velocity.Mul(deltaTime))
}
