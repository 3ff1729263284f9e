// pkg/physics/collision.go
package physics

// Sphere represents a spherical collision shape
type Sphere struct {
	Center Vec3
	Radius float64
}

// Collides checks if two spheres overlap. Touching spheres do not collide.
func (s Sphere) Collides(other Sphere) bool {
	return Distance(s.Center, other.Center) < s.Radius+other.Radius
}
