// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the 3D vector used for every position and velocity in the simulation.
type Vec3 = mgl64.Vec3

// Zero is the origin
var Zero = Vec3{}

// Distance returns the Euclidean distance between two points
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}

// Normalize returns a unit vector in the same direction, or the zero vector
// when v has no length. mgl64's Normalize divides by zero in that case.
func Normalize(v Vec3) Vec3 {
	length := v.Len()
	if length == 0 {
		return Vec3{}
	}
	return v.Mul(1 / length)
}

// Direction returns the unit vector pointing from one point to another
func Direction(from, to Vec3) Vec3 {
	return Normalize(to.Sub(from))
}

// Lerp linearly interpolates between a and b by t
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// ClampLength limits the magnitude of v to max while keeping its direction
func ClampLength(v Vec3, max float64) Vec3 {
	length := v.Len()
	if length <= max || length == 0 {
		return v
	}
	return v.Mul(max / length)
}

// ClampToRadius keeps a position inside a sphere of the given radius around the origin
func ClampToRadius(pos Vec3, radius float64) Vec3 {
	return ClampLength(pos, radius)
}

// Orientation is a yaw/pitch/roll rotation in radians.
// Yaw 0 and pitch 0 face down the negative Z axis.
type Orientation struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

// Forward returns the unit vector the orientation faces
func (o Orientation) Forward() Vec3 {
	cp := math.Cos(o.Pitch)
	return Vec3{
		-math.Sin(o.Yaw) * cp,
		math.Sin(o.Pitch),
		-math.Cos(o.Yaw) * cp,
	}
}

// LookAlong builds an orientation facing along dir. A zero dir yields the zero orientation.
func LookAlong(dir Vec3) Orientation {
	dir = Normalize(dir)
	if dir.Len() == 0 {
		return Orientation{}
	}
	return Orientation{
		Yaw:   math.Atan2(-dir.X(), -dir.Z()),
		Pitch: math.Asin(mgl64.Clamp(dir.Y(), -1, 1)),
	}
}

// LookAt builds an orientation at from facing to
func LookAt(from, to Vec3) Orientation {
	return LookAlong(to.Sub(from))
}

// FromYawPitch creates a vector from yaw/pitch angles and a magnitude
func FromYawPitch(yaw, pitch, magnitude float64) Vec3 {
	return Orientation{Yaw: yaw, Pitch: pitch}.Forward().Mul(magnitude)
}

// RotateYaw rotates v around the Y axis by angle radians
func RotateYaw(v Vec3, angle float64) Vec3 {
	return mgl64.Rotate3DY(angle).Mul3x1(v)
}
