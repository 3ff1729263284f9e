// pkg/physics/collision_test.go
package physics

import (
	"testing"
)

func TestSphere_Collides(t *testing.T) {
	tests := []struct {
		name     string
		sphere1  Sphere
		sphere2  Sphere
		expected bool
	}{
		{
			name:     "spheres_touching",
			sphere1:  Sphere{Center: Vec3{0, 0, 0}, Radius: 5},
			sphere2:  Sphere{Center: Vec3{10, 0, 0}, Radius: 5},
			expected: false, // Distance equals sum of radii, collision logic uses <
		},
		{
			name:     "spheres_overlapping",
			sphere1:  Sphere{Center: Vec3{0, 0, 0}, Radius: 5},
			sphere2:  Sphere{Center: Vec3{0, 5, 0}, Radius: 5},
			expected: true,
		},
		{
			name:     "spheres_apart",
			sphere1:  Sphere{Center: Vec3{0, 0, 0}, Radius: 5},
			sphere2:  Sphere{Center: Vec3{0, 0, 15}, Radius: 5},
			expected: false,
		},
		{
			name:     "same_center",
			sphere1:  Sphere{Center: Vec3{1, 1, 1}, Radius: 3},
			sphere2:  Sphere{Center: Vec3{1, 1, 1}, Radius: 2},
			expected: true,
		},
		{
			name:     "diagonal_overlap",
			sphere1:  Sphere{Center: Vec3{0, 0, 0}, Radius: 2},
			sphere2:  Sphere{Center: Vec3{1, 2, 2}, Radius: 1.5},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.sphere1.Collides(tt.sphere2)
			if result != tt.expected {
				t.Errorf("Sphere.Collides() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
