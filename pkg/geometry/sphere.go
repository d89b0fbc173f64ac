package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// SphereNode is a sphere leaf of the scene graph
type SphereNode struct {
	Position core.Vec3
	Radius   float32
	Material core.Material
}

// NewSphere creates a new sphere node
func NewSphere(position core.Vec3, radius float32, material core.Material) *SphereNode {
	return &SphereNode{
		Position: position,
		Radius:   radius,
		Material: material,
	}
}

// Intersect solves |o + t·d − center|² = radius² and returns both roots.
// ok is false when the ray misses the sphere.
func (s *SphereNode) Intersect(ray core.Ray) (t1, t2 float32, ok bool) {
	co := ray.Origin.Subtract(s.Position)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := co.Dot(ray.Direction) * 2
	c := co.Dot(co) - s.Radius*s.Radius

	delta := b*b - 4*a*c
	if delta < 0 {
		return 0, 0, false
	}

	sqrtDelta := math32.Sqrt(delta)
	t1 = (-b + sqrtDelta) / (2 * a)
	t2 = (-b - sqrtDelta) / (2 * a)
	return t1, t2, true
}

// Hit tests if a ray intersects with the sphere.
// Only the nearer root is considered: a ray starting inside the sphere does not hit it.
func (s *SphereNode) Hit(ray core.Ray) (*core.Hit, bool) {
	t1, t2, ok := s.Intersect(ray)
	if !ok {
		return nil, false
	}

	distance := math32.Min(t1, t2)
	if distance < 0 {
		return nil, false
	}

	position := ray.At(distance)
	return &core.Hit{
		Position: position,
		Normal:   position.Subtract(s.Position).Normalize(),
		Distance: distance,
		Material: s.Material,
	}, true
}
