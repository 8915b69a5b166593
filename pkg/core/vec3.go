package core

import "github.com/fogleman/fauxgl"

// Vec3 is the three-component vector used for points, directions and colors.
// Arithmetic comes from fauxgl (Add, Sub, Mul, MulScalar, Dot, Cross, Normalize, ...).
type Vec3 = fauxgl.Vector

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return fauxgl.V(x, y, z)
}

// Vec2 represents a 2D vector, used for image-plane coordinates
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Ray represents a ray with an origin and direction.
// The direction is not normalized by construction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.MulScalar(t))
}
