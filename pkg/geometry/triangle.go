package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	edge1      core.Vec3 // V1 - V0
	edge2      core.Vec3 // V2 - V0
	normal     core.Vec3 // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	t := &Triangle{
		V0: v0,
		V1: v1,
		V2: v2,
	}

	// Precompute edges and normal, they are needed on every intersection
	t.edge1 = v1.Sub(v0)
	t.edge2 = v2.Sub(v0)
	t.normal = t.edge1.Cross(t.edge2).Normalize()

	return t
}

// Intersect tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) float64 {
	h := ray.Direction.Cross(t.edge2)
	det := t.edge1.Dot(h)

	// Ray lies in (or parallel to) the plane of the triangle
	if det > -Epsilon && det < Epsilon {
		return Miss
	}

	f := 1.0 / det
	s := ray.Origin.Sub(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return Miss
	}

	q := s.Cross(t.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return Miss
	}

	dist := f * t.edge2.Dot(q)
	if dist <= Epsilon {
		return Miss
	}
	return dist
}

// Normal returns the precomputed face normal, facing the incoming ray
func (t *Triangle) Normal(ray core.Ray, distance float64) core.Vec3 {
	return faceForward(ray, t.normal)
}

// Position returns the centroid
func (t *Triangle) Position() core.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).DivScalar(3)
}

// RandomPoint returns a uniformly distributed point on the triangle. hint is ignored.
func (t *Triangle) RandomPoint(rng *core.RNG, hint core.Vec3) core.Vec3 {
	r1 := rng.Float()
	r2 := rng.Float()
	if r1+r2 > 1 {
		r1 = 1 - r1
		r2 = 1 - r2
	}
	r0 := 1 - r1 - r2
	return t.V0.MulScalar(r0).Add(t.V1.MulScalar(r1)).Add(t.V2.MulScalar(r2))
}

func (t *Triangle) sealed() {}
