package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Plane represents the infinite plane dot(UnitNormal, P) + Distance = 0
type Plane struct {
	UnitNormal core.Vec3 // Normal vector (normalized)
	Distance   float64   // Signed distance term
}

// NewPlane creates a new plane. The normal is normalized.
func NewPlane(normal core.Vec3, distance float64) *Plane {
	return &Plane{
		UnitNormal: normal.Normalize(),
		Distance:   distance,
	}
}

// Intersect solves dot(N, O) + d = -t·dot(N, D)
func (p *Plane) Intersect(ray core.Ray) float64 {
	denominator := ray.Direction.Dot(p.UnitNormal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < Epsilon {
		return Miss
	}

	t := (p.UnitNormal.Dot(ray.Origin) + p.Distance) / -denominator
	if t < Epsilon {
		return Miss
	}
	return t
}

// Normal returns the plane normal, facing the incoming ray
func (p *Plane) Normal(ray core.Ray, distance float64) core.Vec3 {
	return faceForward(ray, p.UnitNormal)
}

// Position returns the point of the plane closest to the world origin
func (p *Plane) Position() core.Vec3 {
	return p.UnitNormal.MulScalar(-p.Distance)
}

// RandomPoint returns the zero vector; planes are not sampled as area lights
func (p *Plane) RandomPoint(rng *core.RNG, hint core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func (p *Plane) sealed() {}
