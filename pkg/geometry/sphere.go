package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SphereSampleHalfAngle is the half-angle, in radians, of the cone used to pick light sample points on a sphere
const SphereSampleHalfAngle = 0.5

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
	}
}

// Intersect solves |O + tD - C|² = r² and returns the smaller root
func (s *Sphere) Intersect(ray core.Ray) float64 {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return Miss
	}

	root := (-halfB - math.Sqrt(discriminant)) / a
	// Also rejects NaN from degenerate directions
	if !(root > Epsilon) {
		return Miss
	}
	return root
}

// Normal returns the unit normal at the hit point, facing the incoming ray
func (s *Sphere) Normal(ray core.Ray, distance float64) core.Vec3 {
	outward := ray.At(distance).Sub(s.Center).DivScalar(s.Radius)
	return faceForward(ray, outward)
}

// Position returns the sphere center
func (s *Sphere) Position() core.Vec3 {
	return s.Center
}

// RandomPoint returns a point on the sphere inside a cone around hint,
// approximating the cap visible from the direction hint points to
func (s *Sphere) RandomPoint(rng *core.RNG, hint core.Vec3) core.Vec3 {
	direction := rng.InCone(hint.Normalize(), SphereSampleHalfAngle)
	return s.Center.Add(direction.MulScalar(s.Radius))
}

func (s *Sphere) sealed() {}
