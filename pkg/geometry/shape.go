package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const (
	// Miss is returned by Intersect when the ray does not hit the shape
	Miss = math.MaxFloat64

	// Epsilon is the parallelism and behind-origin threshold used inside intersection math
	// (single-precision machine epsilon)
	Epsilon = 1.1920929e-07
)

// Shape is a geometric primitive. The set of implementations is closed:
// *Sphere, *Triangle and *Plane.
type Shape interface {
	// Intersect returns the parametric distance to the nearest hit in front of the ray, or Miss
	Intersect(ray core.Ray) float64
	// Normal returns the unit surface normal at ray.At(distance), facing against the ray
	Normal(ray core.Ray, distance float64) core.Vec3
	// Position returns a representative point used to aim light sampling
	Position() core.Vec3
	// RandomPoint samples a point on the surface, biased toward hint where the shape supports it
	RandomPoint(rng *core.RNG, hint core.Vec3) core.Vec3

	sealed()
}

// Kind identifies the concrete primitive behind a Shape
type Kind int

const (
	KindSphere Kind = iota
	KindTriangle
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindTriangle:
		return "triangle"
	case KindPlane:
		return "plane"
	}
	return "unknown"
}

// KindOf returns the kind of s
func KindOf(s Shape) Kind {
	switch s.(type) {
	case *Sphere:
		return KindSphere
	case *Triangle:
		return KindTriangle
	case *Plane:
		return KindPlane
	}
	panic("geometry: unknown shape type")
}

// faceForward flips n so that it points against the incoming ray
func faceForward(ray core.Ray, n core.Vec3) core.Vec3 {
	if ray.Direction.Dot(n) > Epsilon {
		return n.Negate()
	}
	return n
}
