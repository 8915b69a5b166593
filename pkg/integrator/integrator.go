package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Sample is the result of tracing one camera ray
type Sample struct {
	Radiance core.Vec3 // Radiance carried back along the ray

	// Terminations counts terminal events along the path: misses, light hits,
	// exhausted depth, one per light tested during next-event estimation and
	// one per bounce. Pixels are normalized by the sum of these, not by the
	// number of camera rays.
	Terminations int
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor traces a primary ray. rng is owned by the calling pixel loop.
	RayColor(ray core.Ray, rng *core.RNG) Sample
}
