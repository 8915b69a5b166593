package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// SurfaceOffset is how far shadow and bounce rays start above the surface they leave
const SurfaceOffset = 0.001

// PathTracingIntegrator implements unidirectional path tracing with next-event estimation
// over diffuse surfaces and emissive primitives
type PathTracingIntegrator struct {
	scene    *scene.Scene
	maxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A path whose depth equals maxDepth is a primary (camera) ray.
func NewPathTracingIntegrator(sc *scene.Scene, maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		scene:    sc,
		maxDepth: maxDepth,
	}
}

// MaxDepth returns the bounce budget of primary rays
func (pt *PathTracingIntegrator) MaxDepth() int {
	return pt.maxDepth
}

// RayColor traces a primary ray with the full depth budget
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, rng *core.RNG) Sample {
	return pt.SampleDepth(ray, rng, pt.maxDepth)
}

// SampleDepth traces ray with the given remaining depth.
//
// The path is followed iteratively; throughput holds the product of the
// albedo·cosθ/255 factors of the bounces taken so far, so the result equals
//
//	radiance = direct/255 + albedo·cosθ·incoming/255
//
// expanded along the path.
func (pt *PathTracingIntegrator) SampleDepth(ray core.Ray, rng *core.RNG, depth int) Sample {
	var result Sample
	throughput := core.NewVec3(1, 1, 1)

	for ; ; depth-- {
		// If we've exceeded the ray bounce limit, no more light is gathered
		if depth <= 0 {
			result.Terminations++
			return result
		}

		hit := pt.scene.Intersect(ray)
		if !hit.Valid() {
			// Background is black
			result.Terminations++
			return result
		}

		mat := pt.scene.Material(hit.Index)
		if mat.IsEmissive() {
			result.Terminations++
			// Lights reached after a bounce were already counted by next-event estimation
			if depth == pt.maxDepth {
				emitted := mat.Albedo.MulScalar(mat.Emission / 255)
				result.Radiance = result.Radiance.Add(throughput.Mul(emitted))
			}
			return result
		}

		point := ray.At(hit.Distance)
		normal := pt.scene.Shape(hit.Index).Normal(ray, hit.Distance)

		direct, tested := pt.sampleLights(point, normal, rng)
		result.Terminations += tested
		result.Radiance = result.Radiance.Add(throughput.Mul(direct.DivScalar(255)))

		// Bounce direction is the normal perturbed by a random unit vector.
		// It is not renormalized, and the cosine term uses it as is.
		direction := normal.Add(rng.UnitVector())
		cosTheta := math.Max(direction.Dot(normal), 0)
		throughput = throughput.Mul(mat.Albedo.MulScalar(cosTheta / 255))

		ray = core.NewRay(point.Add(normal.MulScalar(SurfaceOffset)), direction)
		result.Terminations++
	}
}

// sampleLights estimates direct lighting at point by sampling one point on every light.
// It returns the unnormalized contribution and the number of lights tested.
func (pt *PathTracingIntegrator) sampleLights(point, normal core.Vec3, rng *core.RNG) (core.Vec3, int) {
	var direct core.Vec3
	lights := pt.scene.Lights()

	for _, lightIndex := range lights {
		light := pt.scene.Shape(lightIndex)

		// Bias the sample toward the side of the light facing the shading point
		lightPoint := light.RandomPoint(rng, point.Sub(light.Position()))

		toLight := lightPoint.Sub(point)
		distanceSquared := toLight.LengthSquared()
		lightDirection := toLight.Normalize()

		shadowRay := core.NewRay(point.Add(normal.MulScalar(SurfaceOffset)), lightDirection)
		shadowHit := pt.scene.Intersect(shadowRay)

		// Only an unobstructed hit on this exact light counts
		if shadowHit.Index == lightIndex {
			mat := pt.scene.Material(lightIndex)
			cosine := math.Max(lightDirection.Dot(normal), 0)
			direct = direct.Add(mat.Albedo.MulScalar(mat.Emission * cosine / distanceSquared))
		}
	}

	return direct, len(lights)
}
