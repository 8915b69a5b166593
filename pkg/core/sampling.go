package core

import "math"

// PCGHash permutes a 32-bit input with the PCG output function (multiply-add,
// data-dependent xorshift, multiply, xorshift)
func PCGHash(input uint32) uint32 {
	state := input*747796405 + 2891336453
	word := ((state >> ((state >> 28) + 4)) ^ state) * 277803737
	return (word >> 22) ^ word
}

// RNG is a deterministic random generator with 32 bits of state.
// Each pixel owns one; it must not be shared between goroutines.
type RNG struct {
	seed uint32
}

// NewRNG creates a generator starting from seed
func NewRNG(seed uint32) *RNG {
	return &RNG{seed: seed}
}

// PixelSeed returns the seed for pixel (x, y) of an image that is width pixels wide
func PixelSeed(x, y, width int) uint32 {
	return uint32(x + y*width)
}

// Seed returns the current state
func (r *RNG) Seed() uint32 {
	return r.seed
}

// Float advances the state and returns a value in [0, 1]
func (r *RNG) Float() float64 {
	r.seed = PCGHash(r.seed)
	return float64(r.seed) / float64(math.MaxUint32)
}

// Uniform returns a value in [min, max]
func (r *RNG) Uniform(min, max float64) float64 {
	return min + (max-min)*r.Float()
}

// UniformVec3 returns a vector of three independent Uniform(min, max) draws
func (r *RNG) UniformVec3(min, max float64) Vec3 {
	x := r.Uniform(min, max)
	y := r.Uniform(min, max)
	z := r.Uniform(min, max)
	return NewVec3(x, y, z)
}

// Get2D returns two values in [0, 1]
func (r *RNG) Get2D() Vec2 {
	x := r.Float()
	y := r.Float()
	return NewVec2(x, y)
}

// InUnitSphere rejection-samples the [-1,1]³ cube until the point lies strictly inside the unit sphere
func (r *RNG) InUnitSphere() Vec3 {
	for {
		p := r.UniformVec3(-1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// UnitVector returns a random direction on the unit sphere
func (r *RNG) UnitVector() Vec3 {
	return r.InUnitSphere().Normalize()
}

// InCone returns a unit direction within halfAngle radians of axis.
// The polar angle is sqrt(ξ)·halfAngle, so samples cluster toward the axis.
func (r *RNG) InCone(axis Vec3, halfAngle float64) Vec3 {
	xi := r.Get2D()
	phi := 2.0 * math.Pi * xi.X
	theta := math.Sqrt(xi.Y) * halfAngle

	sinTheta, cosTheta := math.Sincos(theta)
	local := NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, cosTheta)

	tangent, bitangent := OrthonormalBasis(axis)
	world := tangent.MulScalar(local.X).
		Add(bitangent.MulScalar(local.Y)).
		Add(axis.MulScalar(local.Z))
	return world.Normalize()
}

// OrthonormalBasis returns two unit vectors that together with the unit vector n form a right-handed frame
func OrthonormalBasis(n Vec3) (tangent, bitangent Vec3) {
	helper := NewVec3(0, 0, 1)
	if math.Abs(n.Z) >= 0.999 {
		helper = NewVec3(1, 0, 0)
	}
	tangent = helper.Cross(n).Normalize()
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}
