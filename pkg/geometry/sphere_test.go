package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func vecApproxEqual(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if dist := sphere.Intersect(ray); dist != Miss {
		t.Errorf("Expected miss, but got hit at t=%f", dist)
	}
}

func TestSphere_Intersect_FrontHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0)

	tests := []struct {
		name      string
		ray       core.Ray
		expectedT float64
	}{
		{"unit direction", core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)), 1.0},
		{"unnormalized direction", core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -2)), 0.5},
		{"glancing", core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1)), 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist := sphere.Intersect(tt.ray)
			if math.Abs(dist-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, dist)
			}
		})
	}
}

func TestSphere_Intersect_LeavingSurface(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5)

	directions := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 1, 1),
		core.NewVec3(1, 0, 0.2),
	}
	origin := core.NewVec3(0, 0, -0.5) // on the surface, outward normal +Z

	for _, d := range directions {
		if dist := sphere.Intersect(core.NewRay(origin, d)); dist != Miss {
			t.Errorf("Expected miss for ray leaving the surface along %v, got t=%f", d, dist)
		}
	}
}

func TestSphere_Intersect_BehindOrigin(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if dist := sphere.Intersect(ray); dist != Miss {
		t.Errorf("Expected miss for sphere behind the ray, got t=%f", dist)
	}
}

func TestSphere_Normal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 2.0)

	tests := []struct {
		name     string
		ray      core.Ray
		dist     float64
		expected core.Vec3
	}{
		{"outside hit", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 3, core.NewVec3(0, 0, 1)},
		{"inside hit is flipped", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), 2, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := sphere.Normal(tt.ray, tt.dist)
			if !vecApproxEqual(n, tt.expected, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expected, n)
			}
			if math.Abs(n.Length()-1) > 1e-9 {
				t.Errorf("Expected unit normal, got length %f", n.Length())
			}
			if tt.ray.Direction.Dot(n) > 0 {
				t.Errorf("Normal %v faces along the ray", n)
			}
		})
	}
}

func TestSphere_RandomPoint(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5)
	rng := core.NewRNG(3)
	hint := core.NewVec3(0, -1, 0)

	for i := 0; i < 500; i++ {
		p := sphere.RandomPoint(rng, hint)
		if math.Abs(p.Sub(sphere.Center).Length()-sphere.Radius) > 1e-9 {
			t.Fatalf("Point %v is not on the sphere", p)
		}
		dir := p.Sub(sphere.Center).Normalize()
		if dir.Dot(hint) < math.Cos(SphereSampleHalfAngle)-1e-9 {
			t.Fatalf("Point %v lies outside the sampling cone", p)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected Kind
	}{
		{NewSphere(core.NewVec3(0, 0, 0), 1), KindSphere},
		{NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)), KindTriangle},
		{NewPlane(core.NewVec3(0, 1, 0), 0), KindPlane},
	}

	for _, tt := range tests {
		if got := KindOf(tt.shape); got != tt.expected {
			t.Errorf("Expected %v, got %v", tt.expected, got)
		}
	}
}
