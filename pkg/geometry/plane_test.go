package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestPlane_Intersect(t *testing.T) {
	// Horizontal plane at y=-1: dot((0,1,0), P) + 1 = 0
	plane := NewPlane(core.NewVec3(0, 1, 0), 1)

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{"straight down", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), true, 2.0},
		{"from below", core.NewRay(core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0)), true, 2.0},
		{"parallel", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)), false, 0},
		{"behind", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)), false, 0},
		{"leaving surface", core.NewRay(core.NewVec3(5, -1, 2), core.NewVec3(0.3, 1, 0)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist := plane.Intersect(tt.ray)
			if !tt.shouldHit {
				if dist != Miss {
					t.Errorf("Expected miss, got t=%f", dist)
				}
				return
			}
			if math.Abs(dist-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, dist)
			}
		})
	}
}

func TestPlane_Normal(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 2, 0), 0)

	if plane.UnitNormal != core.NewVec3(0, 1, 0) {
		t.Fatalf("Expected normalized normal, got %v", plane.UnitNormal)
	}

	down := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	if n := plane.Normal(down, 1); n != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected (0,1,0), got %v", n)
	}

	up := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))
	if n := plane.Normal(up, 1); n != core.NewVec3(0, -1, 0) {
		t.Errorf("Expected (0,-1,0), got %v", n)
	}
}

func TestPlane_PositionAndRandomPoint(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 1, 0), 1)

	if p := plane.Position(); !vecApproxEqual(p, core.NewVec3(0, -1, 0), 1e-12) {
		t.Errorf("Expected (0,-1,0), got %v", p)
	}
	if p := plane.RandomPoint(core.NewRNG(1), core.NewVec3(0, 1, 0)); p != (core.Vec3{}) {
		t.Errorf("Expected zero vector, got %v", p)
	}
}
