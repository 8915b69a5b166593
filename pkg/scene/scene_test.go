package scene

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

func emptyScene() *Scene {
	return NewScene(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1,
	})
}

func TestScene_AddShape_LightRegistration(t *testing.T) {
	tests := []struct {
		name      string
		emission  float64
		wantLight bool
	}{
		{"zero emission", 0.0, false},
		{"below epsilon", 1e-8, false},
		{"just above epsilon", 0.0001, true},
		{"bright", 10000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := emptyScene()
			index := s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5), core.NewVec3(255, 255, 255), tt.emission)

			if index != 0 {
				t.Errorf("Expected index 0, got %d", index)
			}
			isLight := len(s.Lights()) == 1 && s.Lights()[0] == index
			if isLight != tt.wantLight {
				t.Errorf("Expected light registration %t, got lights %v", tt.wantLight, s.Lights())
			}
		})
	}
}

func TestScene_AddShape_PreservesOrder(t *testing.T) {
	s := emptyScene()
	s.AddShape(geometry.NewPlane(core.NewVec3(0, 1, 0), 1), core.NewVec3(10, 10, 10), 0)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5), core.NewVec3(20, 20, 20), 5)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -4), 0.5), core.NewVec3(30, 30, 30), 0)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -6), 0.5), core.NewVec3(40, 40, 40), 7)

	if s.Len() != 4 {
		t.Fatalf("Expected 4 shapes, got %d", s.Len())
	}
	lights := s.Lights()
	if len(lights) != 2 || lights[0] != 1 || lights[1] != 3 {
		t.Errorf("Expected lights [1 3], got %v", lights)
	}
	if m := s.Material(2); m.Albedo != core.NewVec3(30, 30, 30) || m.IsEmissive() {
		t.Errorf("Unexpected material at index 2: %+v", m)
	}
}

func TestScene_Intersect(t *testing.T) {
	s := emptyScene()
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1), core.NewVec3(1, 1, 1), 0) // far
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -3), 1), core.NewVec3(1, 1, 1), 0) // near

	hit := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !hit.Valid() {
		t.Fatal("Expected hit, got miss")
	}
	if hit.Index != 1 || hit.Distance != 2 {
		t.Errorf("Expected nearest hit index 1 at t=2, got index %d at t=%f", hit.Index, hit.Distance)
	}
}

func TestScene_Intersect_TieGoesToFirstInserted(t *testing.T) {
	s := emptyScene()
	s.AddShape(geometry.NewPlane(core.NewVec3(0, 0, 1), 3), core.NewVec3(1, 1, 1), 0)
	s.AddShape(geometry.NewPlane(core.NewVec3(0, 0, 1), 3), core.NewVec3(2, 2, 2), 0)

	hit := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if hit.Index != 0 {
		t.Errorf("Expected tie to resolve to index 0, got %d", hit.Index)
	}
}

func TestScene_Intersect_Miss(t *testing.T) {
	s := emptyScene()
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1), core.NewVec3(1, 1, 1), 0)

	hit := s.Intersect(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))
	if hit.Valid() {
		t.Errorf("Expected miss, got %+v", hit)
	}
	if hit.Index != -1 {
		t.Errorf("Expected index -1 on miss, got %d", hit.Index)
	}
}

func TestScene_Intersect_IgnoresSelfIntersection(t *testing.T) {
	s := emptyScene()
	s.AddShape(geometry.NewPlane(core.NewVec3(0, 1, 0), 0), core.NewVec3(1, 1, 1), 0)

	// Origin just above the plane, closer than the self-intersection epsilon
	hit := s.Intersect(core.NewRay(core.NewVec3(0, 0.0005, 0), core.NewVec3(0, -1, 0)))
	if hit.Valid() {
		t.Errorf("Expected hit closer than epsilon to be ignored, got %+v", hit)
	}
}

func TestScene_Summary(t *testing.T) {
	s := NewDefaultScene(16.0 / 9.0)
	expected := "9 shapes (4 sphere, 4 triangle, 1 plane), 1 light"
	if got := s.Summary(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestBuild(t *testing.T) {
	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Build(info.ID, 1.5)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Len() == 0 || len(s.Lights()) == 0 {
				t.Errorf("Expected shapes and lights, got %d shapes, %d lights", s.Len(), len(s.Lights()))
			}
			if s.CameraConfig.AspectRatio != 1.5 {
				t.Errorf("Expected aspect ratio 1.5, got %f", s.CameraConfig.AspectRatio)
			}
		})
	}

	if _, err := Build("nonexistent", 1); err == nil {
		t.Error("Expected error for unknown scene")
	}
	if _, err := Build("default", 0); err == nil {
		t.Error("Expected error for zero aspect ratio")
	}
}
