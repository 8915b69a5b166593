package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// NewDefaultScene creates the demo scene: coloured spheres and triangles on a
// ground plane, lit by one small, very bright sphere
func NewDefaultScene(aspectRatio float64) *Scene {
	s := NewScene(geometry.CameraConfig{
		Center:      core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: aspectRatio,
	})

	red := core.NewVec3(200, 100, 100)
	green := core.NewVec3(100, 200, 100)
	blue := core.NewVec3(100, 100, 200)
	white := core.NewVec3(255, 255, 255)

	s.AddShape(geometry.NewSphere(core.NewVec3(0, 1.5, -1), 1), red, 0)
	s.AddShape(geometry.NewPlane(core.NewVec3(0, 1, 0), 0), core.NewVec3(200, 200, 200), 0)
	s.AddShape(geometry.NewTriangle(core.NewVec3(5, 0, 0), core.NewVec3(6, 1, 0), core.NewVec3(4, 0, 1)), red, 0)
	s.AddShape(geometry.NewTriangle(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)), green, 0)
	s.AddShape(geometry.NewTriangle(core.NewVec3(-2, 0, 0), core.NewVec3(-1, 1, 0), core.NewVec3(-1, 0, 1)), blue, 0)
	s.AddShape(geometry.NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1)), blue, 0)

	// Light
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5), white, 10000)

	s.AddShape(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5), green, 0)
	s.AddShape(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5), blue, 0)

	return s
}

// NewSingleLightScene creates an emissive sphere hovering over a diffuse ground plane
func NewSingleLightScene(aspectRatio, intensity float64) *Scene {
	s := NewScene(geometry.CameraConfig{
		Center:      core.NewVec3(0, 1, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: aspectRatio,
	})

	s.AddShape(geometry.NewPlane(core.NewVec3(0, 1, 0), 0), core.NewVec3(200, 200, 200), 0)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 2, -1), 0.5), core.NewVec3(255, 255, 255), intensity)

	return s
}

// NewTriangleLightScene creates a few spheres lit by a triangular area light overhead
func NewTriangleLightScene(aspectRatio float64) *Scene {
	s := NewScene(geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 3),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        50,
		AspectRatio: aspectRatio,
	})

	s.AddShape(geometry.NewPlane(core.NewVec3(0, 1, 0), 0), core.NewVec3(220, 220, 220), 0)
	s.AddShape(geometry.NewSphere(core.NewVec3(-1.1, 0.5, -1), 0.5), core.NewVec3(200, 80, 80), 0)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0.5, -1.5), 0.5), core.NewVec3(80, 200, 80), 0)
	s.AddShape(geometry.NewSphere(core.NewVec3(1.1, 0.5, -1), 0.5), core.NewVec3(80, 80, 200), 0)

	s.AddShape(geometry.NewTriangle(
		core.NewVec3(-1, 3, -2),
		core.NewVec3(1, 3, -2),
		core.NewVec3(0, 3, 0),
	), core.NewVec3(255, 240, 220), 500)

	return s
}
