package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

const (
	// SelfIntersectionEpsilon is the minimum distance a hit must have to count.
	// It keeps rays leaving a surface from hitting that surface again.
	SelfIntersectionEpsilon = 0.001

	// LightEpsilon is the emission a shape must exceed to be registered as a light
	LightEpsilon = geometry.Epsilon
)

// Material describes how a shape interacts with light
type Material struct {
	Albedo   core.Vec3 // Diffuse color, 0-255 per channel
	Emission float64   // Emission intensity; > 0 makes the shape a light
}

// IsEmissive reports whether the material emits light
func (m Material) IsEmissive() bool {
	return m.Emission > 0
}

// HitRecord is the result of a nearest-intersection query
type HitRecord struct {
	Index    int     // Shape index, -1 on miss
	Distance float64 // Distance along the ray, geometry.Miss on miss
}

// Valid reports whether the record describes an actual hit
func (h HitRecord) Valid() bool {
	return h.Distance > SelfIntersectionEpsilon && h.Distance < geometry.Miss
}

// Scene contains all the elements needed for rendering.
// It is built once and must not be modified while a render is running.
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig

	shapes    []geometry.Shape
	materials []Material
	lights    []int // Indices of emissive shapes, in insertion order
}

// NewScene creates an empty scene viewed through a camera built from cameraConfig
func NewScene(cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
	}
}

// AddShape appends a shape with its material and returns its index.
// Shapes whose emission exceeds LightEpsilon are registered as lights.
func (s *Scene) AddShape(shape geometry.Shape, albedo core.Vec3, emission float64) int {
	s.shapes = append(s.shapes, shape)
	s.materials = append(s.materials, Material{Albedo: albedo, Emission: emission})

	index := len(s.shapes) - 1
	if emission > LightEpsilon {
		s.lights = append(s.lights, index)
	}
	return index
}

// Intersect returns the nearest hit farther than SelfIntersectionEpsilon.
// Ties go to the shape inserted first.
func (s *Scene) Intersect(ray core.Ray) HitRecord {
	closest := HitRecord{Index: -1, Distance: geometry.Miss}

	for i, shape := range s.shapes {
		dist := shape.Intersect(ray)
		if dist > SelfIntersectionEpsilon && dist < closest.Distance {
			closest.Index = i
			closest.Distance = dist
		}
	}

	return closest
}

// Shape returns the shape at index i
func (s *Scene) Shape(i int) geometry.Shape {
	return s.shapes[i]
}

// Material returns the material of the shape at index i
func (s *Scene) Material(i int) Material {
	return s.materials[i]
}

// Lights returns the indices of emissive shapes. The slice must not be modified.
func (s *Scene) Lights() []int {
	return s.lights
}

// Len returns the number of shapes
func (s *Scene) Len() int {
	return len(s.shapes)
}

// CountByKind returns how many shapes of each kind the scene holds
func (s *Scene) CountByKind() map[geometry.Kind]int {
	counts := make(map[geometry.Kind]int)
	for _, shape := range s.shapes {
		counts[geometry.KindOf(shape)]++
	}
	return counts
}

// Summary describes the scene contents, e.g. "9 shapes (4 sphere, 4 triangle, 1 plane), 1 light"
func (s *Scene) Summary() string {
	counts := s.CountByKind()
	kinds := make([]geometry.Kind, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%d %s", counts[kind], kind))
	}

	lightWord := "lights"
	if len(s.lights) == 1 {
		lightWord = "light"
	}
	return fmt.Sprintf("%d shapes (%s), %d %s", len(s.shapes), strings.Join(parts, ", "), len(s.lights), lightWord)
}
