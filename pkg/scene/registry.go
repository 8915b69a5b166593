package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string // Unique identifier, used on the command line
	DisplayName string // Human readable name
	Description string
}

type builtin struct {
	info  SceneInfo
	build func(aspectRatio float64) *Scene
}

var builtins = map[string]builtin{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Spheres and triangles on a ground plane lit by a small bright sphere",
		},
		build: NewDefaultScene,
	},
	"single-light": {
		info: SceneInfo{
			ID:          "single-light",
			DisplayName: "Single Light",
			Description: "One emissive sphere over a diffuse plane",
		},
		build: func(aspectRatio float64) *Scene { return NewSingleLightScene(aspectRatio, 1000) },
	},
	"triangle-light": {
		info: SceneInfo{
			ID:          "triangle-light",
			DisplayName: "Triangle Light",
			Description: "Three spheres under a triangular area light",
		},
		build: NewTriangleLightScene,
	},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Build creates the built-in scene with the given ID
func Build(id string, aspectRatio float64) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	if aspectRatio <= 0 {
		return nil, fmt.Errorf("scene %q: aspect ratio must be positive, got %f", id, aspectRatio)
	}
	return b.build(aspectRatio), nil
}
