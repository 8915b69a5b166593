package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/framebuffer"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"single-light scene", "single-light", false},
		{"triangle-light scene", "triangle-light", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Scene = tt.sceneType
			scene, err := createScene(cfg)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.Len() == 0 {
				t.Errorf("Scene '%s' has no shapes", tt.sceneType)
			}
			if len(scene.Lights()) == 0 {
				t.Errorf("Scene '%s' has no lights", tt.sceneType)
			}
			expectedAspect := float64(cfg.Width) / float64(cfg.Height)
			if scene.CameraConfig.AspectRatio != expectedAspect {
				t.Errorf("Expected aspect ratio %f, got %f", expectedAspect, scene.CameraConfig.AspectRatio)
			}
		})
	}
}

func TestCreateSceneCameraOffset(t *testing.T) {
	cfg := config.Default()
	plain, err := createScene(cfg)
	if err != nil {
		t.Fatal(err)
	}

	cfg.CameraOffset = core.NewVec3(0, 1, 0)
	moved, err := createScene(cfg)
	if err != nil {
		t.Fatal(err)
	}

	expected := plain.Camera.Origin().Add(core.NewVec3(0, 1, 0))
	if moved.Camera.Origin().Sub(expected).Length() > 1e-9 {
		t.Errorf("Expected camera at %v, got %v", expected, moved.Camera.Origin())
	}
}

func TestCLIFlagsOverrideConfig(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := newCLIFlags(fs)
	if err := fs.Parse([]string{"-scene", "single-light", "-samples", "7", "-camera-offset", "1,2,3", "-snapshot=false", "-bloom-strength", "0.25"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Width = 320 // set by the environment, no flag given
	if err := flags.apply(fs, &cfg); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if cfg.Scene != "single-light" || cfg.SamplesPerPixel != 7 || cfg.Snapshot {
		t.Errorf("Flags not applied: %+v", cfg)
	}
	if cfg.BloomStrength != 0.25 {
		t.Errorf("Expected bloom strength 0.25, got %f", cfg.BloomStrength)
	}
	if cfg.CameraOffset != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected camera offset (1,2,3), got %v", cfg.CameraOffset)
	}
	if cfg.Width != 320 {
		t.Errorf("Unset flag overwrote width: got %d", cfg.Width)
	}
}

func TestCLIFlagsRejectBadOffset(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := newCLIFlags(fs)
	if err := fs.Parse([]string{"-camera-offset", "up"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	if err := flags.apply(fs, &cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestRenderAndWriteOutputs(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = "single-light"
	cfg.Width = 8
	cfg.Height = 4
	cfg.SamplesPerPixel = 2
	cfg.MaxDepth = 4
	cfg.Workers = 3
	cfg.PreviewSize = 4
	cfg.OutputDir = t.TempDir()

	fb, err := render(cfg, core.NopLogger{})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if fb.Width != 8 || fb.Height != 4 {
		t.Fatalf("Expected 8x4 framebuffer, got %dx%d", fb.Width, fb.Height)
	}

	paths, err := writeOutputs(cfg, fb, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), core.NopLogger{})
	if err != nil {
		t.Fatalf("writeOutputs failed: %v", err)
	}

	expected := []string{
		filepath.Join(cfg.OutputDir, "single-light", "render_20240102_030405.png"),
		filepath.Join(cfg.OutputDir, "single-light", "preview_20240102_030405.png"),
		filepath.Join(cfg.OutputDir, "single-light", "render_20240102_030405"+framebuffer.SnapshotExt),
	}
	if len(paths) != len(expected) {
		t.Fatalf("Expected %d outputs, got %v", len(expected), paths)
	}
	for i, p := range expected {
		if paths[i] != p {
			t.Errorf("Expected output %s, got %s", p, paths[i])
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("Output %s missing: %v", p, err)
		}
	}

	restored, err := framebuffer.LoadSnapshot(paths[2])
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if restored.Width != fb.Width || restored.Height != fb.Height {
		t.Errorf("Snapshot size %dx%d does not match render", restored.Width, restored.Height)
	}
}

func TestWriteOutputsOptionalFiles(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.PreviewSize = 0
	cfg.Snapshot = false

	paths, err := writeOutputs(cfg, framebuffer.New(2, 2), time.Now(), core.NopLogger{})
	if err != nil {
		t.Fatalf("writeOutputs failed: %v", err)
	}
	if len(paths) != 1 || !strings.HasSuffix(paths[0], ".png") {
		t.Errorf("Expected only the render PNG, got %v", paths)
	}
}
