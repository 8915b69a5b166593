package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/framebuffer"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int     // Number of camera rays per pixel
	MaxDepth        int     // Bounce budget of a camera ray
	Workers         int     // Size of the scanline worker pool, <= 0 means one per CPU
	BloomThreshold  float64 // Pixels brighter than this are copied to the bloom buffer
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        2000,
		Workers:         12,
		BloomThreshold:  5.0,
	}
}

// Raytracer renders a scene into a framebuffer, one scanline per task
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a raytracer using the path tracing integrator.
// A nil logger silences progress output.
func NewRaytracer(sc *scene.Scene, width, height int, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:      sc,
		integrator: integrator.NewPathTracingIntegrator(sc, config.MaxDepth),
		width:      width,
		height:     height,
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the integrator used for every camera ray
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Render traces every pixel and blocks until the framebuffer is complete
func (rt *Raytracer) Render() (*framebuffer.Framebuffer, RenderStats) {
	start := time.Now()
	fb := framebuffer.New(rt.width, rt.height)

	pool := NewWorkerPool(rt, fb, rt.config.Workers)
	pool.Start()

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d (using %d workers)...\n",
		rt.width, rt.height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	for y := 0; y < rt.height; y++ {
		pool.SubmitTask(ScanlineTask{Y: y})
	}

	stats := newRenderStats()
	interval := progressInterval(rt.height)
	for done := 1; done <= rt.height; done++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Merge(result.Stats)
		if done%interval == 0 || done == rt.height {
			rt.logger.Printf("%d/%d scanlines (%.0f%%)\n", done, rt.height, 100*float64(done)/float64(rt.height))
		}
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	stats.finalize()
	return fb, stats
}

// traceScanline renders row y of fb. Each pixel seeds its own generator from
// its coordinates, so the result does not depend on which worker runs the row.
func (rt *Raytracer) traceScanline(y int, fb *framebuffer.Framebuffer) RenderStats {
	camera := rt.scene.Camera
	stats := newRenderStats()

	for x := 0; x < rt.width; x++ {
		rng := core.NewRNG(core.PixelSeed(x, y, rt.width))

		var colorAccum core.Vec3
		terminations := 0
		for s := 0; s < rt.config.SamplesPerPixel; s++ {
			u := (float64(x) + rng.Float()) / float64(rt.width)
			v := (float64(y) + rng.Float()) / float64(rt.height)

			sample := rt.integrator.RayColor(camera.GetRay(u, v), rng)
			colorAccum = colorAccum.Add(sample.Radiance)
			terminations += sample.Terminations
		}

		// Normalize by terminal events, not by camera rays
		var pixelColor core.Vec3
		if terminations > 0 {
			pixelColor = colorAccum.DivScalar(float64(terminations))
		}

		fb.Set(x, y, pixelColor)
		if pixelColor.Length() > rt.config.BloomThreshold {
			fb.SetBloom(x, y, pixelColor)
		} else {
			fb.SetBloom(x, y, core.Vec3{})
		}

		stats.addPixel(rt.config.SamplesPerPixel, terminations)
	}

	return stats
}

func progressInterval(height int) int {
	if height < 10 {
		return 1
	}
	return height / 10
}
