package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/framebuffer"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/postprocess"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// cliFlags holds the command line flags that override the loaded configuration
type cliFlags struct {
	envFile        *string
	sceneType      *string
	width          *int
	height         *int
	samples        *int
	maxDepth       *int
	workers        *int
	bloomThreshold *float64
	bloomSigma     *float64
	bloomStrength  *float64
	cameraOffset   *string
	outputDir      *string
	previewSize    *int
	snapshot       *bool
	fromSnapshot   *string
	upload         *bool
	list           *bool
	help           *bool
}

func newCLIFlags(fs *flag.FlagSet) *cliFlags {
	defaults := config.Default()
	return &cliFlags{
		envFile:        fs.String("env", ".env", "Path to a .env file with PATHTRACER_* settings"),
		sceneType:      fs.String("scene", defaults.Scene, "Scene type (see -list)"),
		width:          fs.Int("width", defaults.Width, "Image width in pixels"),
		height:         fs.Int("height", defaults.Height, "Image height in pixels"),
		samples:        fs.Int("samples", defaults.SamplesPerPixel, "Camera rays per pixel"),
		maxDepth:       fs.Int("depth", defaults.MaxDepth, "Maximum path depth"),
		workers:        fs.Int("workers", defaults.Workers, "Number of scanline workers (0 = one per CPU)"),
		bloomThreshold: fs.Float64("bloom-threshold", defaults.BloomThreshold, "Radiance above which pixels bloom"),
		bloomSigma:     fs.Float64("bloom-sigma", defaults.BloomSigma, "Bloom blur radius in pixels (0 disables bloom)"),
		bloomStrength:  fs.Float64("bloom-strength", defaults.BloomStrength, "Weight of the bloom glow added to the image"),
		cameraOffset:   fs.String("camera-offset", "", "Translate the camera by x,y,z"),
		outputDir:      fs.String("output", defaults.OutputDir, "Output directory"),
		previewSize:    fs.Int("preview", defaults.PreviewSize, "Longest side of the preview image (0 disables it)"),
		snapshot:       fs.Bool("snapshot", defaults.Snapshot, "Also save the linear framebuffer as a compressed snapshot"),
		fromSnapshot:   fs.String("from-snapshot", "", "Post-process a saved framebuffer snapshot instead of rendering"),
		upload:         fs.Bool("upload", true, "Upload outputs when an S3 bucket is configured"),
		list:           fs.Bool("list", false, "List available scenes"),
		help:           fs.Bool("help", false, "Show help information"),
	}
}

// apply copies every flag that was set explicitly into cfg
func (f *cliFlags) apply(fs *flag.FlagSet, cfg *config.Config) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "scene":
			cfg.Scene = *f.sceneType
		case "width":
			cfg.Width = *f.width
		case "height":
			cfg.Height = *f.height
		case "samples":
			cfg.SamplesPerPixel = *f.samples
		case "depth":
			cfg.MaxDepth = *f.maxDepth
		case "workers":
			cfg.Workers = *f.workers
		case "bloom-threshold":
			cfg.BloomThreshold = *f.bloomThreshold
		case "bloom-sigma":
			cfg.BloomSigma = *f.bloomSigma
		case "bloom-strength":
			cfg.BloomStrength = *f.bloomStrength
		case "camera-offset":
			offset, parseErr := config.ParseVec3(*f.cameraOffset)
			if parseErr != nil {
				err = fmt.Errorf("%w: -camera-offset: %v", config.ErrInvalid, parseErr)
				return
			}
			cfg.CameraOffset = offset
		case "output":
			cfg.OutputDir = *f.outputDir
		case "preview":
			cfg.PreviewSize = *f.previewSize
		case "snapshot":
			cfg.Snapshot = *f.snapshot
		}
	})
	return err
}

func main() {
	flags := newCLIFlags(flag.CommandLine)
	flag.Parse()

	// Show help if requested
	if *flags.help {
		printHelp()
		return
	}
	if *flags.list {
		for _, info := range scene.List() {
			fmt.Printf("  %-15s %s\n", info.ID, info.Description)
		}
		return
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load(*flags.envFile)
	if err != nil {
		logger.Fatalf("Error loading configuration: %v", err)
	}
	if err := flags.apply(flag.CommandLine, &cfg); err != nil {
		logger.Fatalf("Error parsing flags: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Error in configuration: %v", err)
	}

	logSystemInfo(logger)

	var fb *framebuffer.Framebuffer
	if *flags.fromSnapshot != "" {
		logger.Printf("Loading snapshot %s...", *flags.fromSnapshot)
		fb, err = framebuffer.LoadSnapshot(*flags.fromSnapshot)
		if err != nil {
			logger.Fatalf("Error loading snapshot: %v", err)
		}
		cfg.Snapshot = false
	} else {
		fb, err = render(cfg, logger)
		if err != nil {
			logger.Fatalf("Error rendering: %v", err)
		}
	}

	paths, err := writeOutputs(cfg, fb, time.Now(), logger)
	if err != nil {
		logger.Fatalf("Error writing output: %v", err)
	}

	if *flags.upload && cfg.S3Bucket != "" {
		if err := uploadOutputs(context.Background(), cfg, paths, logger); err != nil {
			logger.Fatalf("Error uploading output: %v", err)
		}
	}
}

func printHelp() {
	fmt.Println("Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.List() {
		fmt.Printf("  %s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Settings are read from the .env file, then PATHTRACER_* environment variables, then flags.")
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.png")
}

// createScene builds the configured scene and moves its camera
func createScene(cfg config.Config) (*scene.Scene, error) {
	sc, err := scene.Build(cfg.Scene, float64(cfg.Width)/float64(cfg.Height))
	if err != nil {
		return nil, err
	}
	if cfg.CameraOffset != (core.Vec3{}) {
		sc.Camera.Translate(cfg.CameraOffset)
	}
	return sc, nil
}

// render traces the configured scene and logs the run's statistics
func render(cfg config.Config, logger core.Logger) (*framebuffer.Framebuffer, error) {
	sc, err := createScene(cfg)
	if err != nil {
		return nil, err
	}
	logger.Printf("Using %s scene: %s", cfg.Scene, sc.Summary())

	raytracer := renderer.NewRaytracer(sc, cfg.Width, cfg.Height, renderer.SamplingConfig{
		SamplesPerPixel: cfg.SamplesPerPixel,
		MaxDepth:        cfg.MaxDepth,
		Workers:         cfg.Workers,
		BloomThreshold:  cfg.BloomThreshold,
	}, logger)

	fb, stats := raytracer.Render()

	logger.Printf("Render completed in %v", stats.Duration)
	logger.Printf("Terminal events per pixel: %.1f (range %d - %d), %d camera rays",
		stats.AverageTerminations, stats.MinTerminations, stats.MaxTerminations, stats.TotalSamples)
	logger.Printf("Average luminance: %.4f", renderer.CalculateAverageLuminance(fb))
	return fb, nil
}

// writeOutputs saves the tone-mapped render, its preview and the snapshot,
// returning the paths written
func writeOutputs(cfg config.Config, fb *framebuffer.Framebuffer, now time.Time, logger core.Logger) ([]string, error) {
	var paths []string

	img := postprocess.Compose(fb, postprocess.BloomConfig{
		Sigma:    cfg.BloomSigma,
		Strength: cfg.BloomStrength,
	})

	renderPath := output.RenderPath(cfg.OutputDir, cfg.Scene, "render", ".png", now)
	if err := output.SavePNG(renderPath, img); err != nil {
		return paths, err
	}
	logger.Printf("Render saved as %s", renderPath)
	paths = append(paths, renderPath)

	if cfg.PreviewSize > 0 {
		previewPath := output.RenderPath(cfg.OutputDir, cfg.Scene, "preview", ".png", now)
		if err := output.SavePNG(previewPath, postprocess.Preview(img, uint(cfg.PreviewSize))); err != nil {
			return paths, err
		}
		logger.Printf("Preview saved as %s", previewPath)
		paths = append(paths, previewPath)
	}

	if cfg.Snapshot {
		snapshotPath := output.RenderPath(cfg.OutputDir, cfg.Scene, "render", framebuffer.SnapshotExt, now)
		if err := framebuffer.SaveSnapshot(snapshotPath, fb); err != nil {
			return paths, err
		}
		logger.Printf("Snapshot saved as %s", snapshotPath)
		paths = append(paths, snapshotPath)
	}

	return paths, nil
}

func uploadOutputs(ctx context.Context, cfg config.Config, paths []string, logger core.Logger) error {
	uploader, err := output.NewS3Uploader(output.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		Prefix:    cfg.S3Prefix,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	}, logger)
	if err != nil {
		return err
	}

	for _, p := range paths {
		if _, err := uploader.UploadFile(ctx, cfg.OutputDir, p); err != nil {
			return err
		}
	}
	return nil
}

// logSystemInfo reports the host the render runs on
func logSystemInfo(logger core.Logger) {
	cpuInfo, err := cpu.Info()
	if err != nil || len(cpuInfo) == 0 {
		logger.Printf("CPU information unavailable: %v", err)
	} else {
		logger.Printf("CPU: %s (%d logical cores, %.2f GHz)",
			strings.TrimSpace(cpuInfo[0].ModelName), len(cpuInfo), cpuInfo[0].Mhz/1000)
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Printf("Memory information unavailable: %v", err)
		return
	}
	logger.Printf("RAM: %d GB total, %.0f%% used", memInfo.Total/(1024*1024*1024), memInfo.UsedPercent)
}
