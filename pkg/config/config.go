package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-pathtracer/pkg/core"
)

// EnvPrefix is prepended to every configuration key
const EnvPrefix = "PATHTRACER_"

// ErrInvalid is returned for unparsable or out-of-range settings
var ErrInvalid = errors.New("invalid configuration")

// Config holds every setting of a render run
type Config struct {
	Scene           string
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int // <= 0 means one per CPU
	BloomThreshold  float64
	BloomSigma      float64
	BloomStrength   float64
	CameraOffset    core.Vec3 // Translation applied to the scene camera
	OutputDir       string
	PreviewSize     int // Longest side of the preview image, 0 disables it
	Snapshot        bool

	S3Endpoint  string
	S3Region    string
	S3Bucket    string // Empty disables uploads
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Scene:           "default",
		Width:           800,
		Height:          450,
		SamplesPerPixel: 100,
		MaxDepth:        2000,
		Workers:         12,
		BloomThreshold:  5.0,
		BloomSigma:      4.0,
		BloomStrength:   1.0,
		OutputDir:       "output",
		PreviewSize:     256,
		Snapshot:        true,
		S3Region:        "us-east-1",
		S3Prefix:        "renders",
	}
}

type field struct {
	key string
	set func(cfg *Config, value string) error
}

var fields = []field{
	{"SCENE", stringField(func(c *Config) *string { return &c.Scene })},
	{"WIDTH", intField(func(c *Config) *int { return &c.Width })},
	{"HEIGHT", intField(func(c *Config) *int { return &c.Height })},
	{"SAMPLES", intField(func(c *Config) *int { return &c.SamplesPerPixel })},
	{"MAX_DEPTH", intField(func(c *Config) *int { return &c.MaxDepth })},
	{"WORKERS", intField(func(c *Config) *int { return &c.Workers })},
	{"BLOOM_THRESHOLD", floatField(func(c *Config) *float64 { return &c.BloomThreshold })},
	{"BLOOM_SIGMA", floatField(func(c *Config) *float64 { return &c.BloomSigma })},
	{"BLOOM_STRENGTH", floatField(func(c *Config) *float64 { return &c.BloomStrength })},
	{"CAMERA_OFFSET", func(c *Config, v string) error {
		offset, err := ParseVec3(v)
		if err != nil {
			return err
		}
		c.CameraOffset = offset
		return nil
	}},
	{"OUTPUT_DIR", stringField(func(c *Config) *string { return &c.OutputDir })},
	{"PREVIEW_SIZE", intField(func(c *Config) *int { return &c.PreviewSize })},
	{"SNAPSHOT", func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		c.Snapshot = b
		return nil
	}},
	{"S3_ENDPOINT", stringField(func(c *Config) *string { return &c.S3Endpoint })},
	{"S3_REGION", stringField(func(c *Config) *string { return &c.S3Region })},
	{"S3_BUCKET", stringField(func(c *Config) *string { return &c.S3Bucket })},
	{"S3_PREFIX", stringField(func(c *Config) *string { return &c.S3Prefix })},
	{"S3_ACCESS_KEY", stringField(func(c *Config) *string { return &c.S3AccessKey })},
	{"S3_SECRET_KEY", stringField(func(c *Config) *string { return &c.S3SecretKey })},
}

// Load returns the defaults overridden by envFile (if it exists) and then by
// the process environment. The result is not validated; flags may still change it.
func Load(envFile string) (Config, error) {
	cfg := Default()

	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("reading %s: %w", envFile, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	for _, f := range fields {
		name := EnvPrefix + f.key
		if v, ok := os.LookupEnv(name); ok {
			values[name] = v
		}
	}

	for _, f := range fields {
		name := EnvPrefix + f.key
		v, ok := values[name]
		if !ok {
			continue
		}
		if err := f.set(&cfg, v); err != nil {
			return cfg, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, name, v, err)
		}
	}

	return cfg, nil
}

// Validate reports the first setting that cannot produce a render
func (c Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene must be set", ErrInvalid)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalid, c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalid, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalid, c.MaxDepth)
	case c.BloomThreshold < 0 || c.BloomSigma < 0 || c.BloomStrength < 0:
		return fmt.Errorf("%w: bloom settings must not be negative", ErrInvalid)
	case c.PreviewSize < 0:
		return fmt.Errorf("%w: preview size must not be negative, got %d", ErrInvalid, c.PreviewSize)
	case c.OutputDir == "":
		return fmt.Errorf("%w: output directory must be set", ErrInvalid)
	}
	return nil
}

// ParseVec3 parses "x,y,z"
func ParseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return core.Vec3{}, err
		}
		xyz[i] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

func stringField(get func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*get(c) = strings.TrimSpace(v)
		return nil
	}
}

func intField(get func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*get(c) = n
		return nil
	}
}

func floatField(get func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return err
		}
		*get(c) = f
		return nil
	}
}
