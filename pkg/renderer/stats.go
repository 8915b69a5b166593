package renderer

import (
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/framebuffer"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels         int           // Total number of pixels rendered
	TotalSamples        int           // Total number of camera rays traced
	TotalTerminations   int           // Total number of terminal path events
	MinTerminations     int           // Fewest terminal events of any pixel
	MaxTerminations     int           // Most terminal events of any pixel
	AverageTerminations float64       // Terminal events per pixel
	Duration            time.Duration // Wall time of the render
}

func newRenderStats() RenderStats {
	return RenderStats{MinTerminations: math.MaxInt}
}

func (s *RenderStats) addPixel(samples, terminations int) {
	s.TotalPixels++
	s.TotalSamples += samples
	s.TotalTerminations += terminations
	if terminations < s.MinTerminations {
		s.MinTerminations = terminations
	}
	if terminations > s.MaxTerminations {
		s.MaxTerminations = terminations
	}
}

// Merge adds the counts of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.TotalTerminations += other.TotalTerminations
	if other.TotalPixels > 0 && other.MinTerminations < s.MinTerminations {
		s.MinTerminations = other.MinTerminations
	}
	if other.MaxTerminations > s.MaxTerminations {
		s.MaxTerminations = other.MaxTerminations
	}
}

func (s *RenderStats) finalize() {
	if s.TotalPixels == 0 {
		s.MinTerminations = 0
		return
	}
	s.AverageTerminations = float64(s.TotalTerminations) / float64(s.TotalPixels)
}

// Luminance returns the Rec. 709 luminance of a linear color
func Luminance(c core.Vec3) float64 {
	return 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
}

// CalculateAverageLuminance calculates the average luminance of the framebuffer's linear radiance
func CalculateAverageLuminance(fb *framebuffer.Framebuffer) float64 {
	if len(fb.Color) == 0 {
		return 0
	}
	var sum float64
	for _, c := range fb.Color {
		sum += Luminance(c)
	}
	return sum / float64(len(fb.Color))
}
