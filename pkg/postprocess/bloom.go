package postprocess

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/df07/go-pathtracer/pkg/framebuffer"
)

// BloomConfig controls the glow added around bright pixels
type BloomConfig struct {
	Sigma    float64 // Gaussian blur radius in pixels; <= 0 disables bloom
	Strength float64 // Weight of the blurred bloom mask
}

// DefaultBloomConfig returns sensible default values
func DefaultBloomConfig() BloomConfig {
	return BloomConfig{
		Sigma:    4.0,
		Strength: 1.0,
	}
}

// Compose tone maps fb and adds the blurred bloom mask on top, clamping each channel
func Compose(fb *framebuffer.Framebuffer, config BloomConfig) *image.NRGBA {
	base := ToneMap(fb)
	if config.Sigma <= 0 || config.Strength <= 0 {
		return base
	}

	glow := imaging.Blur(ToneMapBloom(fb), config.Sigma)

	out := image.NewNRGBA(base.Bounds())
	for i := 0; i < len(base.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := float64(base.Pix[i+c]) + config.Strength*float64(glow.Pix[i+c])
			if v > 255 {
				v = 255
			}
			out.Pix[i+c] = uint8(v)
		}
		out.Pix[i+3] = 255
	}
	return out
}
