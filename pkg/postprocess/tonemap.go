package postprocess

import (
	"image"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/framebuffer"
)

// Reinhard maps a linear radiance value in [0, ∞) to [0, 1)
func Reinhard(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x / (1 + x)
}

// ReinhardVec3 applies Reinhard to each channel
func ReinhardVec3(c core.Vec3) core.Vec3 {
	return core.NewVec3(Reinhard(c.X), Reinhard(c.Y), Reinhard(c.Z))
}

// ToneMap converts the framebuffer's radiance to an 8-bit image.
// Image row y holds framebuffer row y; flipping happens on write.
func ToneMap(fb *framebuffer.Framebuffer) *image.NRGBA {
	return toneMapPixels(fb.Color, fb.Width, fb.Height)
}

// ToneMapBloom converts the framebuffer's bloom mask to an 8-bit image
func ToneMapBloom(fb *framebuffer.Framebuffer) *image.NRGBA {
	return toneMapPixels(fb.Bloom, fb.Width, fb.Height)
}

func toneMapPixels(pixels []core.Vec3, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			mapped := ReinhardVec3(pixels[x+y*width])
			img.SetNRGBA(x, y, fauxgl.Color{R: mapped.X, G: mapped.Y, B: mapped.Z, A: 1}.NRGBA())
		}
	}
	return img
}
