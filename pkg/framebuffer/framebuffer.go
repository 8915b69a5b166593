package framebuffer

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds linear radiance and the bloom mask for every pixel.
// Row 0 is the bottom of the image, matching the camera's v axis.
type Framebuffer struct {
	Width  int
	Height int
	Color  []core.Vec3 // row-major radiance
	Bloom  []core.Vec3 // radiance of pixels above the bloom threshold, zero elsewhere
}

// New creates a black framebuffer
func New(width, height int) *Framebuffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("framebuffer: invalid size %dx%d", width, height))
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Color:  make([]core.Vec3, width*height),
		Bloom:  make([]core.Vec3, width*height),
	}
}

func (fb *Framebuffer) index(x, y int) int {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		panic(fmt.Sprintf("framebuffer: pixel (%d, %d) out of range %dx%d", x, y, fb.Width, fb.Height))
	}
	return x + y*fb.Width
}

// Set stores the radiance of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Color[fb.index(x, y)] = c
}

// At returns the radiance of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Color[fb.index(x, y)]
}

// SetBloom stores the bloom mask value of pixel (x, y)
func (fb *Framebuffer) SetBloom(x, y int, c core.Vec3) {
	fb.Bloom[fb.index(x, y)] = c
}

// BloomAt returns the bloom mask value of pixel (x, y)
func (fb *Framebuffer) BloomAt(x, y int) core.Vec3 {
	return fb.Bloom[fb.index(x, y)]
}

// Row returns the radiance slice of scanline y
func (fb *Framebuffer) Row(y int) []core.Vec3 {
	start := fb.index(0, y)
	return fb.Color[start : start+fb.Width]
}
