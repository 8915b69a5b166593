package postprocess

import (
	"image"

	"github.com/nfnt/resize"
)

// Preview returns a copy of img scaled to fit within maxSize×maxSize.
// Images already small enough are returned unchanged.
func Preview(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
}
