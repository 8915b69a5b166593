package output

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// TimestampFormat names render files so they sort chronologically
const TimestampFormat = "20060102_150405"

// RenderPath returns dir/<sceneID>/<prefix>_<timestamp><ext>
func RenderPath(dir, sceneID, prefix, ext string, t time.Time) string {
	return filepath.Join(dir, sceneID, fmt.Sprintf("%s_%s%s", prefix, t.Format(TimestampFormat), ext))
}

// EncodePNG writes img as PNG. Rendered images store the bottom row first,
// so the image is flipped vertically on the way out.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, imaging.FlipV(img), imaging.PNG); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SavePNG writes img to path as a vertically flipped PNG, creating parent directories
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := imaging.Save(imaging.FlipV(img), path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
