package framebuffer

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-pathtracer/pkg/core"
)

// SnapshotExt is the file extension used for framebuffer snapshots
const SnapshotExt = ".ptfb.zst"

const (
	snapshotMagic   = "PTFB"
	snapshotVersion = 1
	maxSnapshotSide   = 1 << 14
	maxSnapshotPixels = 1 << 26
)

// ErrBadSnapshot is returned when a snapshot stream is not a valid framebuffer
var ErrBadSnapshot = errors.New("invalid framebuffer snapshot")

type snapshotHeader struct {
	Magic   [4]byte
	Version uint32
	Width   uint32
	Height  uint32
}

// WriteSnapshot writes fb to w as a zstd-compressed stream of little-endian
// float32 values: a header, then every color triple, then every bloom triple
func WriteSnapshot(w io.Writer, fb *Framebuffer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}

	header := snapshotHeader{
		Version: snapshotVersion,
		Width:   uint32(fb.Width),
		Height:  uint32(fb.Height),
	}
	copy(header.Magic[:], snapshotMagic)

	buf := bufio.NewWriter(enc)
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		enc.Close()
		return fmt.Errorf("writing snapshot header: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, flatten(fb.Color)); err != nil {
		enc.Close()
		return fmt.Errorf("writing color buffer: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, flatten(fb.Bloom)); err != nil {
		enc.Close()
		return fmt.Errorf("writing bloom buffer: %w", err)
	}
	if err := buf.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing zstd encoder: %w", err)
	}
	return nil
}

// ReadSnapshot reads a framebuffer written by WriteSnapshot
func ReadSnapshot(r io.Reader) (*Framebuffer, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	var header snapshotHeader
	if err := binary.Read(dec, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrBadSnapshot, err)
	}
	if string(header.Magic[:]) != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadSnapshot, header.Magic[:])
	}
	if header.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, header.Version)
	}
	width, height := int(header.Width), int(header.Height)
	if width == 0 || height == 0 || width > maxSnapshotSide || height > maxSnapshotSide || width*height > maxSnapshotPixels {
		return nil, fmt.Errorf("%w: bad size %dx%d", ErrBadSnapshot, width, height)
	}

	// Buffers grow row by row, so a truncated stream fails before the full size is allocated
	color, err := readPixels(dec, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: reading color buffer: %v", ErrBadSnapshot, err)
	}
	bloom, err := readPixels(dec, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: reading bloom buffer: %v", ErrBadSnapshot, err)
	}

	return &Framebuffer{
		Width:  width,
		Height: height,
		Color:  color,
		Bloom:  bloom,
	}, nil
}

// SaveSnapshot writes fb to the file at path
func SaveSnapshot(path string, fb *Framebuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	if err := WriteSnapshot(f, fb); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadSnapshot reads a framebuffer from the file at path
func LoadSnapshot(path string) (*Framebuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()
	return ReadSnapshot(bufio.NewReader(f))
}

func flatten(pixels []core.Vec3) []float32 {
	values := make([]float32, 0, 3*len(pixels))
	for _, p := range pixels {
		values = append(values, float32(p.X), float32(p.Y), float32(p.Z))
	}
	return values
}

func readPixels(r io.Reader, width, height int) ([]core.Vec3, error) {
	row := make([]float32, 3*width)
	var pixels []core.Vec3
	for y := 0; y < height; y++ {
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			return nil, fmt.Errorf("row %d: %w", y, err)
		}
		for x := 0; x < width; x++ {
			pixels = append(pixels, core.NewVec3(float64(row[3*x]), float64(row[3*x+1]), float64(row[3*x+2])))
		}
	}
	return pixels, nil
}
