package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/fogleman/fauxgl"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	Up          core.Vec3 // Up direction (usually (0,1,0))
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// Camera maps normalized image coordinates to primary rays
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	config          CameraConfig
}

// NewCamera builds the viewport one unit in front of the camera
func NewCamera(config CameraConfig) *Camera {
	theta := fauxgl.Radians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis: back points away from the look-at point
	back := config.Center.Sub(config.LookAt).Normalize()
	right := config.Up.Cross(back).Normalize()
	up := back.Cross(right)

	horizontal := right.MulScalar(viewportWidth)
	vertical := up.MulScalar(viewportHeight)
	lowerLeftCorner := config.Center.
		Sub(horizontal.DivScalar(2)).
		Sub(vertical.DivScalar(2)).
		Sub(back)

	return &Camera{
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		config:          config,
	}
}

// GetRay returns the normalized primary ray through (u, v), where (0,0) is the lower-left corner
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.MulScalar(u)).
		Add(c.vertical.MulScalar(v)).
		Sub(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}

// Origin returns the current camera position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Translate moves the camera, and its viewport, by offset
func (c *Camera) Translate(offset core.Vec3) {
	m := fauxgl.Translate(offset)
	c.origin = m.MulPosition(c.origin)
	c.lowerLeftCorner = m.MulPosition(c.lowerLeftCorner)
}

// SetOrigin moves the camera to position, keeping its orientation
func (c *Camera) SetOrigin(position core.Vec3) {
	c.Translate(position.Sub(c.origin))
}
