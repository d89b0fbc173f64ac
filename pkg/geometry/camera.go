package geometry

import (
	"fmt"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// ViewPort is the virtual image plane, centered on the view axis at Distance from the camera
type ViewPort struct {
	Width    float32
	Height   float32
	Distance float32
}

// DefaultViewPort is a unit viewport one unit in front of the camera
func DefaultViewPort() ViewPort {
	return ViewPort{Width: 1, Height: 1, Distance: 1}
}

// Validate checks that the viewport spans a non-degenerate area in front of the camera
func (vp ViewPort) Validate() error {
	if vp.Width <= 0 || vp.Height <= 0 || vp.Distance <= 0 {
		return fmt.Errorf("view port must be positive, got %gx%g at distance %g", vp.Width, vp.Height, vp.Distance)
	}
	return nil
}

// Camera generates primary rays through its viewport
type Camera struct {
	Position core.Vec3
	ViewPort ViewPort
}

// NewCamera creates a camera
func NewCamera(position core.Vec3, viewPort ViewPort) Camera {
	return Camera{Position: position, ViewPort: viewPort}
}

// RayDirection returns the unnormalized direction through pixel (u, v) of a width×height canvas.
// The vertical coordinate is pre-scaled by height/width in integer pixels before centering.
func (c Camera) RayDirection(u, v, width, height int) core.Vec3 {
	cw := float32(width)
	ch := float32(height)
	scaledV := float32(v * height / width)

	return core.NewVec3(
		(float32(u)-cw/2)*c.ViewPort.Width/cw,
		(scaledV-ch/2)*c.ViewPort.Height/ch,
		c.ViewPort.Distance,
	)
}

// GetRay returns the primary ray for pixel (u, v) of a width×height canvas
func (c Camera) GetRay(u, v, width, height int) core.Ray {
	return core.NewRay(c.Position, c.RayDirection(u, v, width, height))
}
