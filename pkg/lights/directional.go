package lights

import "github.com/df07/go-sdf-raytracer/pkg/core"

// DirectionalLight is a source at infinity. Direction points from the surface toward it
// and is the same for every hit point.
type DirectionalLight struct {
	Direction core.Vec3
	Intensity float32
}

// NewDirectionalLight creates a directional light
func NewDirectionalLight(direction core.Vec3, intensity float32) *DirectionalLight {
	return &DirectionalLight{Direction: direction, Intensity: intensity}
}

// ComputeIntensity evaluates diffuse and specular terms along the light direction
func (d *DirectionalLight) ComputeIntensity(hit *core.Hit, inverseDirection core.Vec3) float32 {
	return reflectance(hit, d.Direction, inverseDirection, d.Intensity)
}
