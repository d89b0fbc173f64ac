package lights

import "github.com/df07/go-sdf-raytracer/pkg/core"

// AmbientLight lights every surface equally
type AmbientLight struct {
	Intensity float32
}

// NewAmbientLight creates an ambient light
func NewAmbientLight(intensity float32) *AmbientLight {
	return &AmbientLight{Intensity: intensity}
}

// ComputeIntensity returns the constant ambient intensity
func (a *AmbientLight) ComputeIntensity(hit *core.Hit, inverseDirection core.Vec3) float32 {
	return a.Intensity
}
