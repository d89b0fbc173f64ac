package lights

import "github.com/df07/go-sdf-raytracer/pkg/core"

// OmniDirectionalLight is a point source radiating in every direction
type OmniDirectionalLight struct {
	Position  core.Vec3
	Intensity float32
}

// NewOmniDirectionalLight creates a point light
func NewOmniDirectionalLight(position core.Vec3, intensity float32) *OmniDirectionalLight {
	return &OmniDirectionalLight{Position: position, Intensity: intensity}
}

// ComputeIntensity evaluates diffuse and specular terms toward the light position
func (o *OmniDirectionalLight) ComputeIntensity(hit *core.Hit, inverseDirection core.Vec3) float32 {
	l := o.Position.Subtract(hit.Position)
	return reflectance(hit, l, inverseDirection, o.Intensity)
}
