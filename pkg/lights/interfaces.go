package lights

import "github.com/df07/go-sdf-raytracer/pkg/core"

type LightType string

// Light type names as they appear in scene files
const (
	LightTypeAmbient         LightType = "ambiant"
	LightTypeOmniDirectional LightType = "omnidirectional"
	LightTypeDirectional     LightType = "directional"
)

// Type returns the scene-file type name of a light, or "" for foreign implementations
func Type(light core.Light) LightType {
	switch light.(type) {
	case *AmbientLight:
		return LightTypeAmbient
	case *OmniDirectionalLight:
		return LightTypeOmniDirectional
	case *DirectionalLight:
		return LightTypeDirectional
	default:
		return ""
	}
}
