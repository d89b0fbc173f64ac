package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
	"github.com/df07/go-sdf-raytracer/pkg/renderer"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit       bool                `json:"hit"`
	Point     [3]float32          `json:"point"`
	Normal    [3]float32          `json:"normal"`
	Distance  float32             `json:"distance"`
	Material  MaterialInfo        `json:"material"`
	Intensity float32             `json:"intensity"`
	Color     string              `json:"color"`
	Lights    []LightContribution `json:"lights"`
}

// MaterialInfo describes the material of the surface that was hit
type MaterialInfo struct {
	Color    [3]float32 `json:"color"`
	Hex      string     `json:"hex"`
	Specular float32    `json:"specular"`
}

// LightContribution is the intensity one light adds at the inspected point
type LightContribution struct {
	Type      lights.LightType `json:"type"`
	Intensity float32          `json:"intensity"`
}

func vec3Array(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	rgba := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// inspectPixel casts the primary ray of pixel (x, y) and reports what it hits.
// The reported color is shaded with config, so it matches the rendered pixel.
func inspectPixel(sceneObj *scene.Scene, config renderer.Config, width, height, pixelX, pixelY int) InspectResponse {
	ray := sceneObj.Camera.GetRay(pixelX, pixelY, width, height)
	hit, isHit := sceneObj.Root.Hit(ray)
	if !isHit {
		return InspectResponse{Hit: false, Color: hexColor(config.Background)}
	}

	inverseDirection := ray.Direction.Negate()
	contributions := make([]LightContribution, 0, len(sceneObj.Lights))
	for _, light := range sceneObj.Lights {
		contributions = append(contributions, LightContribution{
			Type:      lights.Type(light),
			Intensity: light.ComputeIntensity(hit, inverseDirection),
		})
	}

	color, _ := renderer.TraceRay(sceneObj, ray, config)
	return InspectResponse{
		Hit:      true,
		Point:    vec3Array(hit.Position),
		Normal:   vec3Array(hit.Normal),
		Distance: hit.Distance,
		Material: MaterialInfo{
			Color:    [3]float32{hit.Material.Color.R, hit.Material.Color.G, hit.Material.Color.B},
			Hex:      hexColor(hit.Material.Color),
			Specular: hit.Material.Specular,
		},
		Intensity: lights.TotalIntensity(sceneObj.Lights, hit, inverseDirection),
		Color:     hexColor(color),
		Lights:    contributions,
	}
}

// handleInspect handles ray casting inspection requests. Pixel coordinates
// have (0, 0) at the bottom-left corner of the image.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	width, err := parseIntParam(query, "width", 400, 1, maxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(query, "height", 400, 1, maxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if query.Get("x") == "" || query.Get("y") == "" {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}
	pixelX, err := parseIntParam(query, "x", 0, 0, width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds: "+err.Error())
		return
	}
	pixelY, err := parseIntParam(query, "y", 0, 0, height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds: "+err.Error())
		return
	}

	clamp, err := parseBoolParam(query, "clamp")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.MergeConfig(renderer.DefaultConfig(), renderer.Config{ClampIntensity: clamp})
	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, config, width, height, pixelX, pixelY))
}
