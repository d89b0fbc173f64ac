package scene

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float32) core.Color {
	hRad := h * math32.Pi / 180

	// OKLCH to OKLAB
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(clampUnit(r), clampUnit(g), clampUnit(blue))
}

func clampUnit(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

// Sphere grid layout
const (
	sphereGridSize    = 6
	sphereGridExtent  = float32(6) // Side of the square the grid covers
	sphereGridNearZ   = float32(5) // Depth of the first row
	sphereGridGroundY = float32(-1)
)

// NewSphereGridScene creates a grid of spheres on a ground sphere. Each row of the
// grid is its own union, nested under the scene root.
func NewSphereGridScene() *Scene {
	camera := geometry.NewCamera(core.NewVec3(0, 1.5, 0), geometry.DefaultViewPort())

	spacing := sphereGridExtent / float32(sphereGridSize-1)
	radius := spacing * 0.35

	root := geometry.NewUnion(
		geometry.NewSphere(core.NewVec3(0, sphereGridGroundY-5000, 0), 5000,
			core.Material{Color: core.NewColor(0.6, 0.6, 0.6), Specular: core.NoSpecular}),
	)

	for j := 0; j < sphereGridSize; j++ {
		row := geometry.NewUnion()
		z := sphereGridNearZ + float32(j)*spacing

		// Chroma grows with depth, hue sweeps across each row
		chroma := 0.05 + float32(j)/float32(sphereGridSize-1)*0.2
		for i := 0; i < sphereGridSize; i++ {
			x := float32(i)*spacing - sphereGridExtent/2
			hue := float32(i) / float32(sphereGridSize-1) * 360
			lightness := 0.65 + 0.1*math32.Sin(float32(i+j)*0.5)

			material := core.Material{
				Color:    oklchToRGB(lightness, chroma, hue),
				Specular: float32(10 + 100*((i+j)%3)),
			}
			row.Add(geometry.NewSphere(core.NewVec3(x, sphereGridGroundY+radius, z), radius, material))
		}
		root.Add(row)
	}

	s := New(camera, root,
		lights.NewAmbientLight(0.25),
		lights.NewOmniDirectionalLight(core.NewVec3(-3, 5, 2), 0.5),
		lights.NewDirectionalLight(core.NewVec3(1, 3, -2), 0.25),
	)
	s.Name = "sphere-grid"
	s.Description = "A grid of colored spheres, one union per row, on a gray ground sphere"
	return s
}
