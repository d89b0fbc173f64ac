package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
)

// NewDefaultScene creates the classic three spheres standing on a huge yellow sphere,
// lit by ambient, point and directional light
func NewDefaultScene() *Scene {
	camera := geometry.NewCamera(core.NewVec3(0, 0, 0), geometry.DefaultViewPort())

	root := geometry.NewUnion(
		geometry.NewSphere(core.NewVec3(0, -1, 3), 1, core.Material{Color: core.Red, Specular: 500}),
		geometry.NewSphere(core.NewVec3(2, 0, 4), 1, core.Material{Color: core.Blue, Specular: 500}),
		geometry.NewSphere(core.NewVec3(-2, 0, 4), 1, core.Material{Color: core.Green, Specular: 10}),
		geometry.NewSphere(core.NewVec3(0, -5001, 0), 5000, core.Material{Color: core.Yellow, Specular: 1000}),
	)

	s := New(camera, root,
		lights.NewAmbientLight(0.2),
		lights.NewOmniDirectionalLight(core.NewVec3(2, 1, 0), 0.6),
		lights.NewDirectionalLight(core.NewVec3(1, 4, 4), 0.2),
	)
	s.Name = "default"
	s.Description = "Three spheres on a yellow ground sphere with ambient, point and directional light"
	return s
}

// NewSingleSphereScene creates one red, highlight-free sphere lit by full ambient light
func NewSingleSphereScene() *Scene {
	camera := geometry.NewCamera(core.NewVec3(0, 0, 0), geometry.DefaultViewPort())
	root := geometry.NewUnion(
		geometry.NewSphere(core.NewVec3(0, 0, 4), 1, core.Material{Color: core.Red, Specular: core.NoSpecular}),
	)

	s := New(camera, root, lights.NewAmbientLight(1.0))
	s.Name = "single-sphere"
	s.Description = "A single red sphere under ambient light"
	return s
}

var builtinScenes = map[string]func() *Scene{
	"default":       NewDefaultScene,
	"single-sphere": NewSingleSphereScene,
	"sphere-grid":   NewSphereGridScene,
}

// Builtin returns a freshly built builtin scene by name
func Builtin(name string) (*Scene, error) {
	build, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin scene %q", name)
	}
	return build(), nil
}

// BuiltinNames returns the sorted names of the builtin scenes
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
