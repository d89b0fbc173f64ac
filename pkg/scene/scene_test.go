package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
)

func TestScene_Validate(t *testing.T) {
	s := NewSingleSphereScene()
	assert.NoError(t, s.Validate())

	noRoot := New(geometry.NewCamera(core.Vec3{}, geometry.DefaultViewPort()), nil)
	assert.ErrorIs(t, noRoot.Validate(), ErrNoRoot)

	badViewPort := New(geometry.NewCamera(core.Vec3{}, geometry.ViewPort{Width: 1, Height: 0, Distance: 1}), geometry.NewUnion())
	assert.Error(t, badViewPort.Validate())
}

func TestScene_AddLightAndCount(t *testing.T) {
	s := New(geometry.NewCamera(core.Vec3{}, geometry.DefaultViewPort()), geometry.NewUnion())
	assert.Equal(t, 0, s.GetPrimitiveCount())
	assert.Empty(t, s.Lights)

	s.AddLight(lights.NewAmbientLight(0.5))
	assert.Len(t, s.Lights, 1)

	assert.Equal(t, 0, (&Scene{}).GetPrimitiveCount())
}

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()
	require.NoError(t, s.Validate())

	assert.Equal(t, "default", s.Name)
	assert.Equal(t, 4, s.GetPrimitiveCount())
	require.Len(t, s.Lights, 3)
	assert.Equal(t, lights.LightTypeAmbient, lights.Type(s.Lights[0]))
	assert.Equal(t, lights.LightTypeOmniDirectional, lights.Type(s.Lights[1]))
	assert.Equal(t, lights.LightTypeDirectional, lights.Type(s.Lights[2]))

	// A ray through the red sphere center hits it before the ground
	hit, isHit := s.Root.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 3)))
	require.True(t, isHit)
	assert.Equal(t, core.Red, hit.Material.Color)
}

func TestBuiltin(t *testing.T) {
	assert.Equal(t, []string{"default", "single-sphere", "sphere-grid"}, BuiltinNames())

	for _, name := range BuiltinNames() {
		s, err := Builtin(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name)
	}

	_, err := Builtin("missing")
	assert.Error(t, err)

	// Each call builds an independent scene
	a, _ := Builtin("default")
	b, _ := Builtin("default")
	assert.NotSame(t, a.Root, b.Root)
}

func TestTurntable_RotatesGeometryAroundPivot(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(1, 0, 4), 1, core.Material{Color: core.Red, Specular: core.NoSpecular})
	s := New(geometry.NewCamera(core.Vec3{}, geometry.DefaultViewPort()), geometry.NewUnion(sphere))

	pivot := core.NewVec3(0, 0, 4)
	rotated := Turntable(s, pivot, math32.Pi/2)

	union, ok := rotated.Root.(*geometry.UnionNode)
	require.True(t, ok)
	require.Len(t, union.Nodes, 1)
	moved, ok := union.Nodes[0].(*geometry.SphereNode)
	require.True(t, ok)

	// +X swings to -Z around the Y axis
	assert.InDelta(t, 0, moved.Position.X, 1e-5)
	assert.InDelta(t, 0, moved.Position.Y, 1e-5)
	assert.InDelta(t, 3, moved.Position.Z, 1e-5)
	assert.Equal(t, sphere.Radius, moved.Radius)
	assert.Equal(t, sphere.Material, moved.Material)

	// Source scene is untouched
	assert.Equal(t, core.NewVec3(1, 0, 4), sphere.Position)
	assert.Equal(t, s.Camera, rotated.Camera)
}

func TestTurntable_RotatesLights(t *testing.T) {
	ambient := lights.NewAmbientLight(0.2)
	s := New(geometry.NewCamera(core.Vec3{}, geometry.DefaultViewPort()), geometry.NewUnion(),
		ambient,
		lights.NewOmniDirectionalLight(core.NewVec3(1, 2, 0), 0.6),
		lights.NewDirectionalLight(core.NewVec3(1, 0, 0), 0.2),
	)

	rotated := Turntable(s, core.Vec3{}, math32.Pi)
	require.Len(t, rotated.Lights, 3)

	assert.Same(t, ambient, rotated.Lights[0])

	omni, ok := rotated.Lights[1].(*lights.OmniDirectionalLight)
	require.True(t, ok)
	assert.InDelta(t, -1, omni.Position.X, 1e-5)
	assert.InDelta(t, 2, omni.Position.Y, 1e-5)
	assert.Equal(t, float32(0.6), omni.Intensity)

	directional, ok := rotated.Lights[2].(*lights.DirectionalLight)
	require.True(t, ok)
	assert.InDelta(t, -1, directional.Direction.X, 1e-5)
	assert.InDelta(t, 0, directional.Direction.Z, 1e-5)
}

func TestTurntable_ZeroAngleKeepsPositions(t *testing.T) {
	s := NewDefaultScene()
	rotated := Turntable(s, core.NewVec3(0, 0, 4), 0)

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0.1, -0.2, 1))
	want, wantHit := s.Root.Hit(ray)
	got, gotHit := rotated.Root.Hit(ray)
	require.Equal(t, wantHit, gotHit)
	assert.InDelta(t, want.Distance, got.Distance, 1e-4)
}

func TestNewSphereGridScene(t *testing.T) {
	s := NewSphereGridScene()
	require.NoError(t, s.Validate())
	assert.Equal(t, 1+sphereGridSize*sphereGridSize, s.GetPrimitiveCount())

	root, ok := s.Root.(*geometry.UnionNode)
	require.True(t, ok)
	require.Len(t, root.Nodes, 1+sphereGridSize)
	for _, child := range root.Nodes[1:] {
		row, ok := child.(*geometry.UnionNode)
		require.True(t, ok)
		assert.Len(t, row.Nodes, sphereGridSize)
	}

	// A ray straight down from above the first row lands on a grid sphere, not the ground
	row := root.Nodes[1].(*geometry.UnionNode)
	first := row.Nodes[0].(*geometry.SphereNode)
	hit, isHit := s.Root.Hit(core.NewRay(first.Position.Add(core.NewVec3(0, 10, 0)), core.NewVec3(0, -1, 0)))
	require.True(t, isHit)
	assert.Equal(t, first.Material, hit.Material)
}

func TestOklchToRGB(t *testing.T) {
	// Zero chroma is a neutral gray
	gray := oklchToRGB(0.6, 0, 0)
	assert.InDelta(t, gray.R, gray.G, 1e-4)
	assert.InDelta(t, gray.G, gray.B, 1e-4)

	for hue := float32(0); hue < 360; hue += 45 {
		c := oklchToRGB(0.7, 0.25, hue)
		for _, channel := range []float32{c.R, c.G, c.B} {
			assert.GreaterOrEqual(t, channel, float32(0))
			assert.LessOrEqual(t, channel, float32(1))
		}
	}
}
