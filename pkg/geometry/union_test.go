package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// mockNode returns a fixed hit, or none when distance is negative
type mockNode struct {
	distance float32
	material core.Material
	calls    *int
}

func (m mockNode) Hit(ray core.Ray) (*core.Hit, bool) {
	if m.calls != nil {
		*m.calls++
	}
	if m.distance < 0 {
		return nil, false
	}
	return &core.Hit{
		Position: ray.At(m.distance),
		Distance: m.distance,
		Material: m.material,
	}, true
}

var testRay = core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))

func TestUnion_Hit_ReturnsNearestChild(t *testing.T) {
	a := mockNode{distance: 5, material: core.Material{Color: core.Red}}
	b := mockNode{distance: 2, material: core.Material{Color: core.Green}}
	c := mockNode{distance: -1}

	hit, isHit := NewUnion(a, b, c).Hit(testRay)
	require.True(t, isHit)
	assert.Equal(t, float32(2), hit.Distance)
	assert.Equal(t, core.Green, hit.Material.Color)
}

func TestUnion_Hit_Empty(t *testing.T) {
	hit, isHit := NewUnion().Hit(testRay)
	assert.False(t, isHit)
	assert.Nil(t, hit)

	hit, isHit = (&UnionNode{}).Hit(testRay)
	assert.False(t, isHit)
	assert.Nil(t, hit)
}

func TestUnion_Hit_AllMiss(t *testing.T) {
	_, isHit := NewUnion(mockNode{distance: -1}, mockNode{distance: -1}).Hit(testRay)
	assert.False(t, isHit)
}

func TestUnion_Hit_QueriesEveryChild(t *testing.T) {
	calls := 0
	union := NewUnion(
		mockNode{distance: 1, calls: &calls},
		mockNode{distance: -1, calls: &calls},
		mockNode{distance: 3, calls: &calls},
	)

	_, isHit := union.Hit(testRay)
	assert.True(t, isHit)
	assert.Equal(t, 3, calls)
}

func TestUnion_Hit_TieKeepsEarlierChild(t *testing.T) {
	first := mockNode{distance: 4, material: core.Material{Color: core.Blue}}
	second := mockNode{distance: 4, material: core.Material{Color: core.Yellow}}

	hit, isHit := NewUnion(first, second).Hit(testRay)
	require.True(t, isHit)
	assert.Equal(t, core.Blue, hit.Material.Color)
}

func TestUnion_Hit_Nested(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, 4), 1, core.Material{Color: core.Red, Specular: core.NoSpecular})
	far := NewSphere(core.NewVec3(0, 0, 10), 1, core.Material{Color: core.Blue, Specular: core.NoSpecular})
	offAxis := NewSphere(core.NewVec3(5, 5, 5), 1, core.Material{Color: core.Green, Specular: core.NoSpecular})

	root := NewUnion(NewUnion(far, offAxis), NewUnion(near))

	hit, isHit := root.Hit(testRay)
	require.True(t, isHit)
	assert.Equal(t, float32(3), hit.Distance)
	assert.Equal(t, core.Red, hit.Material.Color)
}

func TestCountPrimitives(t *testing.T) {
	sphere := NewSphere(core.Vec3{}, 1, testMaterial)
	root := NewUnion(sphere, NewUnion(sphere, sphere), NewUnion())

	assert.Equal(t, 3, CountPrimitives(root))
	assert.Equal(t, 1, CountPrimitives(sphere))

	root.Add(sphere)
	assert.Equal(t, 4, CountPrimitives(root))
}
