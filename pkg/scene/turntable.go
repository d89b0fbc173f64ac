package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
)

// Turntable returns a copy of s with geometry and lights rotated by angle radians
// around the vertical axis through pivot. The camera stays fixed and s is not modified.
func Turntable(s *Scene, pivot core.Vec3, angle float32) *Scene {
	rotation := mgl32.Rotate3DY(angle)
	rotatePoint := func(p core.Vec3) core.Vec3 {
		local := p.Subtract(pivot).Mgl()
		return core.Vec3FromMgl(rotation.Mul3x1(local)).Add(pivot)
	}
	rotateDirection := func(d core.Vec3) core.Vec3 {
		return core.Vec3FromMgl(rotation.Mul3x1(d.Mgl()))
	}

	rotated := &Scene{
		Name:        s.Name,
		Description: s.Description,
		Group:       s.Group,
		Camera:      s.Camera,
		Root:        rotateNode(s.Root, rotatePoint),
		Lights:      make([]core.Light, 0, len(s.Lights)),
	}

	for _, light := range s.Lights {
		switch l := light.(type) {
		case *lights.OmniDirectionalLight:
			rotated.Lights = append(rotated.Lights, lights.NewOmniDirectionalLight(rotatePoint(l.Position), l.Intensity))
		case *lights.DirectionalLight:
			rotated.Lights = append(rotated.Lights, lights.NewDirectionalLight(rotateDirection(l.Direction), l.Intensity))
		default:
			rotated.Lights = append(rotated.Lights, light)
		}
	}

	return rotated
}

// rotateNode deep-copies the known node kinds. Unknown nodes are shared as-is.
func rotateNode(node core.Node, rotatePoint func(core.Vec3) core.Vec3) core.Node {
	switch n := node.(type) {
	case *geometry.SphereNode:
		return geometry.NewSphere(rotatePoint(n.Position), n.Radius, n.Material)
	case *geometry.UnionNode:
		children := make([]core.Node, len(n.Nodes))
		for i, child := range n.Nodes {
			children[i] = rotateNode(child, rotatePoint)
		}
		return geometry.NewUnion(children...)
	default:
		return node
	}
}
