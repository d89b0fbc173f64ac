package loaders

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-sdf-raytracer/pkg/core"
	"github.com/df07/go-sdf-raytracer/pkg/geometry"
	"github.com/df07/go-sdf-raytracer/pkg/lights"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// lispWriter emits the s-expression scene format. The first write error is kept
// and every later write becomes a no-op.
type lispWriter struct {
	w   io.Writer
	err error
}

// SaveLisp writes the scene as a nested s-expression:
//
//	(scene (camera (vector3 ...) (view_port ...)) (union (list ...)) (list (ambiant ...) ...))
func SaveLisp(w io.Writer, s *scene.Scene) error {
	lw := &lispWriter{w: w}
	lw.scene(s, 0)
	lw.write("\n")
	return lw.err
}

func (lw *lispWriter) write(format string, args ...interface{}) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}

func (lw *lispWriter) indent(level int) {
	lw.write("\n%s", strings.Repeat("    ", level))
}

func number(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func (lw *lispWriter) vector3(v core.Vec3, level int) {
	lw.indent(level)
	lw.write("(vector3 %s %s %s)", number(v.X), number(v.Y), number(v.Z))
}

func (lw *lispWriter) camera(c geometry.Camera, level int) {
	lw.indent(level)
	lw.write("(camera ")
	lw.vector3(c.Position, level+1)
	lw.write(" ")
	lw.indent(level + 1)
	lw.write("(view_port %s %s %s)", number(c.ViewPort.Width), number(c.ViewPort.Height), number(c.ViewPort.Distance))
	lw.write(")")
}

func (lw *lispWriter) material(m core.Material, level int) {
	lw.indent(level)
	lw.write("(material ")
	lw.indent(level + 1)
	lw.write("(color %s %s %s)", number(m.Color.R), number(m.Color.G), number(m.Color.B))
	lw.indent(level + 1)
	lw.write("%s)", number(m.Specular))
}

func (lw *lispWriter) node(node core.Node, level int) {
	switch n := node.(type) {
	case *geometry.UnionNode:
		lw.indent(level)
		lw.write("(union (list")
		for _, child := range n.Nodes {
			lw.write(" ")
			lw.node(child, level+1)
		}
		lw.write("))")
	case *geometry.SphereNode:
		lw.indent(level)
		lw.write("(sphere ")
		lw.vector3(n.Position, level+1)
		lw.indent(level + 1)
		lw.write("%s", number(n.Radius))
		lw.material(n.Material, level+1)
		lw.write(")")
	default:
		if lw.err == nil {
			lw.err = fmt.Errorf("%w %T", ErrUnknownNodeType, node)
		}
	}
}

func (lw *lispWriter) light(light core.Light, level int) {
	lw.indent(level)
	switch l := light.(type) {
	case *lights.AmbientLight:
		lw.write("(%s", lights.LightTypeAmbient)
		lw.indent(level + 1)
		lw.write("%s)", number(l.Intensity))
	case *lights.OmniDirectionalLight:
		lw.write("(%s", lights.LightTypeOmniDirectional)
		lw.indent(level + 1)
		lw.write("%s", number(l.Intensity))
		lw.vector3(l.Position, level+1)
		lw.write(")")
	case *lights.DirectionalLight:
		lw.write("(%s", lights.LightTypeDirectional)
		lw.indent(level + 1)
		lw.write("%s", number(l.Intensity))
		lw.vector3(l.Direction, level+1)
		lw.write(")")
	default:
		if lw.err == nil {
			lw.err = fmt.Errorf("%w %T", ErrUnknownLightType, light)
		}
	}
}

func (lw *lispWriter) scene(s *scene.Scene, level int) {
	lw.write("(scene ")
	lw.camera(s.Camera, level+1)
	lw.write(" ")
	lw.node(s.Root, level+1)
	lw.write(" ")
	lw.indent(level + 1)
	lw.write("(list")
	for _, light := range s.Lights {
		lw.write(" ")
		lw.light(light, level+2)
	}
	lw.write("))")
}
