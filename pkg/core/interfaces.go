package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NoSpecular is the specular exponent that disables highlights on a material.
// Any exponent at or below it has the same effect.
const NoSpecular float32 = -1

// Material describes how a surface reflects light
type Material struct {
	Color    Color
	Specular float32 // Phong shininess exponent, <= NoSpecular disables the highlight
}

// DebugMaterial is a loud magenta material for surfaces without one
var DebugMaterial = Material{Color: Magenta, Specular: 0}

// HasSpecular reports whether the material has a specular highlight
func (m Material) HasSpecular() bool {
	return m.Specular > NoSpecular
}

// Hit contains information about a ray-surface intersection
type Hit struct {
	Position Vec3     // Point of intersection
	Normal   Vec3     // Unit surface normal at the intersection
	Distance float32  // Ray parameter t of the intersection
	Material Material // Material of the surface that was hit
}

// Node is an element of the scene graph that can be hit by rays.
// Hit must not mutate the node.
type Node interface {
	Hit(ray Ray) (*Hit, bool)
}

// Light computes the scalar intensity it contributes at a hit point.
// inverseDirection points from the hit back toward the ray origin.
type Light interface {
	ComputeIntensity(hit *Hit, inverseDirection Vec3) float32
}

// Canvas is a fixed-size grid of colors with (0, 0) at the bottom-left corner
type Canvas interface {
	Width() int
	Height() int
	Pixel(x, y int) Color
	SetPixel(x, y int, color Color)
}
