package lights

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// reflectance computes the diffuse and specular contribution of a light arriving
// along l (from the surface toward the source, not normalized) at hit, seen from v.
func reflectance(hit *core.Hit, l, v core.Vec3, intensity float32) float32 {
	n := hit.Normal
	var total float32

	// Diffuse, only on the lit side
	nDotL := n.Dot(l)
	if nDotL > 0 {
		total += intensity * nDotL / (n.Length() * l.Length())
	}

	// Specular
	if hit.Material.HasSpecular() {
		r := n.Multiply(nDotL * 2).Subtract(l)
		rDotV := r.Dot(v)
		if rDotV > 0 {
			total += intensity * math32.Pow(rDotV/(r.Length()*v.Length()), hit.Material.Specular)
		}
	}

	return total
}

// TotalIntensity sums the contribution of every light at hit
func TotalIntensity(lights []core.Light, hit *core.Hit, inverseDirection core.Vec3) float32 {
	var total float32
	for _, light := range lights {
		total += light.ComputeIntensity(hit, inverseDirection)
	}
	return total
}
