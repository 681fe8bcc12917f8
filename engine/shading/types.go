// Package shading implements the engine's shading programs on the CPU: the
// instanced vertex transform, the material/atlas resolver, the light
// accumulator, and the SDF raymarcher. The WGSL shaders under
// engine/renderer/shader/assets implement the same semantics for the GPU
// path; this package is the reference implementation used by the software
// rasterizer and by tests.
package shading

import "math"

// TransformedVertex is the output of the vertex transform stage: a clip-space
// position plus the world-space interpolants the fragment stage consumes.
type TransformedVertex struct {
	ClipPosition  [4]float32
	WorldPosition [3]float32
	WorldNormal   [3]float32
	TexCoords     [2]float32
	MaterialID    uint32
}

// Fragment is a single shaded sample's input: interpolated world-space
// position and normal, local texture coordinates, and the instance's
// material index.
type Fragment struct {
	WorldPosition [3]float32
	WorldNormal   [3]float32
	TexCoords     [2]float32
	MaterialID    uint32
}

func add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale3(v [3]float32, s float32) [3]float32 {
	return [3]float32{v[0] * s, v[1] * s, v[2] * s}
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func length3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(dot3(v, v))))
}

func normalize3(v [3]float32) [3]float32 {
	length := length3(v)
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	return scale3(v, 1.0/length)
}

// smoothstep is the standard Hermite interpolation between 0 and 1 as x moves
// across [edge0, edge1], clamped outside the band.
func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
