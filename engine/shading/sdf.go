package shading

import "math"

// SDF is a signed distance field: negative inside the surface, positive
// outside, zero on it.
type SDF func(p [3]float32) float32

// Sphere returns the SDF of a sphere of the given radius centered at the
// origin.
func Sphere(radius float32) SDF {
	return func(p [3]float32) float32 {
		return length3(p) - radius
	}
}

// Torus returns the SDF of a torus in the XZ plane centered at the origin,
// with ring radius radius and tube radius thickness.
func Torus(radius, thickness float32) SDF {
	return func(p [3]float32) float32 {
		ring := float32(math.Sqrt(float64(p[0]*p[0]+p[2]*p[2]))) - radius
		return float32(math.Sqrt(float64(ring*ring+p[1]*p[1]))) - thickness
	}
}

// Box returns the SDF of an axis-aligned box centered at the origin with the
// given half extents.
func Box(halfExtents [3]float32) SDF {
	return func(p [3]float32) float32 {
		q := [3]float32{
			float32(math.Abs(float64(p[0]))) - halfExtents[0],
			float32(math.Abs(float64(p[1]))) - halfExtents[1],
			float32(math.Abs(float64(p[2]))) - halfExtents[2],
		}
		outside := [3]float32{max(q[0], 0), max(q[1], 0), max(q[2], 0)}
		inside := min(max(q[0], max(q[1], q[2])), 0)
		return length3(outside) + inside
	}
}

// Translate shifts an SDF by the given offset.
func Translate(sdf SDF, offset [3]float32) SDF {
	return func(p [3]float32) float32 {
		return sdf(sub3(p, offset))
	}
}

// Union combines SDFs by taking the minimum distance at each point.
func Union(sdfs ...SDF) SDF {
	return func(p [3]float32) float32 {
		d := float32(math.Inf(1))
		for _, sdf := range sdfs {
			d = min(d, sdf(p))
		}
		return d
	}
}

// EstimateNormal approximates the surface normal at a point by central
// differences over the field.
func EstimateNormal(sdf SDF, p [3]float32) [3]float32 {
	const e = 0.001
	return normalize3([3]float32{
		sdf([3]float32{p[0] + e, p[1], p[2]}) - sdf([3]float32{p[0] - e, p[1], p[2]}),
		sdf([3]float32{p[0], p[1] + e, p[2]}) - sdf([3]float32{p[0], p[1] - e, p[2]}),
		sdf([3]float32{p[0], p[1], p[2] + e}) - sdf([3]float32{p[0], p[1], p[2] - e}),
	})
}
