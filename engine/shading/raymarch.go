package shading

import (
	"github.com/ember-gfx/ember-go/common"
	"github.com/ember-gfx/ember-go/engine/camera"
)

// Raymarch tuning. The step count bounds the march for rays that skim the
// surface; the epsilon is the hit distance threshold.
const (
	MaxMarchSteps = 128
	HitEpsilon    = 0.01
)

// RaymarchResult is the outcome of marching a single ray: whether it hit,
// where, after how many steps, and the depth-buffer value to write. Misses
// always carry depth 1.0 so the raymarched surface composites correctly
// against rasterized geometry sharing the depth buffer.
type RaymarchResult struct {
	Hit   bool
	Point [3]float32
	Steps int
	Depth float32
}

// Raymarcher marches camera rays through a signed distance field, producing
// per-pixel hit points and depth values that match the rasterizer's depth
// convention. It is the CPU counterpart of the raymarch fragment shader.
type Raymarcher struct {
	SDF     SDF
	Uniform camera.GPURayCameraUniform
}

// NewRaymarcher builds a Raymarcher over the given field, viewed through the
// given camera at the given viewport size.
func NewRaymarcher(sdf SDF, cam camera.Camera, width, height uint32) *Raymarcher {
	return &Raymarcher{
		SDF:     sdf,
		Uniform: camera.ToGPURayCameraUniform(cam, width, height),
	}
}

// NearFarFromInvProj recovers the near and far plane distances from an
// inverted perspective projection matrix in the engine's convention
// (right-handed, clip Z in [0, 1]). The inverse of such a projection has
// 1/near at column 3 row 3 and 1/near - 1/far at column 2 row 3; the flat
// column-major indices are 15 and 11.
//
// Parameters:
//   - invProj: the inverse projection matrix, column-major
//
// Returns:
//   - float32: the near plane distance
//   - float32: the far plane distance
func NearFarFromInvProj(invProj [16]float32) (float32, float32) {
	near := 1.0 / invProj[15]
	far := 1.0 / (invProj[15] + invProj[11])
	return near, far
}

// GenerateRay builds the world-space ray through the center of pixel
// (px, py). The pixel is mapped to NDC with a Y flip, unprojected through
// the inverse projection at the near plane, normalized in view space, then
// rotated into world space by the inverse view matrix. The view-space Z of
// the direction is also returned; the depth calculation needs it to convert
// a march distance into a view-space depth.
//
// Returns:
//   - [3]float32: the ray origin (the camera position in world space)
//   - [3]float32: the unit ray direction in world space
//   - float32: the view-space Z component of the unit direction
func (r *Raymarcher) GenerateRay(px, py int) ([3]float32, [3]float32, float32) {
	width := float32(r.Uniform.Viewport[0])
	height := float32(r.Uniform.Viewport[1])

	u := (float32(px) + 0.5) / width
	v := (float32(py) + 0.5) / height
	ndcX := u*2.0 - 1.0
	ndcY := 1.0 - v*2.0

	viewTarget := common.Mul4Vec4(r.Uniform.InvProj[:], [4]float32{ndcX, ndcY, -1, 1})
	dirView := normalize3([3]float32{
		viewTarget[0] / viewTarget[3],
		viewTarget[1] / viewTarget[3],
		viewTarget[2] / viewTarget[3],
	})

	dirWorld := normalize3(common.TransformDir(r.Uniform.InvView[:], dirView[0], dirView[1], dirView[2]))
	origin4 := common.TransformPoint(r.Uniform.InvView[:], 0, 0, 0)
	origin := [3]float32{origin4[0], origin4[1], origin4[2]}

	return origin, dirWorld, dirView[2]
}

// MarchPixel marches the ray through pixel (px, py) and returns the result.
// A ray that starts within HitEpsilon of the surface hits on step zero and
// reports depth 0.0. A ray that leaves the far plane, or exhausts
// MaxMarchSteps without closing on the surface, misses with depth 1.0. A hit
// reports the depth the rasterizer would have written for a fragment at the
// same view-space Z, so the two passes can share a depth buffer.
func (r *Raymarcher) MarchPixel(px, py int) RaymarchResult {
	origin, dir, dirViewZ := r.GenerateRay(px, py)
	near, far := NearFarFromInvProj(r.Uniform.InvProj)

	t := float32(0)
	for i := 0; i < MaxMarchSteps; i++ {
		p := add3(origin, scale3(dir, t))
		d := r.SDF(p)
		if d < HitEpsilon {
			depth := float32(0)
			if i > 0 {
				zView := t * dirViewZ
				a := far / (near - far)
				b := near * far / (near - far)
				depth = (a*zView + b) / (-zView)
			}
			return RaymarchResult{Hit: true, Point: p, Steps: i, Depth: depth}
		}
		t += d
		if t > far {
			break
		}
	}
	return RaymarchResult{Hit: false, Depth: 1.0}
}
