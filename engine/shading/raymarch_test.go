package shading

import (
	"math"
	"testing"

	"github.com/ember-gfx/ember-go/common"
	"github.com/ember-gfx/ember-go/engine/camera"
)

func TestNearFarFromInvProj(t *testing.T) {
	tests := []struct {
		name      string
		near, far float32
		fov       float32
		aspect    float32
		tolerance float32
	}{
		{name: "default camera planes", near: 0.1, far: 100, fov: math.Pi / 4, aspect: 16.0 / 9.0, tolerance: 0.01},
		{name: "tight planes", near: 1, far: 10, fov: math.Pi / 3, aspect: 1, tolerance: 0.001},
		{name: "deep scene", near: 0.5, far: 5000, fov: math.Pi / 6, aspect: 2, tolerance: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proj := make([]float32, 16)
			common.Perspective(proj, tt.fov, tt.aspect, tt.near, tt.far)

			inv := make([]float32, 16)
			if !common.Invert4(inv, proj) {
				t.Fatal("projection matrix should be invertible")
			}

			var invProj [16]float32
			copy(invProj[:], inv)
			near, far := NearFarFromInvProj(invProj)
			if float32(math.Abs(float64(near-tt.near))) > tt.tolerance {
				t.Fatalf("near: got %v, want %v", near, tt.near)
			}
			if float32(math.Abs(float64(far-tt.far))) > tt.tolerance {
				t.Fatalf("far: got %v, want %v", far, tt.far)
			}
		})
	}
}

func TestMarchPixelHitOnSurfaceStart(t *testing.T) {
	// Camera sitting on a huge sphere's surface: the first sample is
	// already within the hit epsilon, so the march terminates on step zero
	// and reports depth 0.
	cam := camera.NewCamera(
		camera.WithEye(0, 0, 10),
		camera.WithTarget(0, 0, 0),
	)
	r := NewRaymarcher(Sphere(10), cam, 64, 64)

	result := r.MarchPixel(32, 32)
	if !result.Hit {
		t.Fatal("ray starting on the surface should hit")
	}
	if result.Steps != 0 {
		t.Fatalf("on-surface start should hit immediately, took %d steps", result.Steps)
	}
	if result.Depth != 0 {
		t.Fatalf("step-zero hit should write depth 0, got %v", result.Depth)
	}
}

func TestMarchPixelMissWritesFarDepth(t *testing.T) {
	// The scene sits behind the camera, so every ray walks off to the far
	// plane without ever closing on the surface.
	cam := camera.NewCamera(
		camera.WithEye(0, 0, 5),
		camera.WithTarget(0, 0, 10),
	)
	r := NewRaymarcher(Sphere(1), cam, 32, 32)

	for _, px := range [][2]int{{0, 0}, {16, 16}, {31, 31}} {
		result := r.MarchPixel(px[0], px[1])
		if result.Hit {
			t.Fatalf("pixel %v: ray pointing away from the scene should miss", px)
		}
		if result.Depth != 1.0 {
			t.Fatalf("pixel %v: miss should write depth 1.0, got %v", px, result.Depth)
		}
	}
}

func TestMarchPixelDepthMatchesRasterizer(t *testing.T) {
	// A hit's depth must equal what the projection produces for a point at
	// the same view-space Z, so raymarched and rasterized geometry can
	// share one depth buffer.
	cam := camera.NewCamera(
		camera.WithEye(0, 0, 8),
		camera.WithTarget(0, 0, 0),
		camera.WithAspect(1),
	)
	r := NewRaymarcher(Sphere(1), cam, 65, 65)

	result := r.MarchPixel(32, 32)
	if !result.Hit {
		t.Fatal("center ray should hit the sphere")
	}

	// Project the hit point through the camera's view and projection and
	// compare the post-divide Z against the marched depth.
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	viewPos := common.Mul4Vec4(view[:], [4]float32{result.Point[0], result.Point[1], result.Point[2], 1})
	clipPos := common.Mul4Vec4(proj[:], viewPos)
	wantDepth := clipPos[2] / clipPos[3]

	if float32(math.Abs(float64(result.Depth-wantDepth))) > 0.002 {
		t.Fatalf("depth: got %v, want %v (hit point %v)", result.Depth, wantDepth, result.Point)
	}
	if result.Depth <= 0 || result.Depth >= 1 {
		t.Fatalf("hit depth should land inside (0, 1), got %v", result.Depth)
	}
}

func TestMarchPixelTorusScene(t *testing.T) {
	// Viewed from above, the torus ring fills the mid-radius of the frame
	// while the center pixel looks through the hole.
	cam := camera.NewCamera(
		camera.WithEye(0, 10, 0),
		camera.WithTarget(0, 0, 0),
		camera.WithUp(0, 0, -1),
		camera.WithAspect(1),
	)
	r := NewRaymarcher(Torus(3, 0.5), cam, 128, 128)

	center := r.MarchPixel(64, 64)
	if center.Hit {
		t.Fatalf("center ray should pass through the torus hole, hit at %v", center.Point)
	}
	if center.Depth != 1.0 {
		t.Fatalf("hole ray should write depth 1.0, got %v", center.Depth)
	}

	// Sweep a scanline through the frame center; the ring must appear on
	// both sides of the hole with depth inside (0, 1).
	hits := 0
	for x := 0; x < 128; x++ {
		result := r.MarchPixel(x, 64)
		if !result.Hit {
			continue
		}
		hits++
		if result.Depth <= 0 || result.Depth >= 1 {
			t.Fatalf("pixel %d: ring depth should land inside (0, 1), got %v", x, result.Depth)
		}
	}
	if hits == 0 {
		t.Fatal("scanline through the frame center should cross the torus ring")
	}
}

func TestGenerateRayCenterPixelLooksForward(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithEye(1, 2, 3),
		camera.WithTarget(1, 2, -7),
		camera.WithAspect(1),
	)
	r := NewRaymarcher(Sphere(1), cam, 65, 65)

	origin, dir, dirViewZ := r.GenerateRay(32, 32)
	almostEqual3(t, origin, [3]float32{1, 2, 3}, 1e-5)
	almostEqual3(t, dir, [3]float32{0, 0, -1}, 1e-3)
	if float32(math.Abs(float64(dirViewZ+1))) > 1e-3 {
		t.Fatalf("center ray view-space Z should be -1, got %v", dirViewZ)
	}
}
