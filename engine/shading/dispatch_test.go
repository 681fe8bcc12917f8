package shading

import (
	"math"
	"testing"

	"github.com/ember-gfx/ember-go/engine/camera"
	"github.com/ember-gfx/ember-go/engine/light"
	"github.com/ember-gfx/ember-go/engine/renderer/material"
)

func TestRenderDepthMatchesSerialMarch(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithEye(0, 0, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithAspect(1),
	)
	r := NewRaymarcher(Sphere(2), cam, 33, 33)

	d := NewDispatcher(4)
	depth := d.RenderDepth(r)
	if len(depth) != 33*33 {
		t.Fatalf("expected %d depth samples, got %d", 33*33, len(depth))
	}

	for _, px := range [][2]int{{16, 16}, {0, 0}, {32, 16}, {16, 32}} {
		want := r.MarchPixel(px[0], px[1]).Depth
		got := depth[px[1]*33+px[0]]
		if got != want {
			t.Fatalf("pixel %v: parallel depth %v differs from serial %v", px, got, want)
		}
	}
}

// TestRenderDepthOversubscribedQueue submits far more rows than the pool's
// task queue holds. Rows the pool turns away must still run so the frame
// barrier releases and every depth sample is written.
func TestRenderDepthOversubscribedQueue(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithEye(0, 0, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithAspect(1),
	)
	// Scene far behind the camera so every ray overshoots fast.
	r := NewRaymarcher(Translate(Sphere(1), [3]float32{0, 0, 1000}), cam, 4, 600)

	d := NewDispatcher(2)
	depth := d.RenderDepth(r)
	if len(depth) != 4*600 {
		t.Fatalf("expected %d depth samples, got %d", 4*600, len(depth))
	}
	for i, v := range depth {
		if v != 1.0 {
			t.Fatalf("sample %d: misses should write far depth 1.0, got %v", i, v)
		}
	}
}

func TestRenderImageShadesHits(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithEye(0, 0, 10),
		camera.WithTarget(0, 0, 0),
		camera.WithAspect(1),
	)
	r := NewRaymarcher(Sphere(2), cam, 33, 33)

	d := NewDispatcher(2)
	img, depth := d.RenderImage(r, [3]float32{0, 0, -1})

	center := img.RGBAAt(16, 16)
	if center.A != 255 {
		t.Fatalf("center pixel should be an opaque hit, got alpha %d", center.A)
	}
	if center.R < 200 {
		t.Fatalf("surface facing the light should shade bright, got %d", center.R)
	}
	if depth[16*33+16] >= 1 {
		t.Fatalf("center hit should write depth below 1, got %v", depth[16*33+16])
	}

	corner := img.RGBAAt(0, 0)
	if corner.A != 0 {
		t.Fatalf("corner pixel should miss and stay transparent, got alpha %d", corner.A)
	}
}

func TestShadeFragmentsPreservesOrder(t *testing.T) {
	resolver := Resolver{
		Materials: []material.GPUMaterial{
			{DiffuseColor: [3]float32{1, 0, 0}, DiffuseTextureID: material.NoTexture},
			{DiffuseColor: [3]float32{0, 1, 0}, DiffuseTextureID: material.NoTexture},
		},
	}
	env := LightEnvironment{}

	frags := make([]Fragment, 100)
	for i := range frags {
		frags[i] = Fragment{
			WorldNormal: [3]float32{0, 1, 0},
			MaterialID:  uint32(i % 2),
		}
	}

	d := NewDispatcher(3)
	out := d.ShadeFragments(frags, resolver, env)
	if len(out) != len(frags) {
		t.Fatalf("expected %d shaded fragments, got %d", len(frags), len(out))
	}
	for i, c := range out {
		if i%2 == 0 && (c[0] == 0 || c[1] != 0) {
			t.Fatalf("fragment %d: expected red material output, got %v", i, c)
		}
		if i%2 == 1 && (c[1] == 0 || c[0] != 0) {
			t.Fatalf("fragment %d: expected green material output, got %v", i, c)
		}
	}
}

// TestShadePipelineEndToEnd runs the full lit path for one fragment the way
// a frame would: camera-facing surface, one overhead directional light, an
// untextured white material. The lit color must come out as ambient plus the
// lambert term of the surface normal against straight-up.
func TestShadePipelineEndToEnd(t *testing.T) {
	resolver := Resolver{
		Materials: []material.GPUMaterial{{
			DiffuseColor:     [3]float32{1, 1, 1},
			DiffuseTextureID: material.NoTexture,
		}},
	}
	env := LightEnvironment{
		Lights: []light.GPULight{{
			Direction: [3]float32{0, -1, 0},
			Intensity: 1,
			Color:     [3]float32{1, 1, 1},
			LightType: uint32(light.LightTypeDirectional),
		}},
		Count: 1,
	}

	for _, tilt := range []float32{0, 0.25, 0.5, 0.75, 1} {
		normal := normalize3([3]float32{tilt, 1 - tilt, 0})
		got := resolver.ShadeFragment(Fragment{WorldNormal: normal}, env)
		want := 0.1 + max(normal[1], 0)
		if float32(math.Abs(float64(got[0]-want))) > 1e-5 {
			t.Fatalf("tilt %v: got %v, want rgb %v", tilt, got, want)
		}
	}
}
