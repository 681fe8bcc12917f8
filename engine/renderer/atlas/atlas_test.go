package atlas

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func almostEqualF32(t *testing.T, got, want, tolerance float32) {
	t.Helper()
	if float32(math.Abs(float64(got-want))) > tolerance {
		t.Fatalf("got %v, want %v (tolerance %v)", got, want, tolerance)
	}
}

func TestUVRectValidate(t *testing.T) {
	tests := []struct {
		name    string
		rect    UVRect
		wantErr bool
	}{
		{name: "full atlas", rect: UVRect{Min: [2]float32{0, 0}, Max: [2]float32{1, 1}}},
		{name: "quarter", rect: UVRect{Min: [2]float32{0.5, 0.5}, Max: [2]float32{1, 1}}},
		{name: "degenerate point", rect: UVRect{Min: [2]float32{0.5, 0.5}, Max: [2]float32{0.5, 0.5}}},
		{name: "negative corner", rect: UVRect{Min: [2]float32{-0.1, 0}, Max: [2]float32{1, 1}}, wantErr: true},
		{name: "past unit square", rect: UVRect{Min: [2]float32{0, 0}, Max: [2]float32{1.1, 1}}, wantErr: true},
		{name: "unordered corners", rect: UVRect{Min: [2]float32{0.8, 0}, Max: [2]float32{0.2, 1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rect.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUVRectRemap(t *testing.T) {
	rect := UVRect{Min: [2]float32{0.25, 0.5}, Max: [2]float32{0.75, 1}}

	tests := []struct {
		name         string
		u, v         float32
		wantU, wantV float32
	}{
		{name: "origin maps to min", u: 0, v: 0, wantU: 0.25, wantV: 0.5},
		{name: "one maps to max", u: 1, v: 1, wantU: 0.75, wantV: 1},
		{name: "center interpolates", u: 0.5, v: 0.5, wantU: 0.5, wantV: 0.75},
		{name: "below zero extrapolates", u: -0.5, v: 0, wantU: 0, wantV: 0.5},
		{name: "above one extrapolates", u: 1.5, v: 1, wantU: 1, wantV: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotU, gotV := rect.Remap(tt.u, tt.v)
			almostEqualF32(t, gotU, tt.wantU, 1e-6)
			almostEqualF32(t, gotV, tt.wantV, 1e-6)
		})
	}
}

func TestAddTextureAssignsSequentialSlots(t *testing.T) {
	a := NewAtlas(64, 64)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	first, err := a.AddTexture(img, UVRect{Min: [2]float32{0, 0}, Max: [2]float32{0.5, 0.5}})
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	second, err := a.AddTexture(img, UVRect{Min: [2]float32{0.5, 0}, Max: [2]float32{1, 0.5}})
	if err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	if first != 0 || second != 1 {
		t.Fatalf("slots should assign sequentially, got %d and %d", first, second)
	}

	rect, err := a.Rect(second)
	if err != nil {
		t.Fatalf("Rect: %v", err)
	}
	if rect.Min != [2]float32{0.5, 0} {
		t.Fatalf("stored rect min: got %v", rect.Min)
	}
	if _, err := a.Rect(99); err == nil {
		t.Fatal("out-of-range slot should error")
	}
}

func TestAddTextureRejectsInvalidRect(t *testing.T) {
	a := NewAtlas(16, 16)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, err := a.AddTexture(img, UVRect{Min: [2]float32{0.5, 0}, Max: [2]float32{0.2, 1}}); err == nil {
		t.Fatal("unordered rect should be rejected")
	}
	if len(a.Rects()) != 0 {
		t.Fatal("rejected textures must not occupy slots")
	}
}

func TestSampleCompositedRegions(t *testing.T) {
	a := NewAtlas(32, 32)

	solid := func(c color.RGBA) image.Image {
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.SetRGBA(x, y, c)
			}
		}
		return img
	}

	if _, err := a.AddTexture(solid(color.RGBA{R: 255, A: 255}), UVRect{Min: [2]float32{0, 0}, Max: [2]float32{0.5, 1}}); err != nil {
		t.Fatalf("AddTexture: %v", err)
	}
	if _, err := a.AddTexture(solid(color.RGBA{B: 255, A: 255}), UVRect{Min: [2]float32{0.5, 0}, Max: [2]float32{1, 1}}); err != nil {
		t.Fatalf("AddTexture: %v", err)
	}

	left := a.Sample(0.25, 0.5)
	almostEqualF32(t, left[0], 1, 0.01)
	almostEqualF32(t, left[2], 0, 0.01)

	right := a.Sample(0.75, 0.5)
	almostEqualF32(t, right[2], 1, 0.01)
	almostEqualF32(t, right[0], 0, 0.01)
}

func TestSampleClampsToEdge(t *testing.T) {
	a := NewAtlas(8, 8)
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{G: 255, A: 255})
		}
	}
	if _, err := a.AddTexture(img, UVRect{Min: [2]float32{0, 0}, Max: [2]float32{1, 1}}); err != nil {
		t.Fatalf("AddTexture: %v", err)
	}

	for _, uv := range [][2]float32{{-1, 0.5}, {2, 0.5}, {0.5, -3}, {0.5, 5}} {
		got := a.Sample(uv[0], uv[1])
		almostEqualF32(t, got[1], 1, 0.01)
	}
}

func TestStagingDataSnapshotsPixels(t *testing.T) {
	a := NewAtlas(16, 8)
	staging := a.StagingData()
	if staging.Width != 16 || staging.Height != 8 {
		t.Fatalf("staging dimensions: got %dx%d, want 16x8", staging.Width, staging.Height)
	}
	if len(staging.Pixels) != 16*8*4 {
		t.Fatalf("staging pixel length: got %d, want %d", len(staging.Pixels), 16*8*4)
	}

	// The snapshot must not alias the backing store.
	staging.Pixels[0] = 0xFF
	fresh := a.StagingData()
	if fresh.Pixels[0] == 0xFF {
		t.Fatal("StagingData should copy the backing pixels")
	}
}
