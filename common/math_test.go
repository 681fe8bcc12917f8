package common

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	Identity(m)
	for i := range 16 {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if m[i] != want {
			t.Fatalf("index %d: got %v, want %v", i, m[i], want)
		}
	}
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)

	m := make([]float32, 16)
	for i := range 16 {
		m[i] = float32(i + 1)
	}

	out := make([]float32, 16)
	Mul4(out, id, m)
	for i := range 16 {
		if out[i] != m[i] {
			t.Fatalf("identity multiply changed index %d: got %v, want %v", i, out[i], m[i])
		}
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func(m []float32)
	}{
		{
			name: "model matrix",
			build: func(m []float32) {
				BuildModelMatrix(m, 1, -2, 3, 0.4, 1.1, -0.2, 2, 2, 0.5)
			},
		},
		{
			name: "look-at",
			build: func(m []float32) {
				LookAt(m, 5, 3, 8, 0, 0, 0, 0, 1, 0)
			},
		},
		{
			name: "perspective",
			build: func(m []float32) {
				Perspective(m, math.Pi/4, 16.0/9.0, 0.1, 100)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := make([]float32, 16)
			tt.build(m)

			inv := make([]float32, 16)
			if !Invert4(inv, m) {
				t.Fatal("matrix should be invertible")
			}

			product := make([]float32, 16)
			Mul4(product, m, inv)

			id := make([]float32, 16)
			Identity(id)
			for i := range 16 {
				if math.Abs(float64(product[i]-id[i])) > 1e-4 {
					t.Fatalf("index %d: got %v, want %v", i, product[i], id[i])
				}
			}
		})
	}
}

func TestInvert4Singular(t *testing.T) {
	m := make([]float32, 16) // all zeros
	inv := make([]float32, 16)
	if Invert4(inv, m) {
		t.Fatal("singular matrix should report non-invertible")
	}
}

func TestPerspectiveDepthConvention(t *testing.T) {
	proj := make([]float32, 16)
	Perspective(proj, math.Pi/3, 1, 2, 20)

	nearPoint := Mul4Vec4(proj, [4]float32{0, 0, -2, 1})
	if math.Abs(float64(nearPoint[2]/nearPoint[3])) > 1e-5 {
		t.Fatalf("near plane depth: got %v, want 0", nearPoint[2]/nearPoint[3])
	}

	farPoint := Mul4Vec4(proj, [4]float32{0, 0, -20, 1})
	if math.Abs(float64(farPoint[2]/farPoint[3]-1)) > 1e-5 {
		t.Fatalf("far plane depth: got %v, want 1", farPoint[2]/farPoint[3])
	}

	// Depth increases monotonically between the planes.
	prev := float32(-1)
	for _, z := range []float32{-2, -5, -10, -15, -20} {
		clip := Mul4Vec4(proj, [4]float32{0, 0, z, 1})
		depth := clip[2] / clip[3]
		if depth <= prev {
			t.Fatalf("depth should increase toward the far plane, got %v after %v", depth, prev)
		}
		prev = depth
	}
}

func TestLookAtTransformsEyeAndForward(t *testing.T) {
	view := make([]float32, 16)
	LookAt(view, 0, 0, 10, 0, 0, 0, 0, 1, 0)

	eye := TransformPoint(view, 0, 0, 10)
	for i := range 3 {
		if math.Abs(float64(eye[i])) > 1e-5 {
			t.Fatalf("eye should map to the origin, got %v", eye)
		}
	}

	// The look target lies straight ahead on the view-space -Z axis.
	target := TransformPoint(view, 0, 0, 0)
	if math.Abs(float64(target[0])) > 1e-5 || math.Abs(float64(target[1])) > 1e-5 {
		t.Fatalf("target should sit on the view axis, got %v", target)
	}
	if target[2] >= 0 {
		t.Fatalf("target should sit in front of the camera at negative Z, got %v", target)
	}
}

func TestTransformDirIgnoresTranslation(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 100, 200, 300, 0, 0, 0, 1, 1, 1)

	dir := TransformDir(m, 0, 0, 1)
	if dir != [3]float32{0, 0, 1} {
		t.Fatalf("direction should ignore translation, got %v", dir)
	}

	point := TransformPoint(m, 0, 0, 1)
	if point[0] != 100 || point[1] != 200 || point[2] != 301 {
		t.Fatalf("point should pick up translation, got %v", point)
	}
}

func TestBuildModelMatrixScale(t *testing.T) {
	m := make([]float32, 16)
	BuildModelMatrix(m, 0, 0, 0, 0, 0, 0, 2, 3, 4)

	p := TransformPoint(m, 1, 1, 1)
	if p[0] != 2 || p[1] != 3 || p[2] != 4 {
		t.Fatalf("scaled point: got %v, want (2 3 4)", p)
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1, 2, 3}
	buf := SliceToBytes(data)
	if len(buf) != 12 {
		t.Fatalf("byte length: got %d, want 12", len(buf))
	}
	if SliceToBytes([]float32(nil)) != nil {
		t.Fatal("nil slice should produce nil bytes")
	}
}
