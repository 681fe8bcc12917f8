package material

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestToGPUMaterialSentinel(t *testing.T) {
	untextured := NewMaterial(WithDiffuseColor(0.5, 0.5, 0.5))
	gpu := ToGPUMaterial(untextured)
	if gpu.DiffuseTextureID != NoTexture {
		t.Fatalf("untextured material should carry the NoTexture sentinel, got %d", gpu.DiffuseTextureID)
	}

	textured := NewMaterial(WithTextureID(3))
	gpu = ToGPUMaterial(textured)
	if gpu.DiffuseTextureID != 3 {
		t.Fatalf("textured material should carry its slot index, got %d", gpu.DiffuseTextureID)
	}
}

func TestGPUMaterialMarshalLayout(t *testing.T) {
	g := GPUMaterial{
		DiffuseColor:     [3]float32{0.25, 0.5, 0.75},
		DiffuseTextureID: NoTexture,
	}
	if g.Size() != 16 {
		t.Fatalf("GPUMaterial size: got %d, want 16", g.Size())
	}

	buf := g.Marshal()
	if len(buf) != 16 {
		t.Fatalf("marshaled length: got %d, want 16", len(buf))
	}
	for i, want := range []float32{0.25, 0.5, 0.75} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
		if got != want {
			t.Fatalf("diffuse component %d: got %v, want %v", i, got, want)
		}
	}
	if got := binary.LittleEndian.Uint32(buf[12:16]); got != NoTexture {
		t.Fatalf("texture ID: got %#x, want %#x", got, NoTexture)
	}
}

func TestMarshalMaterialBufferPreservesIDOrder(t *testing.T) {
	materials := []Material{
		NewMaterial(WithName("red"), WithDiffuseColor(1, 0, 0)),
		NewMaterial(WithName("green"), WithDiffuseColor(0, 1, 0)),
		NewMaterial(WithName("blue"), WithDiffuseColor(0, 0, 1)),
	}

	buf := MarshalMaterialBuffer(materials)
	if len(buf) != 3*16 {
		t.Fatalf("buffer length: got %d, want %d", len(buf), 3*16)
	}

	for i := range 3 {
		r := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*16 : i*16+4]))
		g := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*16+4 : i*16+8]))
		b := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*16+8 : i*16+12]))
		want := [3]float32{0, 0, 0}
		want[i] = 1
		if r != want[0] || g != want[1] || b != want[2] {
			t.Fatalf("entry %d: got (%v %v %v), want %v", i, r, g, b, want)
		}
	}
}

func TestMaterialSetTextureID(t *testing.T) {
	m := NewMaterial()
	if m.TextureID() != nil {
		t.Fatal("new material should start untextured")
	}
	slot := uint32(5)
	m.SetTextureID(&slot)
	if ref := m.TextureID(); ref == nil || *ref != 5 {
		t.Fatalf("texture ID after set: got %v", ref)
	}
	m.SetTextureID(nil)
	if m.TextureID() != nil {
		t.Fatal("clearing the texture ID should restore the untextured state")
	}
}
