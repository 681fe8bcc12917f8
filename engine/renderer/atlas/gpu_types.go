package atlas

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUUVRectSource is the canonical WGSL definition of the UVRect struct.
// Matches GPUUVRect layout exactly (16 bytes, std430 aligned).
//
//go:embed assets/uv_rect.wgsl
var GPUUVRectSource string

// GPUUVRect is the GPU-aligned representation of a single atlas slot entry in
// the UV rect storage buffer. The shader indexes this buffer by a material's
// texture ID and remaps local UVs through the rect.
// Matches the WGSL UVRect struct layout exactly (see GPUUVRectSource).
// Size: 16 bytes (std430 / WGSL aligned).
type GPUUVRect struct {
	Min [2]float32 // offset 0: top-left corner in atlas UV space
	Max [2]float32 // offset 8: bottom-right corner in atlas UV space
}

// Size returns the size of the GPUUVRect struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUUVRect) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUUVRect struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUUVRect) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Min[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Min[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Max[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Max[1]))
	return buf
}

// MarshalUVRectBuffer marshals a slot table into a byte buffer suitable for
// GPU upload. Slot order must match the order materials reference; use
// Atlas.Rects to obtain the table.
//
// Parameters:
//   - rects: the slot table in slot order
//
// Returns:
//   - []byte: the marshaled storage buffer ready for GPU upload
func MarshalUVRectBuffer(rects []UVRect) []byte {
	stride := (&GPUUVRect{}).Size()
	buf := make([]byte, len(rects)*stride)
	for i, r := range rects {
		gpu := GPUUVRect{Min: r.Min, Max: r.Max}
		copy(buf[i*stride:], gpu.Marshal())
	}
	return buf
}
