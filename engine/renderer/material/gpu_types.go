package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// NoTexture is the sentinel texture ID written for untextured materials. The
// shader and the software resolver both treat this value as "sample opaque
// white", so the diffuse tint passes through unchanged.
const NoTexture = ^uint32(0)

// GPUMaterialSource is the canonical WGSL definition of the Material struct.
// Matches GPUMaterial layout exactly (16 bytes, std430 aligned).
//
//go:embed assets/material.wgsl
var GPUMaterialSource string

// GPUMaterial is the GPU-aligned representation of a single material entry in
// the material storage buffer. Instances index into this buffer by material ID.
// Matches the WGSL Material struct layout exactly (see GPUMaterialSource).
// Size: 16 bytes (std430 / WGSL aligned).
type GPUMaterial struct {
	DiffuseColor     [3]float32 // offset  0: RGB tint multiplied with the sampled texture color
	DiffuseTextureID uint32     // offset 12: atlas slot index, or NoTexture for untextured
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.DiffuseColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.DiffuseColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.DiffuseColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.DiffuseTextureID)
	return buf
}

// ToGPUMaterial converts a Material interface value into the GPU-aligned
// GPUMaterial struct. An absent texture reference becomes the NoTexture
// sentinel.
//
// Parameters:
//   - m: the Material to convert
//
// Returns:
//   - GPUMaterial: the GPU-aligned representation
func ToGPUMaterial(m Material) GPUMaterial {
	id := NoTexture
	if ref := m.TextureID(); ref != nil {
		id = *ref
	}
	return GPUMaterial{
		DiffuseColor:     m.DiffuseColor(),
		DiffuseTextureID: id,
	}
}

// MarshalMaterialBuffer marshals a slice of materials into a byte buffer
// suitable for GPU upload. The slice order defines the material IDs that
// instances reference, so callers must keep it stable across frames.
//
// Parameters:
//   - materials: the materials to marshal, in ID order
//
// Returns:
//   - []byte: the marshaled storage buffer ready for GPU upload
func MarshalMaterialBuffer(materials []Material) []byte {
	stride := (&GPUMaterial{}).Size()
	buf := make([]byte, len(materials)*stride)
	for i, m := range materials {
		gpu := ToGPUMaterial(m)
		copy(buf[i*stride:], gpu.Marshal())
	}
	return buf
}
