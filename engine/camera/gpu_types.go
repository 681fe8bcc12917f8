package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (128 bytes, std140 aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the forward-pass camera
// uniform buffer. The view and projection matrices are uploaded separately so
// shaders can transform into view space without a second uniform.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 128 bytes.
type GPUCameraUniform struct {
	View [16]float32 // offset  0: view matrix (mat4x4<f32>)
	Proj [16]float32 // offset 64: projection matrix (mat4x4<f32>)
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Proj[i]))
	}
	return buf
}

// GPURayCameraUniformSource is the canonical WGSL definition of the RayCameraUniform struct.
// Matches GPURayCameraUniform layout exactly (144 bytes, std140 aligned).
//
//go:embed assets/ray_camera_uniform.wgsl
var GPURayCameraUniformSource string

// GPURayCameraUniform is the GPU-aligned uniform consumed by the raymarch pass.
// Carries the inverse view and inverse projection matrices used to reconstruct
// per-pixel world-space rays, plus the viewport size in pixels.
// Matches the WGSL RayCameraUniform struct layout exactly (see GPURayCameraUniformSource).
// Size: 144 bytes.
type GPURayCameraUniform struct {
	InvView  [16]float32 // offset   0: inverse view matrix (mat4x4<f32>)
	InvProj  [16]float32 // offset  64: inverse projection matrix (mat4x4<f32>)
	Viewport [2]uint32   // offset 128: viewport width and height in pixels (vec2<u32>)
	_pad     [2]uint32   // offset 136: padding to 144 bytes
}

// Size returns the size of the GPURayCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPURayCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPURayCameraUniform struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPURayCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.InvView[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.InvProj[i]))
	}
	binary.LittleEndian.PutUint32(buf[128:], g.Viewport[0])
	binary.LittleEndian.PutUint32(buf[132:], g.Viewport[1])
	binary.LittleEndian.PutUint32(buf[136:], 0) // _pad
	binary.LittleEndian.PutUint32(buf[140:], 0) // _pad
	return buf
}

// ToGPUCameraUniform snapshots a Camera's view and projection matrices into the
// GPU-aligned uniform struct.
//
// Parameters:
//   - c: the Camera to snapshot
//
// Returns:
//   - GPUCameraUniform: the GPU-aligned representation
func ToGPUCameraUniform(c Camera) GPUCameraUniform {
	return GPUCameraUniform{
		View: c.ViewMatrix(),
		Proj: c.ProjectionMatrix(),
	}
}

// ToGPURayCameraUniform snapshots a Camera's inverse matrices and the viewport
// size into the GPU-aligned raymarch uniform struct.
//
// Parameters:
//   - c: the Camera to snapshot
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//
// Returns:
//   - GPURayCameraUniform: the GPU-aligned representation
func ToGPURayCameraUniform(c Camera, width, height uint32) GPURayCameraUniform {
	return GPURayCameraUniform{
		InvView:  c.InverseViewMatrix(),
		InvProj:  c.InverseProjectionMatrix(),
		Viewport: [2]uint32{width, height},
	}
}
