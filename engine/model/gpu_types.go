package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for lit mesh pipelines.
// Matches GPUVertex layout exactly (32 bytes, tightly packed).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex for lit models.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Occupies shader locations 0 through 2.
// Size: 32 bytes (tightly packed, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0, location 0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12, location 1: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24, location 2: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.TexCoord[1]))
	return buf
}

// VertexBufferLayout returns the wgpu vertex buffer layout for GPUVertex data,
// stepped per vertex at shader locations 0 through 2.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout descriptor
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64((&GPUVertex{}).Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// GPUFlatVertexSource is the canonical WGSL definition of the VertexInput struct for unlit flat pipelines.
// Matches GPUFlatVertex layout exactly (24 bytes, tightly packed).
//
//go:embed assets/flat_vertex.wgsl
var GPUFlatVertexSource string

// GPUFlatVertex is the GPU-aligned representation of a single vertex for the
// flat-shaded pass. Carries a normal for the fixed shading tint but no UV;
// color comes from the instance's material, not the vertex.
// Matches the WGSL VertexInput struct layout for flat pipelines (see GPUFlatVertexSource).
// Size: 24 bytes (tightly packed, no padding required).
type GPUFlatVertex struct {
	Position [3]float32 // offset  0, location 0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12, location 1: vertex normal in model space (12 bytes)
}

// Size returns the size of the GPUFlatVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUFlatVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFlatVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUFlatVertex) Marshal() []byte {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	return buf
}

// FlatVertexBufferLayout returns the wgpu vertex buffer layout for GPUFlatVertex
// data, stepped per vertex at shader locations 0 and 1.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout descriptor
func FlatVertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64((&GPUFlatVertex{}).Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// GPUInstanceSource is the canonical WGSL definition of the InstanceInput struct.
// Matches GPUInstance layout exactly (68 bytes, tightly packed).
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// GPUInstance is the GPU-aligned representation of a single mesh instance.
// The model-to-world matrix is split into four vec4 columns because vertex
// attributes cannot carry a full mat4x4; the vertex shader reassembles them.
// Occupies shader locations 3 through 7, stepped per instance.
// Matches the WGSL InstanceInput struct layout exactly (see GPUInstanceSource).
// Size: 68 bytes (tightly packed, no padding required).
type GPUInstance struct {
	ModelCol0  [4]float32 // offset  0, location 3: model matrix column 0 (16 bytes)
	ModelCol1  [4]float32 // offset 16, location 4: model matrix column 1 (16 bytes)
	ModelCol2  [4]float32 // offset 32, location 5: model matrix column 2 (16 bytes)
	ModelCol3  [4]float32 // offset 48, location 6: model matrix column 3 (16 bytes)
	MaterialID uint32     // offset 64, location 7: index into the material storage buffer (4 bytes)
}

// NewGPUInstance builds a GPUInstance from a flat column-major model matrix and
// a material index.
//
// Parameters:
//   - model: the 16-element column-major model-to-world matrix
//   - materialID: index into the material storage buffer
//
// Returns:
//   - GPUInstance: the GPU-aligned representation
func NewGPUInstance(model [16]float32, materialID uint32) GPUInstance {
	return GPUInstance{
		ModelCol0:  [4]float32{model[0], model[1], model[2], model[3]},
		ModelCol1:  [4]float32{model[4], model[5], model[6], model[7]},
		ModelCol2:  [4]float32{model[8], model[9], model[10], model[11]},
		ModelCol3:  [4]float32{model[12], model[13], model[14], model[15]},
		MaterialID: materialID,
	}
}

// ModelMatrix reassembles the four column attributes into a flat column-major
// matrix.
//
// Returns:
//   - [16]float32: the column-major model-to-world matrix
func (g *GPUInstance) ModelMatrix() [16]float32 {
	return [16]float32{
		g.ModelCol0[0], g.ModelCol0[1], g.ModelCol0[2], g.ModelCol0[3],
		g.ModelCol1[0], g.ModelCol1[1], g.ModelCol1[2], g.ModelCol1[3],
		g.ModelCol2[0], g.ModelCol2[1], g.ModelCol2[2], g.ModelCol2[3],
		g.ModelCol3[0], g.ModelCol3[1], g.ModelCol3[2], g.ModelCol3[3],
	}
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 68-byte buffer ready for GPU upload.
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 68)
	cols := [][4]float32{g.ModelCol0, g.ModelCol1, g.ModelCol2, g.ModelCol3}
	for c, col := range cols {
		for i := range 4 {
			binary.LittleEndian.PutUint32(buf[c*16+i*4:], math.Float32bits(col[i]))
		}
	}
	binary.LittleEndian.PutUint32(buf[64:68], g.MaterialID)
	return buf
}

// InstanceBufferLayout returns the wgpu vertex buffer layout for GPUInstance
// data, stepped per instance at shader locations 3 through 7.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout descriptor
func InstanceBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64((&GPUInstance{}).Size()),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 4},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 6},
			{Format: wgpu.VertexFormatUint32, Offset: 64, ShaderLocation: 7},
		},
	}
}

// MarshalVertexBuffer serializes a slice of GPUVertex values into a contiguous
// byte buffer suitable for GPU upload.
//
// Parameters:
//   - vertices: the vertex data to serialize
//
// Returns:
//   - []byte: the serialized buffer
func MarshalVertexBuffer(vertices []GPUVertex) []byte {
	stride := (&GPUVertex{}).Size()
	buf := make([]byte, len(vertices)*stride)
	for i := range vertices {
		copy(buf[i*stride:], vertices[i].Marshal())
	}
	return buf
}

// MarshalInstanceBuffer serializes a slice of GPUInstance values into a
// contiguous byte buffer suitable for GPU upload.
//
// Parameters:
//   - instances: the instance data to serialize
//
// Returns:
//   - []byte: the serialized buffer
func MarshalInstanceBuffer(instances []GPUInstance) []byte {
	stride := (&GPUInstance{}).Size()
	buf := make([]byte, len(instances)*stride)
	for i := range instances {
		copy(buf[i*stride:], instances[i].Marshal())
	}
	return buf
}
