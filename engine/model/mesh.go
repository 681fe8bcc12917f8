package model

import "encoding/binary"

// Mesh is a CPU-side triangle mesh ready for upload: a vertex slice and a
// uint32 index slice forming a triangle list.
type Mesh struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// VertexData serializes the mesh's vertices into a buffer suitable for a GPU
// vertex buffer.
//
// Returns:
//   - []byte: the serialized vertex buffer
func (m *Mesh) VertexData() []byte {
	return MarshalVertexBuffer(m.Vertices)
}

// IndexData serializes the mesh's indices into a buffer suitable for a GPU
// index buffer (32-bit indices, little-endian).
//
// Returns:
//   - []byte: the serialized index buffer
func (m *Mesh) IndexData() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// IndexCount returns the number of indices in the mesh.
//
// Returns:
//   - uint32: the index count
func (m *Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}
