package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxGPULights is the maximum number of lights that can be marshaled into the
// GPU storage buffer per frame. The CPU-side light list is unbounded; this cap
// controls only how many lights the GPU evaluates. Lights beyond the cap are
// silently dropped.
const MaxGPULights = 256

// GPULightSource is the canonical WGSL definition of the Light struct.
// Matches GPULight layout exactly (48 bytes, std430 aligned).
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of a single light source.
// Matches the WGSL Light struct layout exactly (see GPULightSource).
// Size: 48 bytes (std430 / WGSL aligned).
type GPULight struct {
	Position  [3]float32 // offset  0: world-space position (point/spot) or unused (directional)
	Intensity float32    // offset 12: scalar multiplier
	Direction [3]float32 // offset 16: normalized direction (directional/spot) or unused (point)
	Cutoff    float32    // offset 28: cos(cone half-angle) for spot
	Color     [3]float32 // offset 32: RGB color
	LightType uint32     // offset 44: 0 = point, 1 = directional, 2 = spot
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 48)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Direction[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Direction[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Direction[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Cutoff))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[44:48], uint32(g.LightType))
	return buf
}

// GPULightCountSource is the canonical WGSL definition of the LightCount struct.
// Matches GPULightCount layout exactly (16 bytes, uniform aligned).
//
//go:embed assets/light_count.wgsl
var GPULightCountSource string

// GPULightCount is the uniform holding the number of active lights in the
// storage buffer. The shader loops over exactly this many entries; any stale
// data past the count is never read.
// Matches the WGSL LightCount struct layout exactly (see GPULightCountSource).
// Size: 16 bytes (u32 padded to uniform alignment).
type GPULightCount struct {
	Count uint32    // offset 0: number of active lights
	_pad  [3]uint32 // offset 4: padding to 16 bytes
}

// Size returns the size of the GPULightCount struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (c *GPULightCount) Size() int {
	return int(unsafe.Sizeof(*c))
}

// Marshal serializes the GPULightCount struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (c *GPULightCount) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], c.Count)
	return buf
}

// ToGPULight converts a Light interface value into the GPU-aligned GPULight
// struct suitable for writing into the light storage buffer.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	return GPULight{
		Position:  l.Position(),
		Intensity: l.Intensity(),
		Direction: l.Direction(),
		Cutoff:    l.Cutoff(),
		Color:     l.Color(),
		LightType: uint32(l.Type()),
	}
}

// MarshalLightBuffer marshals a slice of enabled lights into a byte buffer
// suitable for GPU upload, along with the count of lights written. The storage
// buffer and the count uniform are bound separately, so the count is returned
// rather than prepended.
//
// Only enabled lights are included, up to MaxGPULights. The relative order of
// the input slice is preserved.
//
// Parameters:
//   - lights: the full slice of lights to marshal (only enabled lights are included)
//
// Returns:
//   - []byte: the marshaled storage buffer ready for GPU upload
//   - uint32: the number of lights written
func MarshalLightBuffer(lights []Light) ([]byte, uint32) {
	lightSize := (&GPULight{}).Size()

	// Pre-count enabled lights to size the buffer.
	enabledCount := 0
	for _, l := range lights {
		if l.Enabled() {
			enabledCount++
			if enabledCount >= MaxGPULights {
				break
			}
		}
	}

	buf := make([]byte, enabledCount*lightSize)

	offset := 0
	written := 0
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		if written >= MaxGPULights {
			break
		}
		gpu := ToGPULight(l)
		copy(buf[offset:offset+lightSize], gpu.Marshal())
		offset += lightSize
		written++
	}

	return buf, uint32(written)
}
