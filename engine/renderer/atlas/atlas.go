package atlas

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"

	"github.com/ember-gfx/ember-go/common"
)

// UVRect describes a sub-region of the atlas in normalized texture
// coordinates. Both corners lie in [0, 1] with Min component-wise less than or
// equal to Max.
type UVRect struct {
	Min [2]float32 // top-left corner in atlas UV space
	Max [2]float32 // bottom-right corner in atlas UV space
}

// Validate checks that the rect's corners are ordered and within the unit
// square.
//
// Returns:
//   - error: nil if valid, otherwise a description of the violation
func (r UVRect) Validate() error {
	for i := range 2 {
		if r.Min[i] < 0 || r.Max[i] > 1 {
			return fmt.Errorf("uv rect out of unit square: min %v max %v", r.Min, r.Max)
		}
		if r.Min[i] > r.Max[i] {
			return fmt.Errorf("uv rect corners unordered: min %v max %v", r.Min, r.Max)
		}
	}
	return nil
}

// Remap transforms local texture coordinates into atlas coordinates:
// (0,0) maps to Min, (1,1) maps to Max, and values in between interpolate
// linearly. Inputs outside [0,1] extrapolate rather than clamp, matching the
// sampler's addressing behavior at the rect edge.
//
// Parameters:
//   - u, v: local texture coordinates
//
// Returns:
//   - float32: remapped u in atlas space
//   - float32: remapped v in atlas space
func (r UVRect) Remap(u, v float32) (float32, float32) {
	return r.Min[0] + (r.Max[0]-r.Min[0])*u, r.Min[1] + (r.Max[1]-r.Min[1])*v
}

// atlasImpl is the implementation of the Atlas interface.
type atlasImpl struct {
	mu      sync.RWMutex
	backing *image.RGBA
	rects   []UVRect
}

// Atlas is a single shared texture holding many individual textures, each in
// its own UV sub-rectangle. Materials reference textures by slot index; the
// shader remaps local UVs through the slot's rect before sampling.
//
// Packing the atlas (deciding where each texture lands) happens upstream; the
// atlas composites images into caller-supplied rects and serves the rect table
// and pixel data for GPU upload.
type Atlas interface {
	// AddTexture scales the given image into the pixel region covered by the
	// given UV rect and records the rect in the slot table.
	//
	// Parameters:
	//   - img: the source image to composite
	//   - rect: the destination region in atlas UV space
	//
	// Returns:
	//   - uint32: the slot index assigned to the texture
	//   - error: non-nil if the rect is invalid
	AddTexture(img image.Image, rect UVRect) (uint32, error)

	// Rect returns the UV rect for a texture slot.
	//
	// Parameters:
	//   - slot: the texture slot index
	//
	// Returns:
	//   - UVRect: the rect for the slot
	//   - error: non-nil if the slot is out of range
	Rect(slot uint32) (UVRect, error)

	// Rects returns a copy of the full slot table in slot order.
	//
	// Returns:
	//   - []UVRect: the rect table
	Rects() []UVRect

	// Sample bilinearly samples the atlas at normalized coordinates, with
	// clamp-to-edge addressing. Used by the software shading path; the GPU
	// path samples the uploaded texture directly.
	//
	// Parameters:
	//   - u, v: normalized atlas coordinates
	//
	// Returns:
	//   - [4]float32: the sampled RGBA color, each channel in [0, 1]
	Sample(u, v float32) [4]float32

	// StagingData snapshots the composited pixel data for GPU texture upload.
	//
	// Returns:
	//   - common.TextureStagingData: RGBA pixels plus dimensions
	StagingData() common.TextureStagingData
}

var _ Atlas = &atlasImpl{}

// NewAtlas creates an empty atlas with the given backing dimensions in pixels.
//
// Parameters:
//   - width: backing texture width in pixels
//   - height: backing texture height in pixels
//
// Returns:
//   - Atlas: a new Atlas instance
func NewAtlas(width, height int) Atlas {
	return &atlasImpl{
		backing: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (a *atlasImpl) AddTexture(img image.Image, rect UVRect) (uint32, error) {
	if err := rect.Validate(); err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	bounds := a.backing.Bounds()
	dst := image.Rect(
		int(rect.Min[0]*float32(bounds.Dx())),
		int(rect.Min[1]*float32(bounds.Dy())),
		int(rect.Max[0]*float32(bounds.Dx())),
		int(rect.Max[1]*float32(bounds.Dy())),
	)
	draw.ApproxBiLinear.Scale(a.backing, dst, img, img.Bounds(), draw.Src, nil)

	a.rects = append(a.rects, rect)
	return uint32(len(a.rects) - 1), nil
}

func (a *atlasImpl) Rect(slot uint32) (UVRect, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if int(slot) >= len(a.rects) {
		return UVRect{}, fmt.Errorf("atlas slot %d out of range (%d slots)", slot, len(a.rects))
	}
	return a.rects[slot], nil
}

func (a *atlasImpl) Rects() []UVRect {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]UVRect, len(a.rects))
	copy(out, a.rects)
	return out
}

func (a *atlasImpl) Sample(u, v float32) [4]float32 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	bounds := a.backing.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Texel centers sit at half-pixel offsets.
	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5

	x0 := clampInt(int(floorF32(fx)), 0, w-1)
	y0 := clampInt(int(floorF32(fy)), 0, h-1)
	x1 := clampInt(x0+1, 0, w-1)
	y1 := clampInt(y0+1, 0, h-1)

	tx := clampF32(fx-floorF32(fx), 0, 1)
	ty := clampF32(fy-floorF32(fy), 0, 1)

	c00 := a.texel(x0, y0)
	c10 := a.texel(x1, y0)
	c01 := a.texel(x0, y1)
	c11 := a.texel(x1, y1)

	var out [4]float32
	for i := range 4 {
		top := c00[i] + (c10[i]-c00[i])*tx
		bot := c01[i] + (c11[i]-c01[i])*tx
		out[i] = top + (bot-top)*ty
	}
	return out
}

func (a *atlasImpl) StagingData() common.TextureStagingData {
	a.mu.RLock()
	defer a.mu.RUnlock()

	bounds := a.backing.Bounds()
	pixels := make([]byte, len(a.backing.Pix))
	copy(pixels, a.backing.Pix)
	return common.TextureStagingData{
		Pixels: pixels,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}

// texel reads one pixel as normalized RGBA. Callers hold the read lock.
func (a *atlasImpl) texel(x, y int) [4]float32 {
	i := a.backing.PixOffset(x, y)
	return [4]float32{
		float32(a.backing.Pix[i]) / 255.0,
		float32(a.backing.Pix[i+1]) / 255.0,
		float32(a.backing.Pix[i+2]) / 255.0,
		float32(a.backing.Pix[i+3]) / 255.0,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorF32(v float32) float32 {
	f := float32(int(v))
	if v < 0 && f != v {
		f--
	}
	return f
}
