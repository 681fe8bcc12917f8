package shading

import (
	"github.com/ember-gfx/ember-go/engine/renderer/atlas"
	"github.com/ember-gfx/ember-go/engine/renderer/material"
)

// Resolver turns a fragment's material index and local texture coordinates
// into a base color. It mirrors the fragment shader's lookup chain: material
// record, UV rect remap, atlas sample, diffuse tint.
type Resolver struct {
	Materials []material.GPUMaterial
	Rects     []atlas.UVRect
	Atlas     atlas.Atlas
}

// ResolveColor looks up the fragment's material and produces its base color.
// Untextured materials (DiffuseTextureID == material.NoTexture) sample as
// opaque white, so the base color is the material's diffuse color. Textured
// materials remap the local UV through the texture's atlas rect, sample the
// atlas bilinearly, and tint the sample with the diffuse color. A material or
// rect index out of range also falls back to the opaque white sample.
//
// Parameters:
//   - materialID: index into the material table
//   - u: local horizontal texture coordinate
//   - v: local vertical texture coordinate
//
// Returns:
//   - [4]float32: the RGBA base color before lighting
func (r Resolver) ResolveColor(materialID uint32, u, v float32) [4]float32 {
	diffuse := [3]float32{1, 1, 1}
	textureID := material.NoTexture
	if int(materialID) < len(r.Materials) {
		mat := r.Materials[materialID]
		diffuse = mat.DiffuseColor
		textureID = mat.DiffuseTextureID
	}

	sampled := [4]float32{1, 1, 1, 1}
	if textureID != material.NoTexture && int(textureID) < len(r.Rects) && r.Atlas != nil {
		au, av := r.Rects[textureID].Remap(u, v)
		sampled = r.Atlas.Sample(au, av)
	}

	return [4]float32{
		sampled[0] * diffuse[0],
		sampled[1] * diffuse[1],
		sampled[2] * diffuse[2],
		sampled[3],
	}
}

// ShadeFragment runs the full fragment stage for one sample: base color
// resolution followed by light accumulation. The lit RGB is the base color
// modulated by the accumulated light; alpha passes through untouched.
func (r Resolver) ShadeFragment(frag Fragment, lights LightEnvironment) [4]float32 {
	base := r.ResolveColor(frag.MaterialID, frag.TexCoords[0], frag.TexCoords[1])
	accum := lights.Accumulate(frag.WorldPosition, frag.WorldNormal)
	return [4]float32{
		base[0] * accum[0],
		base[1] * accum[1],
		base[2] * accum[2],
		base[3],
	}
}
