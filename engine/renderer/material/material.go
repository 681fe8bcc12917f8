package material

// material is the implementation of the Material interface.
type material struct {
	name         string
	diffuseColor [3]float32
	texture      *uint32
}

// Material defines the interface for a render material: a diffuse tint color
// and an optional reference to a texture in the shared atlas.
//
// Materials are value-like and read-only after construction except for the
// texture reference, which can be assigned once the atlas has been packed and
// the material's texture has a slot index.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// DiffuseColor retrieves the diffuse RGB tint of the material. The tint
	// multiplies the sampled texture color; an untextured material renders
	// with this color alone.
	//
	// Returns:
	//   - [3]float32: the diffuse color as RGB values
	DiffuseColor() [3]float32

	// TextureID retrieves the atlas slot index of the material's diffuse
	// texture, or nil if the material is untextured.
	//
	// Returns:
	//   - *uint32: the texture slot index, or nil
	TextureID() *uint32

	// SetTextureID assigns the atlas slot index for the material's diffuse
	// texture. Pass nil to clear the reference.
	//
	// Parameters:
	//   - id: the texture slot index, or nil for untextured
	SetTextureID(id *uint32)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		diffuseColor: [3]float32{1, 1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) DiffuseColor() [3]float32 {
	return m.diffuseColor
}

func (m *material) TextureID() *uint32 {
	return m.texture
}

func (m *material) SetTextureID(id *uint32) {
	m.texture = id
}
