package material

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the material identifier.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuseColor is an option builder that sets the diffuse RGB tint of the material.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse color option to a material
func WithDiffuseColor(r, g, b float32) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseColor = [3]float32{r, g, b}
	}
}

// WithTextureID is an option builder that assigns the atlas slot index of the
// material's diffuse texture.
//
// Parameters:
//   - id: the texture slot index
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTextureID(id uint32) MaterialBuilderOption {
	return func(m *material) {
		m.texture = &id
	}
}
