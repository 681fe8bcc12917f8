package shader

import _ "embed"

// EntitiesShaderSource is the raw annotated WGSL source for the lit instanced
// forward pass (vertex transform, material/atlas resolution, light
// accumulation). Pass it through NewShaderFromSource to pre-process the
// @ember: annotations and extract layout metadata.
//
//go:embed assets/entities.wgsl
var EntitiesShaderSource string

// FlatShaderSource is the raw annotated WGSL source for the flat-shaded
// instanced pass (per-instance material color with a fixed normal tint, no
// light array, no texturing).
//
//go:embed assets/flat.wgsl
var FlatShaderSource string

// RaymarchShaderSource is the raw annotated WGSL source for the fullscreen SDF
// raymarch pass with explicit fragment depth output.
//
//go:embed assets/raymarch.wgsl
var RaymarchShaderSource string
