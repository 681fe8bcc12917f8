package pipeline

import (
	"github.com/ember-gfx/ember-go/engine/renderer/shader"
)

// A frame is drawn with three fixed programs, each built here from its
// embedded WGSL source: the lit instanced pass, the flat instanced pass, and
// the fullscreen SDF raymarch pass. The constructors pin each pass's depth
// configuration so callers only create the GPU objects from the descriptors.
const (
	EntitiesPipelineKey = "entities"
	FlatPipelineKey     = "flat"
	RaymarchPipelineKey = "raymarch"
)

// NewEntitiesPipeline builds the lit instanced pass: per-instance model
// transforms, material and atlas resolution, light accumulation. Depth
// tested and written against the shared depth buffer.
//
// Returns:
//   - Pipeline: the configured entities pipeline
func NewEntitiesPipeline() Pipeline {
	return newPassPipeline(EntitiesPipelineKey, shader.EntitiesShaderSource)
}

// NewFlatPipeline builds the flat instanced pass: per-instance material
// color with a fixed normal tint, no atlas or light bindings. Shares the
// entities pass depth configuration.
//
// Returns:
//   - Pipeline: the configured flat pipeline
func NewFlatPipeline() Pipeline {
	return newPassPipeline(FlatPipelineKey, shader.FlatShaderSource)
}

// NewRaymarchPipeline builds the fullscreen SDF raymarch pass. The pass
// synthesizes its quad from the vertex index, so it binds no vertex buffers,
// and it disables the depth test: its fragment stage writes an explicit
// depth over the cleared buffer so marched geometry composes with
// rasterized meshes.
//
// Returns:
//   - Pipeline: the configured raymarch pipeline
func NewRaymarchPipeline() Pipeline {
	return newPassPipeline(RaymarchPipelineKey, shader.RaymarchShaderSource,
		WithDepthTestEnabled(false),
	)
}

// newPassPipeline parses one embedded WGSL source for both stages and wraps
// the shader pair in a Pipeline under the given key.
func newPassPipeline(key, source string, opts ...PipelineBuilderOption) Pipeline {
	opts = append([]PipelineBuilderOption{
		WithVertexShader(shader.NewShaderFromSource(key+"_vert", shader.ShaderTypeVertex, source)),
		WithFragmentShader(shader.NewShaderFromSource(key+"_frag", shader.ShaderTypeFragment, source)),
	}, opts...)
	return NewPipeline(key, opts...)
}
