package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// MergedBindGroupLayoutDescriptors merges the bind group layout descriptors
// parsed from a pipeline's vertex and fragment shaders into a single map
// keyed by group index. When the same binding appears in both stages the
// visibility flags are OR-ed together; this is required for bindings like the
// camera uniform which both stages read.
//
// Parameters:
//   - p: the pipeline whose shader layouts to merge
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: merged descriptors keyed by group index
func MergedBindGroupLayoutDescriptors(p Pipeline) map[int]wgpu.BindGroupLayoutDescriptor {
	var vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor
	if vs := p.VertexShader(); vs != nil {
		vertexLayouts = vs.BindGroupLayoutDescriptors()
	}
	if fs := p.FragmentShader(); fs != nil {
		fragmentLayouts = fs.BindGroupLayoutDescriptors()
	}

	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)

	// collect all group indices from both maps
	groupIndices := make(map[int]bool)
	for g := range vertexLayouts {
		groupIndices[g] = true
	}
	for g := range fragmentLayouts {
		groupIndices[g] = true
	}

	for g := range groupIndices {
		vDesc, hasV := vertexLayouts[g]
		fDesc, hasF := fragmentLayouts[g]

		switch {
		case hasV && !hasF:
			merged[g] = vDesc
		case hasF && !hasV:
			merged[g] = fDesc
		default:
			// group in both — merge entries by binding number
			entryMap := make(map[uint32]wgpu.BindGroupLayoutEntry)
			for _, e := range vDesc.Entries {
				entryMap[e.Binding] = e
			}
			for _, e := range fDesc.Entries {
				if existing, ok := entryMap[e.Binding]; ok {
					// same binding in both stages — OR the visibility
					existing.Visibility |= e.Visibility
					entryMap[e.Binding] = existing
				} else {
					entryMap[e.Binding] = e
				}
			}

			entries := make([]wgpu.BindGroupLayoutEntry, 0, len(entryMap))
			for _, e := range entryMap {
				entries = append(entries, e)
			}
			for i := range entries {
				for j := i + 1; j < len(entries); j++ {
					if entries[j].Binding < entries[i].Binding {
						entries[i], entries[j] = entries[j], entries[i]
					}
				}
			}
			merged[g] = wgpu.BindGroupLayoutDescriptor{Entries: entries}
		}
	}

	return merged
}

// VertexBufferLayouts flattens the vertex shader's parsed vertex buffer
// layouts into the ordered slice a wgpu.VertexState expects. Returns nil for
// pipelines without a vertex shader or with no vertex input structs (the
// raymarch pass, which generates its geometry from the vertex index).
//
// Parameters:
//   - p: the pipeline
//
// Returns:
//   - []wgpu.VertexBufferLayout: the flattened vertex buffer layouts in key order
func VertexBufferLayouts(p Pipeline) []wgpu.VertexBufferLayout {
	vs := p.VertexShader()
	if vs == nil {
		return nil
	}
	layouts := make([]wgpu.VertexBufferLayout, 0, len(vs.VertexLayouts()))
	for i := range len(vs.VertexLayouts()) {
		layouts = append(layouts, vs.VertexLayout(i)...)
	}
	return layouts
}

// ColorTargetState builds the color target state for a pipeline against the
// given surface format, attaching the blend state for passes that blend.
//
// Parameters:
//   - p: the pipeline
//   - surfaceFormat: the surface texture format the pipeline renders to
//
// Returns:
//   - wgpu.ColorTargetState: the color target state
func ColorTargetState(p Pipeline, surfaceFormat wgpu.TextureFormat) wgpu.ColorTargetState {
	state := wgpu.ColorTargetState{
		Format:    surfaceFormat,
		WriteMask: wgpu.ColorWriteMaskAll,
	}
	if p.BlendEnabled() {
		state.Blend = p.BlendState()
	}
	return state
}

// DepthStencilState builds the depth-stencil state for a pipeline. Pipelines
// with depth testing disabled compare with Always, which is how the raymarch
// pass writes its explicit fragment depth over the cleared buffer while still
// participating in depth output.
//
// Parameters:
//   - p: the pipeline
//   - depthFormat: the depth texture format (typically wgpu.TextureFormatDepth24Plus)
//
// Returns:
//   - *wgpu.DepthStencilState: the depth-stencil state
func DepthStencilState(p Pipeline, depthFormat wgpu.TextureFormat) *wgpu.DepthStencilState {
	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}
	return &wgpu.DepthStencilState{
		Format:            depthFormat,
		DepthWriteEnabled: p.DepthWriteEnabled(),
		DepthCompare:      depthCompare,
		StencilFront: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilBack: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
	}
}

// PrimitiveState builds the primitive state for a pipeline. Every pass draws
// counter-clockwise triangle lists; only the cull mode varies per pipeline.
//
// Parameters:
//   - p: the pipeline
//
// Returns:
//   - wgpu.PrimitiveState: the primitive state
func PrimitiveState(p Pipeline) wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  p.CullMode(),
	}
}

// MultisampleState builds a multisample state with the full sample mask.
//
// Parameters:
//   - sampleCount: the MSAA sample count (1 for no multisampling)
//
// Returns:
//   - wgpu.MultisampleState: the multisample state
func MultisampleState(sampleCount int) wgpu.MultisampleState {
	return wgpu.MultisampleState{
		Count: uint32(sampleCount),
		Mask:  0xFFFFFFFF,
	}
}
