package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestPassConstructorsShaderStages(t *testing.T) {
	tests := []struct {
		name string
		p    Pipeline
		key  string
	}{
		{name: "entities", p: NewEntitiesPipeline(), key: EntitiesPipelineKey},
		{name: "flat", p: NewFlatPipeline(), key: FlatPipelineKey},
		{name: "raymarch", p: NewRaymarchPipeline(), key: RaymarchPipelineKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Key() != tt.key {
				t.Fatalf("key: got %q, want %q", tt.p.Key(), tt.key)
			}
			vs, fs := tt.p.VertexShader(), tt.p.FragmentShader()
			if vs == nil || fs == nil {
				t.Fatal("pass should carry both shader stages")
			}
			if vs.EntryPoint() != "vs_main" {
				t.Fatalf("vertex entry point: got %q", vs.EntryPoint())
			}
			if fs.EntryPoint() != "fs_main" {
				t.Fatalf("fragment entry point: got %q", fs.EntryPoint())
			}
			if tt.p.RenderPipeline() != nil {
				t.Fatal("GPU pipeline should be nil before creation")
			}
		})
	}
}

func TestPassDepthConfiguration(t *testing.T) {
	for _, p := range []Pipeline{NewEntitiesPipeline(), NewFlatPipeline()} {
		if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
			t.Fatalf("%s pass should depth test and write", p.Key())
		}
	}

	// The raymarch pass writes its own fragment depth, so it skips the test
	// but keeps writes on.
	rm := NewRaymarchPipeline()
	if rm.DepthTestEnabled() {
		t.Fatal("raymarch pass should not depth test")
	}
	if !rm.DepthWriteEnabled() {
		t.Fatal("raymarch pass should still write depth")
	}
	state := DepthStencilState(rm, wgpu.TextureFormatDepth32Float)
	if state.DepthCompare != wgpu.CompareFunctionAlways {
		t.Fatalf("raymarch depth compare: got %v, want always", state.DepthCompare)
	}
}

func TestFlatPassBindsCameraAndMaterialsOnly(t *testing.T) {
	merged := MergedBindGroupLayoutDescriptors(NewFlatPipeline())
	if len(merged) != 2 {
		t.Fatalf("flat pass should merge to 2 bind groups, got %d", len(merged))
	}
	layouts := VertexBufferLayouts(NewFlatPipeline())
	if len(layouts) != 2 {
		t.Fatalf("flat pass should bind vertex and instance buffers, got %d layouts", len(layouts))
	}
	if layouts[0].ArrayStride != 24 {
		t.Fatalf("flat vertex stride: got %d, want 24", layouts[0].ArrayStride)
	}
}
