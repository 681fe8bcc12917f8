package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestEntitiesShaderBindingContract(t *testing.T) {
	s := NewShaderFromSource("entities_vert", ShaderTypeVertex, EntitiesShaderSource)

	if s.EntryPoint() != "vs_main" {
		t.Fatalf("vertex entry point: got %q", s.EntryPoint())
	}

	descriptors := s.BindGroupLayoutDescriptors()
	if len(descriptors) != 4 {
		t.Fatalf("expected bind groups 0 through 3, got %d groups", len(descriptors))
	}

	tests := []struct {
		group    int
		bindings map[int]string
	}{
		{group: 0, bindings: map[int]string{0: "camera"}},
		{group: 1, bindings: map[int]string{0: "materials"}},
		{group: 2, bindings: map[int]string{0: "atlas_texture", 1: "atlas_sampler", 2: "uv_rects"}},
		{group: 3, bindings: map[int]string{0: "lights", 1: "light_count"}},
	}
	for _, tt := range tests {
		desc := s.BindGroupLayoutDescriptor(tt.group)
		if len(desc.Entries) != len(tt.bindings) {
			t.Fatalf("group %d: expected %d entries, got %d", tt.group, len(tt.bindings), len(desc.Entries))
		}
		for binding, wantName := range tt.bindings {
			if got := s.BindGroupVarName(tt.group, binding); got != wantName {
				t.Fatalf("group %d binding %d: got %q, want %q", tt.group, binding, got, wantName)
			}
		}
	}

	// The camera and light count are uniforms; the material, rect, and
	// light tables are read-only storage.
	cameraEntry := s.BindGroupLayoutDescriptor(0).Entries[0]
	if cameraEntry.Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Fatalf("camera binding should be a uniform, got %v", cameraEntry.Buffer.Type)
	}
	materialEntry := s.BindGroupLayoutDescriptor(1).Entries[0]
	if materialEntry.Buffer.Type != wgpu.BufferBindingTypeReadOnlyStorage {
		t.Fatalf("material binding should be read-only storage, got %v", materialEntry.Buffer.Type)
	}
}

func TestEntitiesShaderMinBindingSizes(t *testing.T) {
	s := NewShaderFromSource("entities_vert", ShaderTypeVertex, EntitiesShaderSource)

	// Uniform structs resolve to their full WGSL layout size; the runtime
	// sized tables resolve to one element stride, the minimum useful
	// binding, which the host scales by element count.
	tests := []struct {
		name    string
		group   int
		binding int
		want    uint64
	}{
		{name: "camera uniform", group: 0, binding: 0, want: 128},
		{name: "material table element", group: 1, binding: 0, want: 16},
		{name: "uv rect table element", group: 2, binding: 2, want: 16},
		{name: "light table element", group: 3, binding: 0, want: 48},
		{name: "light count uniform", group: 3, binding: 1, want: 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, entry := range s.BindGroupLayoutDescriptor(tt.group).Entries {
				if entry.Binding != uint32(tt.binding) {
					continue
				}
				if entry.Buffer.MinBindingSize != tt.want {
					t.Fatalf("min binding size: got %d, want %d", entry.Buffer.MinBindingSize, tt.want)
				}
				return
			}
			t.Fatalf("group %d binding %d not found", tt.group, tt.binding)
		})
	}
}

func TestRayCameraMinBindingSize(t *testing.T) {
	s := NewShaderFromSource("raymarch_vert", ShaderTypeVertex, RaymarchShaderSource)
	entry := s.BindGroupLayoutDescriptor(0).Entries[0]
	if entry.Buffer.MinBindingSize != 144 {
		t.Fatalf("ray camera min binding size: got %d, want 144", entry.Buffer.MinBindingSize)
	}
}

func TestEntitiesShaderVertexLayouts(t *testing.T) {
	s := NewShaderFromSource("entities_vert", ShaderTypeVertex, EntitiesShaderSource)

	layouts := s.VertexLayouts()
	if len(layouts) != 2 {
		t.Fatalf("expected a vertex buffer and an instance buffer layout, got %d", len(layouts))
	}

	vertex := s.VertexLayout(0)[0]
	if vertex.StepMode != wgpu.VertexStepModeVertex {
		t.Fatalf("vertex buffer step mode: got %v", vertex.StepMode)
	}
	if vertex.ArrayStride != 32 {
		t.Fatalf("vertex stride: got %d, want 32", vertex.ArrayStride)
	}

	instance := s.VertexLayout(1)[0]
	if instance.StepMode != wgpu.VertexStepModeInstance {
		t.Fatalf("instance buffer step mode: got %v", instance.StepMode)
	}
	if instance.ArrayStride != 68 {
		t.Fatalf("instance stride: got %d, want 68", instance.ArrayStride)
	}
	last := instance.Attributes[len(instance.Attributes)-1]
	if last.Format != wgpu.VertexFormatUint32 || last.ShaderLocation != 7 {
		t.Fatalf("material index attribute: %+v", last)
	}
}

func TestEntitiesShaderFragmentEntryPoint(t *testing.T) {
	s := NewShaderFromSource("entities_frag", ShaderTypeFragment, EntitiesShaderSource)
	if s.EntryPoint() != "fs_main" {
		t.Fatalf("fragment entry point: got %q", s.EntryPoint())
	}
	for _, entry := range s.BindGroupLayoutDescriptor(3).Entries {
		if entry.Visibility != wgpu.ShaderStageFragment {
			t.Fatalf("fragment-parsed entries should carry fragment visibility, got %v", entry.Visibility)
		}
	}
}

func TestRaymarchShaderLayout(t *testing.T) {
	vert := NewShaderFromSource("raymarch_vert", ShaderTypeVertex, RaymarchShaderSource)
	if vert.EntryPoint() != "vs_main" {
		t.Fatalf("vertex entry point: got %q", vert.EntryPoint())
	}
	// The fullscreen pass synthesizes its triangle from the vertex index
	// and binds no vertex buffers.
	if len(vert.VertexLayouts()) != 0 {
		t.Fatalf("raymarch pass should have no vertex buffer layouts, got %d", len(vert.VertexLayouts()))
	}

	desc := vert.BindGroupLayoutDescriptor(0)
	if len(desc.Entries) != 1 {
		t.Fatalf("raymarch pass should bind only the ray camera uniform, got %d entries", len(desc.Entries))
	}
	if desc.Entries[0].Buffer.Type != wgpu.BufferBindingTypeUniform {
		t.Fatalf("ray camera binding should be a uniform, got %v", desc.Entries[0].Buffer.Type)
	}
	if got := vert.BindGroupVarName(0, 0); got != "ray_camera" {
		t.Fatalf("ray camera var name: got %q", got)
	}

	frag := NewShaderFromSource("raymarch_frag", ShaderTypeFragment, RaymarchShaderSource)
	if frag.EntryPoint() != "fs_main" {
		t.Fatalf("fragment entry point: got %q", frag.EntryPoint())
	}
	if !strings.Contains(frag.Source(), "frag_depth") {
		t.Fatal("raymarch fragment stage should write the depth builtin")
	}
}

func TestFlatShaderLayout(t *testing.T) {
	s := NewShaderFromSource("flat_vert", ShaderTypeVertex, FlatShaderSource)

	layouts := s.VertexLayouts()
	if len(layouts) != 2 {
		t.Fatalf("expected a flat vertex buffer and an instance buffer layout, got %d", len(layouts))
	}
	if got := s.VertexLayout(0)[0].ArrayStride; got != 24 {
		t.Fatalf("flat vertex stride: got %d, want 24", got)
	}

	// The flat pass binds the camera and the material table but no atlas
	// group and no light group.
	if len(s.BindGroupLayoutDescriptors()) != 2 {
		t.Fatalf("flat pass should bind the camera and material groups, got %d groups", len(s.BindGroupLayoutDescriptors()))
	}
	if got := s.BindGroupVarName(1, 0); got != "materials" {
		t.Fatalf("flat pass group 1 binding 0: got %q, want materials", got)
	}
}

func TestProcessInjectsAnnotatedDeclarations(t *testing.T) {
	source := "//@ember:include camera\n//@ember:group 0 0 storage_uniform camera camera\n"
	pp := NewPreProcessor()
	out, err := pp.Process(source)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !strings.Contains(out, "struct CameraUniform") {
		t.Fatal("include should inject the camera struct source")
	}
	if !strings.Contains(out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;") {
		t.Fatalf("group annotation should emit the binding declaration, got:\n%s", out)
	}
}

func TestProcessRejectsMalformedAnnotations(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "unknown include", source: "//@ember:include bogus\n"},
		{name: "missing binding index", source: "//@ember:group 0 storage_uniform camera camera\n"},
		{name: "unknown address space", source: "//@ember:group 0 0 somewhere camera camera\n"},
		{name: "unknown provider", source: "//@ember:provider 2 0 nothing atlas_texture\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp := NewPreProcessor()
			if _, err := pp.Process(tt.source); err == nil {
				t.Fatal("malformed annotation should fail pre-processing")
			}
		})
	}
}
