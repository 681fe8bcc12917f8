// annotations.go defines the annotation types, argument constants, and parser for the
// Ember WGSL shader pre-processor. Annotations are single-line WGSL comments prefixed
// with @ember: that drive automatic struct injection, bind group declaration, and
// resource provider registration. The parsed results are stored as Annotation values
// and consumed by the PreProcessor and the host renderer to wire GPU resources without
// manual low-level plumbing.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix is the marker that identifies an Ember annotation within a WGSL comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@ember:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
// Each type corresponds to a distinct pre-processor action and produces different
// fields on the resulting Annotation struct.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct definition
	// into the shader at the annotation site. The struct source is embedded from the
	// corresponding Go GPU type's .wgsl asset file. This annotation does not produce
	// a declaration and is consumed entirely during pre-processing.
	//
	// Syntax: //@ember:include <struct_type>
	//
	// Example: //@ember:include camera
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a WGSL @group/@binding variable declaration
	// and appends an Annotation to the PreProcessor's declarations list. The declaration
	// carries the group index, binding index, and the resolved struct type, enabling the
	// host to semantically match bindings to resource providers without string lookups.
	//
	// Syntax: //@ember:group <group> <binding> <address_space> <var_name> <type>
	//
	// Example: //@ember:group 0 0 storage_uniform camera camera
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider registers a resource provider identity for a group and binding
	// without generating any WGSL output. The WGSL binding declaration remains hand-written
	// in the shader source directly below the annotation. This is used for bindings that
	// contain raw WGSL types (textures, samplers) which have no corresponding registered
	// struct in the pre-processor's struct registry.
	//
	// An optional binding role can be appended after the provider identity to declare the
	// semantic purpose of an individual binding within a multi-binding provider group.
	//
	// Syntax:
	//   //@ember:provider <group> <binding> <provider_identity>
	//   //@ember:provider <group> <binding> <provider_identity> <binding_role>
	//
	// Examples:
	//   //@ember:provider 2 0 atlas atlas_texture
	//   //@ember:provider 3 0 lights
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation represents a single parsed @ember: annotation from a WGSL shader source line.
// It carries the annotation type, its arguments, the source line number, and optional
// group/binding indices. Annotations of type AnnotationTypeBindingGroup and
// AnnotationTypeProvider are appended to the PreProcessor's declarations list for
// consumption by the host during resource wiring.
type Annotation struct {
	// Type identifies which annotation was parsed (include, group, or provider).
	Type AnnotationType

	// Args holds the annotation's arguments. The contents depend on Type:
	//   - include:  [0] = struct type key (e.g. "camera")
	//   - group:    [0] = address space, [1] = var name, [2] = WGSL type key
	//   - provider: [0] = provider identity (e.g. "atlas"), [1] = binding role (optional, e.g. "atlas_texture")
	Args []AnnotationArg

	// Line is the 1-based line number in the original WGSL source where this annotation
	// was found. Used for error reporting.
	Line int

	// Group is the @group index for group and provider annotations. Nil for include annotations.
	Group *int

	// Binding is the @binding index for group and provider annotations. Nil for include annotations.
	Binding *int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
// Arguments fall into three categories: struct type keys (used with include and group),
// address space identifiers (used with group), and provider identity keys (used with provider).
type AnnotationArg string

// ── Struct type arguments ──────────────────────────────────────────────────────
// These identify registered WGSL struct types. They can appear in @ember:include
// annotations (to inject the struct source) and in @ember:group annotations (as the
// type field, optionally wrapped in array<>). Each maps to a Go GPU type with an
// embedded .wgsl asset file.

const (
	// AnnotationArgCamera identifies the CameraUniform struct.
	// Source: engine/camera/assets/camera_uniform.wgsl
	AnnotationArgCamera AnnotationArg = "camera"

	// AnnotationArgRayCamera identifies the RayCameraUniform struct for the raymarch pass.
	// Source: engine/camera/assets/ray_camera_uniform.wgsl
	AnnotationArgRayCamera AnnotationArg = "ray_camera"

	// annotationArgVertex identifies the VertexInput struct for lit meshes.
	// Source: engine/model/assets/vertex.wgsl
	annotationArgVertex AnnotationArg = "vertex"

	// annotationArgFlatVertex identifies the VertexInput struct for unlit flat geometry.
	// Source: engine/model/assets/flat_vertex.wgsl
	annotationArgFlatVertex AnnotationArg = "flat_vertex"

	// annotationArgInstance identifies the InstanceInput struct carrying per-instance
	// model matrix columns and material index.
	// Source: engine/model/assets/instance.wgsl
	annotationArgInstance AnnotationArg = "instance"

	// AnnotationArgMaterial identifies the Material struct for the material storage buffer.
	// Source: engine/renderer/material/assets/material.wgsl
	AnnotationArgMaterial AnnotationArg = "material"

	// AnnotationArgUVRect identifies the UVRect struct for the atlas slot table.
	// Source: engine/renderer/atlas/assets/uv_rect.wgsl
	AnnotationArgUVRect AnnotationArg = "uv_rect"

	// AnnotationArgLight identifies the Light struct for per-light GPU data.
	// Source: engine/light/assets/light.wgsl
	AnnotationArgLight AnnotationArg = "light"

	// AnnotationArgLightCount identifies the LightCount struct holding the active light count.
	// Source: engine/light/assets/light_count.wgsl
	AnnotationArgLightCount AnnotationArg = "light_count"
)

// ── Address space arguments ────────────────────────────────────────────────────
// These specify the WGSL variable address space in @ember:group annotations.
// They map to WGSL var<> declarations.

const (
	// annotationArgStorageTypeUniform maps to var<uniform> in WGSL.
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	// annotationArgStorageTypeRead maps to var<storage, read> in WGSL.
	annotationArgStorageTypeRead AnnotationArg = "storage_read"

	// annotationArgStorageTypeReadWrite maps to var<storage, read_write> in WGSL.
	annotationArgStorageTypeReadWrite AnnotationArg = "storage_read_write"
)

// ── Provider identity arguments ────────────────────────────────────────────────
// These identify which host-level resource provider owns a bind group. Used in
// @ember:provider annotations and matched during draw call setup to wire the
// correct resources for each group.

const (
	// AnnotationArgMaterials identifies the material provider (material storage buffer).
	AnnotationArgMaterials AnnotationArg = "materials"

	// AnnotationArgAtlas identifies the atlas provider (atlas texture, sampler, UV rect table).
	AnnotationArgAtlas AnnotationArg = "atlas"

	// AnnotationArgLights identifies the lights provider (light storage buffer + count uniform).
	AnnotationArgLights AnnotationArg = "lights"
)

// ── Atlas binding role arguments ───────────────────────────────────────────────
// These qualify individual bindings within the atlas provider group. They appear
// as the optional fourth argument of an @ember:provider annotation when the
// provider identity is "atlas".

const (
	// AnnotationArgAtlasTexture identifies the composited atlas texture binding.
	AnnotationArgAtlasTexture AnnotationArg = "atlas_texture"

	// AnnotationArgAtlasSampler identifies the sampler paired with the atlas texture.
	AnnotationArgAtlasSampler AnnotationArg = "atlas_sampler"
)

// validStructTypes lists all AnnotationArg values that are accepted as struct type
// arguments in @ember:include and @ember:group annotations. Each entry must have a
// corresponding registryEntry in the PreProcessor's structRegistry.
var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgRayCamera,
	annotationArgVertex,
	annotationArgFlatVertex,
	annotationArgInstance,
	AnnotationArgMaterial,
	AnnotationArgUVRect,
	AnnotationArgLight,
	AnnotationArgLightCount,
}

// validAddressSpaces lists all AnnotationArg values that are accepted as address
// space arguments in @ember:group annotations. Each maps to a WGSL var<> declaration.
var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
	annotationArgStorageTypeReadWrite,
}

// validProviderIdentities lists all AnnotationArg values that are accepted as
// provider identity arguments in @ember:provider annotations.
var validProviderIdentities = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgRayCamera,
	AnnotationArgMaterials,
	AnnotationArgAtlas,
	AnnotationArgLights,
}

// validBindingRoles lists all AnnotationArg values that are accepted as binding
// role qualifiers in @ember:provider annotations.
var validBindingRoles = []AnnotationArg{
	AnnotationArgAtlasTexture,
	AnnotationArgAtlasSampler,
}

// parseAnnotation attempts to parse a single line of WGSL source as an @ember: annotation.
// Returns nil with no error for lines that do not contain the annotation prefix. Returns
// a populated Annotation for valid annotations, or an error describing the problem for
// malformed annotations with correct prefix but invalid syntax or unknown arguments.
//
// Parameters:
//   - line: the raw WGSL source line to parse
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @ember annotation", lineNum)
	}

	switch args[0] {
	case string(annotationTypeInclude):
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @ember include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @ember include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case string(AnnotationTypeBindingGroup):
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @ember group annotation requires exactly five arguments (group number, binding number, address space, var name, struct type)", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q in @ember group annotation: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @ember group annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @ember group annotation", lineNum, args[3])
		}
		typeArg := args[5]
		if inner, ok := strings.CutPrefix(typeArg, "array<"); ok {
			inner = strings.TrimSuffix(inner, ">")
			if !slices.Contains(validStructTypes, AnnotationArg(inner)) {
				return nil, fmt.Errorf("line %d: unknown array element type %q in @ember group annotation", lineNum, inner)
			}
		} else {
			if !slices.Contains(validStructTypes, AnnotationArg(typeArg)) {
				return nil, fmt.Errorf("line %d: unknown struct type %q in @ember group annotation", lineNum, typeArg)
			}
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	case string(AnnotationTypeProvider):
		if len(args) < 4 || len(args) > 5 {
			return nil, fmt.Errorf("line %d: @ember provider annotation requires three or four arguments (group, binding, provider identity[, binding role])", lineNum)
		}
		groupInt, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid group number %q: %v", lineNum, args[1], err)
		}
		bindingInt, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid binding number %q in @ember provider annotation: %v", lineNum, args[2], err)
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @ember provider annotation", lineNum, args[3])
		}
		providerArgs := []AnnotationArg{AnnotationArg(args[3])}
		if len(args) == 5 {
			if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
				return nil, fmt.Errorf("line %d: unknown binding role %q in @ember provider annotation", lineNum, args[4])
			}
			providerArgs = append(providerArgs, AnnotationArg(args[4]))
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    providerArgs,
			Line:    lineNum,
			Group:   &groupInt,
			Binding: &bindingInt,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @ember annotation type %q", lineNum, args[0])
	}
}
