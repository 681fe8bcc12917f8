package shading

import (
	"github.com/ember-gfx/ember-go/common"
	"github.com/ember-gfx/ember-go/engine/camera"
	"github.com/ember-gfx/ember-go/engine/model"
	"github.com/ember-gfx/ember-go/engine/renderer/material"
)

// Fixed shading direction and floor for the flat pass tint. The floor keeps
// faces pointing away from the shade direction visible.
var flatShadeDir = normalize3([3]float32{1, 2, 1})

const flatShadeFloor = 0.25

// TransformedFlatVertex is the output of the flat-pass vertex stage: a
// clip-space position and the final shaded color. The flat pass has no
// fragment-stage work beyond writing this color.
type TransformedFlatVertex struct {
	ClipPosition [4]float32
	Color        [3]float32
}

// FlatTint computes the flat pass's normal tint: the lambert term of the
// world normal against a fixed shading direction, floored so no face goes
// fully dark. There is no light array and no attenuation.
func FlatTint(worldNormal [3]float32) float32 {
	return max(dot3(worldNormal, flatShadeDir), flatShadeFloor)
}

// TransformFlatVertex runs the flat-pass vertex stage for a single vertex and
// instance pair. The position goes through the same model, view, and
// projection chain as the lit path; the color is the instance material's
// diffuse color scaled by the fixed normal tint. A material index out of
// range shades as white.
func TransformFlatVertex(vertex model.GPUFlatVertex, instance model.GPUInstance, cam camera.Camera, materials []material.GPUMaterial) TransformedFlatVertex {
	modelMatrix := instance.ModelMatrix()
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()

	worldPos := common.TransformPoint(modelMatrix[:], vertex.Position[0], vertex.Position[1], vertex.Position[2])
	viewPos := common.Mul4Vec4(view[:], worldPos)
	clipPos := common.Mul4Vec4(proj[:], viewPos)

	worldNormal := normalize3(common.TransformDir(modelMatrix[:], vertex.Normal[0], vertex.Normal[1], vertex.Normal[2]))

	diffuse := [3]float32{1, 1, 1}
	if int(instance.MaterialID) < len(materials) {
		diffuse = materials[instance.MaterialID].DiffuseColor
	}

	return TransformedFlatVertex{
		ClipPosition: clipPos,
		Color:        scale3(diffuse, FlatTint(worldNormal)),
	}
}
