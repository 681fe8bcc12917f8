package shading

import (
	"github.com/ember-gfx/ember-go/common"
	"github.com/ember-gfx/ember-go/engine/camera"
	"github.com/ember-gfx/ember-go/engine/model"
)

// TransformVertex runs the instanced vertex stage for a single vertex and
// instance pair. The vertex position is carried through the instance's model
// matrix into world space, then through the camera's view and projection
// matrices into clip space. The normal is transformed by the model matrix
// with a zero w component so translation does not bend it.
//
// Parameters:
//   - vertex: the mesh vertex in object space
//   - instance: the per-instance model matrix columns and material index
//   - cam: the camera providing view and projection matrices
//
// Returns:
//   - TransformedVertex: the clip-space position and world-space interpolants
func TransformVertex(vertex model.GPUVertex, instance model.GPUInstance, cam camera.Camera) TransformedVertex {
	modelMatrix := instance.ModelMatrix()

	worldPos4 := common.TransformPoint(modelMatrix[:], vertex.Position[0], vertex.Position[1], vertex.Position[2])
	worldPos := [3]float32{worldPos4[0], worldPos4[1], worldPos4[2]}
	worldNormal := normalize3(common.TransformDir(modelMatrix[:], vertex.Normal[0], vertex.Normal[1], vertex.Normal[2]))

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	viewPos := common.Mul4Vec4(view[:], [4]float32{worldPos[0], worldPos[1], worldPos[2], 1})
	clipPos := common.Mul4Vec4(proj[:], viewPos)

	return TransformedVertex{
		ClipPosition:  clipPos,
		WorldPosition: worldPos,
		WorldNormal:   worldNormal,
		TexCoords:     vertex.TexCoord,
		MaterialID:    instance.MaterialID,
	}
}

// TransformMesh transforms every vertex of a mesh for every instance, in
// instance-major order. The result has len(instances)*len(mesh.Vertices)
// entries.
func TransformMesh(mesh *model.Mesh, instances []model.GPUInstance, cam camera.Camera) []TransformedVertex {
	out := make([]TransformedVertex, 0, len(instances)*len(mesh.Vertices))
	for _, instance := range instances {
		for _, vertex := range mesh.Vertices {
			out = append(out, TransformVertex(vertex, instance, cam))
		}
	}
	return out
}
