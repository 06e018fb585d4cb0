package scene

import (
	"fmt"

	"github.com/lapidary/lustre/types"
)

// A triangle mesh with a BVH over its triangles. Meshes are built once
// from static vertex/index buffers and are immutable afterwards.
type Mesh struct {
	triangles []Triangle
	bvh       *Bvh
}

// Create a mesh from a flat vertex position buffer and a triangle corner
// index buffer (3 indices per triangle). Every triangle copies the given
// material value.
func NewMesh(vertices []types.Vec3, indices []uint32, material Material) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("scene: mesh has no vertex positions")
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("scene: mesh has no vertex indices")
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("scene: mesh index count %d is not a multiple of 3", len(indices))
	}

	triangles := make([]Triangle, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		for k := 0; k < 3; k++ {
			if int(indices[i+k]) >= len(vertices) {
				return nil, fmt.Errorf("scene: vertex index %d out of range [0, %d)", indices[i+k], len(vertices))
			}
		}
		triangles = append(triangles, NewTriangle(
			vertices[indices[i]],
			vertices[indices[i+1]],
			vertices[indices[i+2]],
			material,
		))
	}

	return &Mesh{
		triangles: triangles,
		bvh:       BuildBvh(triangles),
	}, nil
}

// Create a mesh directly from a triangle list.
func NewMeshFromTriangles(triangles []Triangle) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, fmt.Errorf("scene: mesh has no triangles")
	}
	return &Mesh{
		triangles: triangles,
		bvh:       BuildBvh(triangles),
	}, nil
}

// Get the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Get BVH build statistics for the mesh.
func (m *Mesh) BvhStats() BvhStats {
	return m.bvh.Stats()
}

// Intersect returns the nearest triangle hit at a distance > minDist.
func (m *Mesh) Intersect(r Ray, minDist float32) (HitInfo, bool) {
	return m.bvh.Intersect(r, minDist)
}
