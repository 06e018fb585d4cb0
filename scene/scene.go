package scene

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Minimum hit distance for rays spawned on a surface; avoids
// self-intersection at the ray origin.
const defaultShadowBias float32 = 1e-5

// An ordered collection of meshes. Once a render starts the scene is
// shared read-only by all workers and must not be mutated.
type Scene struct {
	Meshes []*Mesh

	ShadowBias float32
}

// Create a new empty scene.
func NewScene() *Scene {
	return &Scene{
		Meshes:     make([]*Mesh, 0),
		ShadowBias: defaultShadowBias,
	}
}

// Add a mesh to the scene.
func (s *Scene) AddMesh(mesh *Mesh) error {
	if mesh == nil {
		return fmt.Errorf("scene: nil mesh")
	}
	for _, m := range s.Meshes {
		if m == mesh {
			return fmt.Errorf("scene: mesh already added")
		}
	}
	s.Meshes = append(s.Meshes, mesh)
	return nil
}

// Intersect returns the nearest hit across all meshes at a distance
// > minDist.
func (s *Scene) Intersect(r Ray, minDist float32) (HitInfo, bool) {
	best := HitInfo{Distance: math32.Inf(1)}
	found := false
	for _, mesh := range s.Meshes {
		if info, ok := mesh.Intersect(r, minDist); ok && info.Distance < best.Distance {
			best = info
			found = true
		}
	}
	return best, found
}
