package scene

import (
	"github.com/chewxy/math32"

	"github.com/lapidary/lustre/types"
)

// Rays hitting a triangle at an angle where the determinant of the
// Moeller-Trumbore system falls below this threshold are treated as
// parallel to the triangle plane.
const triDetEpsilon float32 = 1e-8

// HitInfo describes the nearest surface intersection along a ray.
type HitInfo struct {
	// The intersection point.
	Position types.Vec3

	// The face normal as constructed; it is not forced to point
	// against the ray. Check FrontFace for orientation.
	Normal types.Vec3

	// Parametric distance from the ray origin.
	Distance float32

	// True if the ray approaches from the side the normal points toward.
	FrontFace bool

	// The material of the hit surface.
	Material Material
}

// A triangle with a precomputed unit face normal and a copied material
// value. Immutable once constructed.
type Triangle struct {
	V0, V1, V2 types.Vec3
	Normal     types.Vec3
	Material   Material
}

// Create a new triangle. Vertices are specified counter-clockwise when
// viewed from the side the normal points toward. Colinear edges yield a
// non-finite normal rather than a silently zeroed one.
func NewTriangle(v0, v1, v2 types.Vec3, material Material) Triangle {
	cross := v1.Sub(v0).Cross(v2.Sub(v0))
	return Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Normal:   cross.Mul(1.0 / cross.Len()),
		Material: material,
	}
}

// Get the triangle centroid.
func (t *Triangle) Centroid() types.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Mul(1.0 / 3.0)
}

// Intersect the ray with the triangle using the Moeller-Trumbore
// algorithm. Hits at parametric distances <= minDist are rejected, which
// keeps rays spawned on a surface from immediately re-hitting it.
func (t *Triangle) Intersect(r Ray, minDist float32) (HitInfo, bool) {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	pvec := r.Direction().Cross(edge2)
	det := edge1.Dot(pvec)
	if math32.Abs(det) < triDetEpsilon {
		return HitInfo{}, false
	}
	invDet := 1.0 / det

	tvec := r.Origin().Sub(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0.0 || u > 1.0 {
		return HitInfo{}, false
	}

	qvec := tvec.Cross(edge1)
	v := r.Direction().Dot(qvec) * invDet
	if v < 0.0 || u+v > 1.0 {
		return HitInfo{}, false
	}

	dist := edge2.Dot(qvec) * invDet
	if dist <= minDist {
		return HitInfo{}, false
	}

	return HitInfo{
		Position:  r.At(dist),
		Normal:    t.Normal,
		Distance:  dist,
		FrontFace: r.Direction().Dot(t.Normal) < 0.0,
		Material:  t.Material,
	}, true
}
