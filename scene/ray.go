package scene

import "github.com/lapidary/lustre/types"

// A ray with a unit direction vector.
type Ray struct {
	origin    types.Vec3
	direction types.Vec3
}

// Create a new ray. The direction is always renormalized so callers may
// pass vectors of arbitrary magnitude.
func NewRay(origin, direction types.Vec3) Ray {
	return Ray{
		origin:    origin,
		direction: direction.Normalize(),
	}
}

// Get the ray origin.
func (r Ray) Origin() types.Vec3 {
	return r.origin
}

// Get the unit ray direction.
func (r Ray) Direction() types.Vec3 {
	return r.direction
}

// Get the point at parametric distance t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.origin.Add(r.direction.Mul(t))
}
