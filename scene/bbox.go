package scene

import (
	"github.com/chewxy/math32"

	"github.com/lapidary/lustre/types"
)

// Minimum extent for every box axis. Zero-measure slabs make the slab
// intersection interval empty for rays in the slab plane.
const minBBoxExtent float32 = 1e-3

// An axis-aligned bounding box.
type BoundingBox struct {
	Min types.Vec3
	Max types.Vec3
}

// Create a bounding box. Degenerate axes are expanded to minBBoxExtent.
func NewBoundingBox(min, max types.Vec3) BoundingBox {
	for axis := 0; axis < 3; axis++ {
		if max[axis]-min[axis] < minBBoxExtent {
			max[axis] = min[axis] + minBBoxExtent
		}
	}
	return BoundingBox{Min: min, Max: max}
}

// Intersect the ray with the box using the slab method and return the
// entry distance. A zero direction component divides to +/-Inf, which the
// interval arithmetic handles without a special case. The entry distance
// is negative when the ray starts inside the box.
func (b BoundingBox) Intersect(r Ray) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		invDir := 1.0 / r.Direction()[axis]
		origin := r.Origin()[axis]

		t0 := (b.Min[axis] - origin) * invDir
		t1 := (b.Max[axis] - origin) * invDir
		if invDir < 0.0 {
			t0, t1 = t1, t0
		}

		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmax <= tmin {
			return 0, false
		}
	}
	// An interval entirely behind the origin is a miss; a negative entry
	// with a positive exit means the ray starts inside the box.
	if tmax <= 0.0 {
		return 0, false
	}
	return tmin, true
}

// Report whether the ray passes through the box.
func (b BoundingBox) IntersectedBy(r Ray) bool {
	_, hit := b.Intersect(r)
	return hit
}
