package scene

import (
	"testing"

	"github.com/lapidary/lustre/types"
)

func TestBoundingBoxCenterHit(t *testing.T) {
	box := NewBoundingBox(types.XYZ(-1, -2, -3), types.XYZ(1, 2, 3))
	center := types.XYZ(0, 0, 0)

	origins := []types.Vec3{
		{5, 0, 0},
		{-5, 5, 5},
		{0, -10, 0},
		{3, 3, 3},
	}
	for index, origin := range origins {
		ray := NewRay(origin, center.Sub(origin))
		if !box.IntersectedBy(ray) {
			t.Fatalf("[spec %d] expected ray through box center to hit", index)
		}
	}
}

func TestBoundingBoxMiss(t *testing.T) {
	box := NewBoundingBox(types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1))

	// Rays aimed strictly outside all three axis ranges.
	specs := []struct {
		origin types.Vec3
		dir    types.Vec3
	}{
		{types.XYZ(5, 5, 5), types.XYZ(1, 1, 1)},
		{types.XYZ(0, 0, 5), types.XYZ(0, 0, 1)},
		{types.XYZ(-5, 0, 0), types.XYZ(-1, 0, 0)},
		{types.XYZ(5, 0, 0), types.XYZ(0, 1, 0)},
	}
	for index, s := range specs {
		if box.IntersectedBy(NewRay(s.origin, s.dir)) {
			t.Fatalf("[spec %d] expected ray to miss box", index)
		}
	}
}

func TestBoundingBoxBehindRay(t *testing.T) {
	box := NewBoundingBox(types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1))

	// The slab intervals overlap on the ray line but lie entirely behind
	// the origin; the ray must miss.
	specs := []struct {
		origin types.Vec3
		dir    types.Vec3
	}{
		{types.XYZ(5, 5, 5), types.XYZ(1, 1, 1)},
		{types.XYZ(0, 0, 5), types.XYZ(0, 0, 1)},
		{types.XYZ(-3, 0, 0), types.XYZ(-1, 0, 0)},
	}
	for index, s := range specs {
		if box.IntersectedBy(NewRay(s.origin, s.dir)) {
			t.Fatalf("[spec %d] expected box behind the ray to miss", index)
		}
	}

	// A ray starting inside the box still hits, with a negative entry
	// distance.
	entry, hit := box.Intersect(NewRay(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)))
	if !hit {
		t.Fatal("expected ray starting inside the box to hit")
	}
	if entry >= 0.0 {
		t.Fatalf("expected negative entry distance for an interior origin; got %f", entry)
	}
}

func TestBoundingBoxZeroDirectionComponent(t *testing.T) {
	box := NewBoundingBox(types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1))

	// Axis-parallel rays divide by zero direction components; the slab
	// intervals must still resolve correctly.
	hit := NewRay(types.XYZ(0, 0, -5), types.XYZ(0, 0, 1))
	if !box.IntersectedBy(hit) {
		t.Fatal("expected axis-parallel ray through the box to hit")
	}

	miss := NewRay(types.XYZ(2, 0, -5), types.XYZ(0, 0, 1))
	if box.IntersectedBy(miss) {
		t.Fatal("expected axis-parallel ray beside the box to miss")
	}
}

func TestBoundingBoxDegenerateExpansion(t *testing.T) {
	// A flat (zero-extent) axis must be expanded so that slab intervals
	// are never zero-measure.
	box := NewBoundingBox(types.XYZ(-1, -1, 0), types.XYZ(1, 1, 0))
	if box.Max[2]-box.Min[2] < minBBoxExtent {
		t.Fatalf("expected degenerate axis to be expanded; got extent %f", box.Max[2]-box.Min[2])
	}

	ray := NewRay(types.XYZ(0, 0, -5), types.XYZ(0, 0, 1))
	if !box.IntersectedBy(ray) {
		t.Fatal("expected ray through flat box to hit after expansion")
	}
}
