package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/lapidary/lustre/types"
)

func TestRayDirectionNormalization(t *testing.T) {
	specs := []types.Vec3{
		{1, 0, 0},
		{0, 0, -1},
		{10, -20, 30},
		{1e-3, 1e-3, 1e-3},
		{1e4, 2e4, -0.5},
	}

	for index, dir := range specs {
		ray := NewRay(types.XYZ(1, 2, 3), dir)
		if l := ray.Direction().Len(); math32.Abs(l-1.0) > 1e-5 {
			t.Fatalf("[spec %d] expected unit direction; got length %f", index, l)
		}
	}
}

func TestRayAt(t *testing.T) {
	ray := NewRay(types.XYZ(1, 0, 0), types.XYZ(0, 0, 2))

	got := ray.At(3)
	want := types.XYZ(1, 0, 3)
	if got != want {
		t.Fatalf("expected point %v at distance 3; got %v", want, got)
	}
}
