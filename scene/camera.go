package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/lapidary/lustre/types"
)

const cameraBasisEpsilon float32 = 1e-6

// A pinhole camera. The look direction and up vector are kept normalized
// and must never be parallel; construction and the setters reject
// degenerate bases so the viewport basis below is always well defined.
type Camera struct {
	Position types.Vec3

	lookDir types.Vec3
	up      types.Vec3

	// Horizontal field of view in degrees.
	FOV float32

	AspectRatio float32
	FocalLength float32
}

// Create a new camera.
func NewCamera(position, lookDir, up types.Vec3, fov, aspectRatio, focalLength float32) (*Camera, error) {
	if lookDir.Cross(up).Len() <= cameraBasisEpsilon {
		return nil, fmt.Errorf("scene: camera look direction and up vector must not be parallel")
	}
	return &Camera{
		Position:    position,
		lookDir:     lookDir.Normalize(),
		up:          up.Normalize(),
		FOV:         fov,
		AspectRatio: aspectRatio,
		FocalLength: focalLength,
	}, nil
}

// Get the unit look direction.
func (c *Camera) LookDir() types.Vec3 {
	return c.lookDir
}

// Point the camera at a target. The target must lie beyond the focal
// distance and must not put the look direction parallel to up.
func (c *Camera) LookAt(target types.Vec3) error {
	dir := target.Sub(c.Position)
	if dir.Len() <= c.FocalLength {
		return fmt.Errorf("scene: camera target must be further away than the focal length")
	}
	dir = dir.Normalize()
	if dir.Cross(c.up).Len() <= cameraBasisEpsilon {
		return fmt.Errorf("scene: camera look direction and up vector must not be parallel")
	}
	c.lookDir = dir
	return nil
}

// Viewport computes the image plane basis: the position of the top-left
// corner and the two vectors spanning the plane's full width and height.
// Pixel (x, y) of a WxH image sits at
// topLeft + width*(x+0.5)/W + height*(y+0.5)/H.
func (c *Camera) Viewport() (topLeft, width, height types.Vec3) {
	horizDist := c.FocalLength * math32.Tan((c.FOV/2.0)*math32.Pi/180.0)
	vertDist := horizDist / c.AspectRatio

	up := c.up.Cross(c.lookDir).Cross(c.lookDir).Normalize()
	if up.Dot(c.up) <= cameraBasisEpsilon {
		up = up.Neg()
	}
	left := c.up.Cross(c.lookDir).Normalize()

	topLeft = c.Position.
		Add(c.lookDir.Mul(c.FocalLength)).
		Add(left.Mul(horizDist)).
		Add(up.Mul(vertDist))
	width = left.Mul(-2.0 * horizDist)
	height = up.Mul(-2.0 * vertDist)
	return topLeft, width, height
}
