package renderer

import (
	"github.com/chewxy/math32"

	"github.com/lapidary/lustre/types"
)

// Display gamma applied by consumers before encoding a frame.
const gammaPower float32 = 2.2

// GammaCorrect applies the power-law display transform to a linear
// color. It is a pure per-pixel transform, separate from light
// transport, and is left to the consumer to apply.
func GammaCorrect(c types.Vec3) types.Vec3 {
	inv := 1.0 / gammaPower
	return types.Vec3{
		math32.Pow(c[0], inv),
		math32.Pow(c[1], inv),
		math32.Pow(c[2], inv),
	}
}
