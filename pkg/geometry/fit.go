package geometry

import (
	"math"

	"github.com/brushwork/image-compositor/pkg/catalog"
	"github.com/brushwork/image-compositor/pkg/types"
)

// FitToSupportedRatio snaps a box to the nearest supported aspect ratio by
// recomputing one dimension and re-centering within the original extent.
// Width and height must be positive; bounds against the image are the
// caller's job via ValidateBounds, which runs before this in practice.
//
// The adjustment keeps the dimension that matches the target's orientation:
// for a landscape-or-square target the width stays and the height follows the
// ratio, for a portrait target the height stays and the width follows. The
// new secondary dimension is computed before the offset moves, so the fitted
// region stays centered on the original one.
func FitToSupportedRatio(box types.BoundingBox) types.FittedBox {
	m := catalog.Nearest(box.Width, box.Height)

	left, top := box.Left, box.Top
	width, height := box.Width, box.Height

	if m.Resolution.Width >= m.Resolution.Height {
		// Multiply before dividing: boxes already at a catalog resolution
		// must reproduce their dimensions bit-exactly.
		newHeight := box.Width * float64(m.Resolution.Height) / float64(m.Resolution.Width)
		top += (box.Height - newHeight) / 2
		height = newHeight
	} else {
		newWidth := box.Height * float64(m.Resolution.Width) / float64(m.Resolution.Height)
		left += (box.Width - newWidth) / 2
		width = newWidth
	}

	width = math.Floor(width)
	height = math.Floor(height)
	left = math.Floor(left)
	top = math.Floor(top)

	// A box flush with the image edge must not be pushed off-image by the
	// centering shift.
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}

	return types.FittedBox{
		BoundingBox: types.BoundingBox{Left: left, Top: top, Width: width, Height: height},
		AspectRatio: m.Ratio.Label,
		Resolution:  m.Resolution,
		Tier:        m.Tier,
		NeedsResize: width != float64(m.Resolution.Width) || height != float64(m.Resolution.Height),
	}
}
