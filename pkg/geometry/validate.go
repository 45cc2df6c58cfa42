// Package geometry validates bounding boxes against their images and snaps
// them to the supported aspect ratios. Everything here is pure arithmetic; no
// pixels are touched.
package geometry

import (
	"fmt"
	"math"

	"github.com/brushwork/image-compositor/pkg/types"
)

// ValidateBounds checks a bounding box against the dimensions of the image it
// targets. It runs before any pixel operation; a nil return guarantees the box
// holds whole, positive dimensions at a non-negative origin, fully inside the
// image. Failures carry the box and image dimensions as error context.
func ValidateBounds(box types.BoundingBox, imageWidth, imageHeight int) error {
	if imageWidth <= 0 || imageHeight <= 0 {
		return invalidBounds(box, imageWidth, imageHeight,
			fmt.Sprintf("image dimensions must be positive, got %dx%d", imageWidth, imageHeight))
	}
	if box.Left < 0 || box.Top < 0 {
		return invalidBounds(box, imageWidth, imageHeight,
			fmt.Sprintf("box origin must be non-negative, got (%v, %v)", box.Left, box.Top))
	}
	if box.Width <= 0 || box.Height <= 0 {
		return invalidBounds(box, imageWidth, imageHeight,
			fmt.Sprintf("box dimensions must be positive, got %vx%v", box.Width, box.Height))
	}
	if !isWhole(box.Left) || !isWhole(box.Top) || !isWhole(box.Width) || !isWhole(box.Height) {
		return invalidBounds(box, imageWidth, imageHeight, "box coordinates must be whole pixels")
	}
	if box.Left+box.Width > float64(imageWidth) || box.Top+box.Height > float64(imageHeight) {
		return invalidBounds(box, imageWidth, imageHeight,
			fmt.Sprintf("box exceeds image bounds %dx%d", imageWidth, imageHeight))
	}
	return nil
}

func invalidBounds(box types.BoundingBox, imageWidth, imageHeight int, message string) error {
	return types.NewInvalidBoundsError(message, map[string]any{
		"left":         box.Left,
		"top":          box.Top,
		"width":        box.Width,
		"height":       box.Height,
		"image_width":  imageWidth,
		"image_height": imageHeight,
	})
}

// isWhole reports whether v is an integral value. NaN is not integral.
func isWhole(v float64) bool {
	return v == math.Trunc(v)
}
