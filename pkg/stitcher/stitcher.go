// Package stitcher cuts regions out of images and composites tiles back
// into place.
package stitcher

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/brushwork/image-compositor/pkg/geometry"
	"github.com/brushwork/image-compositor/pkg/types"
)

// ExtractRegion crops the exact pixels covered by box. If resizeTo is
// non-zero the crop is resampled to those dimensions with Lanczos.
// Coordinates are truncated to whole pixels.
func ExtractRegion(img image.Image, box types.BoundingBox, resizeTo types.Resolution) (*image.NRGBA, error) {
	if img == nil {
		return nil, types.NewExtractError("nil source image", nil, boxContext(box, nil))
	}

	rect, reason := regionRect(img, box)
	if reason != "" {
		return nil, types.NewExtractError(reason, nil, boxContext(box, img))
	}

	tile := imaging.Crop(img, rect)
	if !resizeTo.IsZero() {
		tile = imaging.Resize(tile, resizeTo.Width, resizeTo.Height, imaging.Lanczos)
	}
	return tile, nil
}

// ReplaceRegion composites tile over base inside box and returns a new
// image with base's dimensions. Covered pixels are overwritten, not
// blended. With resizeTile the tile is first resampled to the box size;
// without it the tile must already match the box exactly.
func ReplaceRegion(base image.Image, tile image.Image, box types.BoundingBox, resizeTile bool) (*image.NRGBA, error) {
	if base == nil {
		return nil, types.NewCompositeError("nil base image", nil, boxContext(box, nil))
	}
	if tile == nil {
		return nil, types.NewCompositeError("nil tile image", nil, boxContext(box, base))
	}

	rect, reason := regionRect(base, box)
	if reason != "" {
		return nil, types.NewCompositeError(reason, nil, boxContext(box, base))
	}

	width := int(box.Width)
	height := int(box.Height)
	if resizeTile {
		tile = imaging.Resize(tile, width, height, imaging.Lanczos)
	} else if tile.Bounds().Dx() != width || tile.Bounds().Dy() != height {
		ctx := boxContext(box, base)
		ctx["tile_width"] = tile.Bounds().Dx()
		ctx["tile_height"] = tile.Bounds().Dy()
		return nil, types.NewCompositeError("tile dimensions do not match region", nil, ctx)
	}

	// Paste clones the base internally and overwrites the covered pixels.
	// Its position argument is in base's coordinate space, like the
	// validated rectangle.
	return imaging.Paste(base, tile, rect.Min), nil
}

// ExtractBoundingBox validates box against img, snaps it to the nearest
// supported aspect ratio and extracts the region, resampled to the
// matched resolution when the snapped box does not already have it. The
// returned geometry records where the tile came from and how to put a
// generated replacement back.
func ExtractBoundingBox(img image.Image, box types.BoundingBox) (*image.NRGBA, types.FittedBox, error) {
	if img == nil {
		return nil, types.FittedBox{}, types.NewExtractError("nil source image", nil, boxContext(box, nil))
	}

	bounds := img.Bounds()
	if err := geometry.ValidateBounds(box, bounds.Dx(), bounds.Dy()); err != nil {
		return nil, types.FittedBox{}, err
	}

	fitted := geometry.FitToSupportedRatio(box)

	// The fitted box can poke past the image edge when the snap had to
	// grow the short side; extraction then fails and the caller must
	// choose a smaller selection.
	var resizeTo types.Resolution
	if fitted.NeedsResize {
		resizeTo = fitted.Resolution
	}
	tile, err := ExtractRegion(img, fitted.BoundingBox, resizeTo)
	if err != nil {
		return nil, fitted, err
	}
	return tile, fitted, nil
}

// StitchTileBack resamples a generated tile to the original box size and
// composites it over the original image.
func StitchTileBack(original image.Image, tile image.Image, box types.BoundingBox) (*image.NRGBA, error) {
	return ReplaceRegion(original, tile, box, true)
}

// regionRect maps box to a pixel rectangle in img's coordinate space.
// The returned reason is empty for a usable rectangle and names the
// problem otherwise.
func regionRect(img image.Image, box types.BoundingBox) (image.Rectangle, string) {
	x0 := int(box.Left)
	y0 := int(box.Top)
	rect := image.Rect(x0, y0, x0+int(box.Width), y0+int(box.Height)).Add(img.Bounds().Min)

	if rect.Empty() {
		return image.Rectangle{}, "empty region"
	}
	if !rect.In(img.Bounds()) {
		return image.Rectangle{}, "region outside image bounds"
	}
	return rect, ""
}

func boxContext(box types.BoundingBox, img image.Image) map[string]any {
	ctx := map[string]any{
		"left":   box.Left,
		"top":    box.Top,
		"width":  box.Width,
		"height": box.Height,
	}
	if img != nil {
		ctx["image_width"] = img.Bounds().Dx()
		ctx["image_height"] = img.Bounds().Dy()
	}
	return ctx
}
