// Package overlay renders bounding box outlines onto image copies for
// visual inspection of selection and fitting results.
package overlay

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/brushwork/image-compositor/pkg/types"
)

// Outline colors used by DrawFit.
var (
	rawColor    = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	fittedColor = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
)

// DrawBox returns a copy of img with box outlined in c. A thickness
// below 1 picks a stroke proportional to the image size.
func DrawBox(img image.Image, box types.BoundingBox, c color.NRGBA, thickness int) *image.NRGBA {
	nrgba := imaging.Clone(img)
	if thickness < 1 {
		thickness = defaultStroke(nrgba)
	}
	drawRect(nrgba, box, c, thickness)
	return nrgba
}

// DrawFit outlines a raw selection in red and its snapped counterpart in
// green on a single copy of the image, showing how far the fit moved the
// selection.
func DrawFit(img image.Image, raw types.BoundingBox, fitted types.FittedBox) *image.NRGBA {
	nrgba := imaging.Clone(img)
	stroke := defaultStroke(nrgba)
	drawRect(nrgba, raw, rawColor, stroke)
	drawRect(nrgba, fitted.BoundingBox, fittedColor, stroke)
	return nrgba
}

// defaultStroke is ~0.4% of the smaller side, at least 2 pixels.
func defaultStroke(img *image.NRGBA) int {
	smaller := minInt(img.Bounds().Dx(), img.Bounds().Dy())
	return int(math.Max(2, 0.004*float64(smaller)))
}

func drawRect(img *image.NRGBA, box types.BoundingBox, c color.NRGBA, stroke int) {
	x0 := int(box.Left)
	y0 := int(box.Top)
	x1 := x0 + int(box.Width)
	y1 := y0 + int(box.Height)

	for s := 0; s < stroke; s++ {
		drawHLine(img, y0+s, x0, x1, c)
		drawHLine(img, y1-1-s, x0, x1, c)
		drawVLine(img, x0+s, y0, y1, c)
		drawVLine(img, x1-1-s, y0, y1, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
