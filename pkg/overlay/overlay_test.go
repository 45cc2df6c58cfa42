package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/brushwork/image-compositor/pkg/geometry"
	"github.com/brushwork/image-compositor/pkg/types"
)

func createTestImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDrawBox(t *testing.T) {
	base := color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	outline := color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	src := createTestImage(100, 80, base)
	box := types.BoundingBox{Left: 10, Top: 20, Width: 30, Height: 40}

	result := DrawBox(src, box, outline, 2)

	if got := result.NRGBAAt(10, 20); got != outline {
		t.Errorf("Expected outline at top-left corner, got %v", got)
	}
	if got := result.NRGBAAt(39, 59); got != outline {
		t.Errorf("Expected outline at bottom-right corner, got %v", got)
	}
	if got := result.NRGBAAt(25, 40); got != base {
		t.Errorf("Expected untouched interior, got %v", got)
	}
	if got := src.NRGBAAt(10, 20); got != base {
		t.Errorf("Expected source image unchanged, got %v", got)
	}
}

func TestDrawBoxClipsAtEdges(t *testing.T) {
	src := createTestImage(50, 50, color.NRGBA{A: 255})
	box := types.BoundingBox{Left: 40, Top: 40, Width: 30, Height: 30}

	// Must not panic when the outline leaves the image.
	result := DrawBox(src, box, color.NRGBA{R: 255, A: 255}, 3)
	if result.Bounds().Dx() != 50 {
		t.Errorf("Expected 50 wide result, got %d", result.Bounds().Dx())
	}
}

func TestDrawFit(t *testing.T) {
	base := color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	src := createTestImage(2000, 1500, base)
	raw := types.BoundingBox{Left: 100, Top: 50, Width: 700, Height: 900}
	fitted := geometry.FitToSupportedRatio(raw)

	result := DrawFit(src, raw, fitted)

	// The fitted outline is drawn last, so probe the raw box on its left
	// edge where the two do not overlap.
	if got := result.NRGBAAt(100, 500); got != rawColor {
		t.Errorf("Expected raw outline at (100,500), got %v", got)
	}
	// The fit widens this box to 720 and shifts it to left 90.
	if got := result.NRGBAAt(90, 500); got != fittedColor {
		t.Errorf("Expected fitted outline at (90,500), got %v", got)
	}
	if got := result.NRGBAAt(1500, 1200); got != base {
		t.Errorf("Expected untouched pixel, got %v", got)
	}
}
