// Package mask turns painted stroke masks into the alpha channel of a
// background image for inpainting.
//
// Mask semantics follow the canvas convention: white strokes mark the
// area to regenerate, black keeps the original. In the combined output
// that maps to alpha 0 for regenerate and alpha 255 for keep.
package mask

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/brushwork/image-compositor/pkg/types"
)

// Stage names reported to an Observer, in emission order.
const (
	StageBackgroundRGB = "background_rgb"
	StageMaskResized   = "mask_resized"
	StageMaskInverted  = "mask_inverted"
	StageCombined      = "combined"
)

// PixelStats tallies the alpha classes of a combined image.
type PixelStats struct {
	Opaque      int `json:"opaque"`
	Partial     int `json:"partial"`
	Transparent int `json:"transparent"`
}

// Observer receives the intermediate stages and the final pixel tally of
// a combine run. Implementations must not retain the stage images past
// the call.
type Observer interface {
	OnStage(name string, img image.Image)
	OnStats(stats PixelStats)
}

// Compositor combines stroke masks with background images.
type Compositor struct {
	observer Observer
}

// NewCompositor creates a compositor without instrumentation.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// NewCompositorWithObserver creates a compositor that reports its stages
// to the given observer.
func NewCompositorWithObserver(observer Observer) *Compositor {
	return &Compositor{observer: observer}
}

// Combine merges a stroke mask into the background's alpha channel:
//
//  1. The background's own alpha is stripped, every pixel becomes opaque.
//  2. The mask is stretched to the background's exact dimensions,
//     grayscaled and inverted; the inverted value is the new alpha.
//  3. Every pixel left with alpha below 255 has its color zeroed, since
//     downstream models treat color in non-opaque pixels as noise.
//
// The mask may arrive at any size; it is resampled without preserving
// its aspect ratio.
func (c *Compositor) Combine(background, mask image.Image) (*image.NRGBA, error) {
	if background == nil {
		return nil, types.NewMaskCombineError("nil background image", nil, nil)
	}
	if mask == nil {
		return nil, types.NewMaskCombineError("nil mask image", nil, nil)
	}

	bounds := background.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, types.NewMaskCombineError("empty background image", nil, map[string]any{
			"image_width":  width,
			"image_height": height,
		})
	}
	if mask.Bounds().Empty() {
		return nil, types.NewMaskCombineError("empty mask image", nil, map[string]any{
			"mask_width":  mask.Bounds().Dx(),
			"mask_height": mask.Bounds().Dy(),
		})
	}

	combined := imaging.Clone(background)
	for i := 3; i < len(combined.Pix); i += 4 {
		combined.Pix[i] = 0xff
	}
	c.emitStage(StageBackgroundRGB, combined)

	resized := imaging.Resize(mask, width, height, imaging.Lanczos)
	c.emitStage(StageMaskResized, resized)

	inverted := imaging.Invert(imaging.Grayscale(resized))
	c.emitStage(StageMaskInverted, inverted)

	// Grayscale output has R = G = B, so the red channel carries the
	// alpha value for each pixel.
	var stats PixelStats
	for i := 0; i+3 < len(combined.Pix); i += 4 {
		alpha := inverted.Pix[i]
		combined.Pix[i+3] = alpha

		switch alpha {
		case 0xff:
			stats.Opaque++
			continue
		case 0x00:
			stats.Transparent++
		default:
			stats.Partial++
		}
		combined.Pix[i+0] = 0
		combined.Pix[i+1] = 0
		combined.Pix[i+2] = 0
	}

	c.emitStage(StageCombined, combined)
	c.emitStats(stats)
	return combined, nil
}

// Combine runs a one-off combine without instrumentation.
func Combine(background, mask image.Image) (*image.NRGBA, error) {
	return NewCompositor().Combine(background, mask)
}

func (c *Compositor) emitStage(name string, img image.Image) {
	if c.observer != nil {
		c.observer.OnStage(name, img)
	}
}

func (c *Compositor) emitStats(stats PixelStats) {
	if c.observer != nil {
		c.observer.OnStats(stats)
	}
}
