// Package generator defines the contract to the image generation layer.
//
// The engine prepares tiles and sizing hints; producing new pixels is
// the job of an external provider behind this interface.
package generator

import (
	"context"

	"github.com/brushwork/image-compositor/pkg/types"
)

// SizeHint tells a provider which canonical size a tile was snapped to.
type SizeHint struct {
	AspectRatio string           `json:"aspect_ratio"`
	Resolution  types.Resolution `json:"resolution"`
	Tier        string           `json:"tier"`
}

// HintFromFit derives a provider sizing hint from fitted geometry.
func HintFromFit(fit types.FittedBox) SizeHint {
	return SizeHint{
		AspectRatio: fit.AspectRatio,
		Resolution:  fit.Resolution,
		Tier:        fit.Tier,
	}
}

// TileGenerator produces a replacement tile for an extracted region.
// Input and output are encoded image bytes. Implementations should honor
// the hint's resolution so the result stitches back cleanly, and must
// respect ctx cancellation for long-running calls.
type TileGenerator interface {
	GenerateTile(ctx context.Context, tile []byte, hint SizeHint) ([]byte, error)
}
