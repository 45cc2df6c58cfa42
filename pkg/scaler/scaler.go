// Package scaler computes upscale target dimensions for raster images.
//
// The calculator is independent of the resolution catalog: it serves plain
// upscaling requests, where the output only has to respect a dimension
// ceiling rather than a model's accepted input sizes.
package scaler

import (
	"math"

	"github.com/brushwork/image-compositor/pkg/types"
)

// DefaultMaxDimension caps either side of an upscale target when the
// caller passes no explicit ceiling.
const DefaultMaxDimension = 8192

// Factor tiers keyed by the smaller side of the source image. Small
// sources are scaled harder so outputs land in a comparable size range.
const (
	smallSideLimit  = 1024
	mediumSideLimit = 2048

	smallFactor  = 4.0
	mediumFactor = 2.0
	largeFactor  = 1.5
)

// OptimalUpscale picks an upscale factor from the source size and returns
// the resulting target dimensions. Pass maxDimension <= 0 for the default
// ceiling. Non-positive source dimensions yield the zero sentinel.
func OptimalUpscale(width, height, maxDimension int) types.DimensionCalculation {
	if width <= 0 || height <= 0 {
		return types.DimensionCalculation{}
	}

	factor := largeFactor
	switch smaller := minInt(width, height); {
	case smaller < smallSideLimit:
		factor = smallFactor
	case smaller <= mediumSideLimit:
		factor = mediumFactor
	}

	return UpscaleWithFactor(width, height, factor, maxDimension)
}

// UpscaleWithFactor scales both dimensions by a caller-supplied factor,
// clamping the result to maxDimension. When the clamp fires, the reported
// factor becomes the effective one actually applied.
func UpscaleWithFactor(width, height int, factor float64, maxDimension int) types.DimensionCalculation {
	if width <= 0 || height <= 0 || factor <= 0 {
		return types.DimensionCalculation{}
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}

	targetWidth := roundScale(width, factor)
	targetHeight := roundScale(height, factor)

	if larger := maxInt(targetWidth, targetHeight); larger > maxDimension {
		scale := float64(maxDimension) / float64(larger)
		targetWidth = roundScale(targetWidth, scale)
		targetHeight = roundScale(targetHeight, scale)
		factor = effectiveFactor(width, height, targetWidth, targetHeight)
	}

	return types.DimensionCalculation{
		TargetWidth:    targetWidth,
		TargetHeight:   targetHeight,
		UpscaleFactor:  factor,
		OriginalWidth:  width,
		OriginalHeight: height,
	}
}

// ValidateDimensions applies a caller-supplied factor and keeps the result
// between minDimension and maxDimension. The floor runs after the ceiling
// clamp, so when the two conflict the floor wins. minDimension <= 0
// disables the floor.
func ValidateDimensions(width, height int, factor float64, minDimension, maxDimension int) types.DimensionCalculation {
	calc := UpscaleWithFactor(width, height, factor, maxDimension)
	if calc.IsZero() || minDimension <= 0 {
		return calc
	}

	smaller := minInt(calc.TargetWidth, calc.TargetHeight)
	if smaller >= minDimension {
		return calc
	}

	scale := float64(minDimension) / float64(smaller)
	calc.TargetWidth = roundScale(calc.TargetWidth, scale)
	calc.TargetHeight = roundScale(calc.TargetHeight, scale)
	calc.UpscaleFactor = effectiveFactor(width, height, calc.TargetWidth, calc.TargetHeight)
	return calc
}

// effectiveFactor reports the smaller per-axis ratio between target and
// original dimensions.
func effectiveFactor(width, height, targetWidth, targetHeight int) float64 {
	return math.Min(float64(targetWidth)/float64(width), float64(targetHeight)/float64(height))
}

func roundScale(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
