// Package imagecompositor provides geometry-aware region extraction,
// stitching and mask compositing for generative image editing.
//
// The engine sits between a composition editor and an image generation
// provider: it snaps user-drawn selections to the aspect ratios and
// resolutions the downstream model accepts, cuts the selected region out
// as a tile, and composites generated tiles back into the original image.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//		"os"
//
//		"github.com/brushwork/image-compositor"
//		"github.com/brushwork/image-compositor/pkg/types"
//	)
//
//	func main() {
//		engine := imagecompositor.New()
//
//		imageData, err := os.ReadFile("photo.png")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Snap a user selection to a supported size and cut it out.
//		box := types.BoundingBox{Left: 100, Top: 50, Width: 700, Height: 900}
//		result, err := engine.ExtractBoundingBox(imageData, box)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// ... hand result.Tile to a generation provider ...
//
//		// Composite the generated tile back into the original.
//		composite, err := engine.StitchTileBack(imageData, result.Tile, result.Fit.BoundingBox)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := os.WriteFile("composite.png", composite, 0o644); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// Images cross this API as encoded bytes (PNG, JPEG or WebP); decoding
// and re-encoding happen inside each call. The package consists of five
// main components:
//
// 1. Catalog (pkg/catalog): Supported aspect ratios and resolution tiers
// 2. Geometry (pkg/geometry): Bounds validation and ratio fitting
// 3. Stitcher (pkg/stitcher): Region extraction and tile compositing
// 4. Mask (pkg/mask): Stroke mask to alpha channel conversion
// 5. Scaler (pkg/scaler): Upscale target calculation
//
// Every operation is a synchronous pure function over its inputs, so
// concurrent callers need no coordination.
package imagecompositor

import (
	"context"
	"fmt"

	"github.com/brushwork/image-compositor/pkg/codec"
	"github.com/brushwork/image-compositor/pkg/generator"
	"github.com/brushwork/image-compositor/pkg/geometry"
	"github.com/brushwork/image-compositor/pkg/mask"
	"github.com/brushwork/image-compositor/pkg/scaler"
	"github.com/brushwork/image-compositor/pkg/stitcher"
	"github.com/brushwork/image-compositor/pkg/types"
)

// Version of the image compositor library
const Version = "1.0.0"

// Config holds engine configuration
type Config struct {
	// OutputFormat is the encoding for produced tiles and composites:
	// "png", "jpg" or "webp". Empty selects PNG.
	OutputFormat string
	// Observer receives mask compositing stages and pixel statistics.
	// Nil disables instrumentation.
	Observer mask.Observer
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() *Config {
	return &Config{
		OutputFormat: "png",
	}
}

// Engine is the high-level entry point for compositing operations
type Engine struct {
	config     *Config
	compositor *mask.Compositor
}

// New creates an Engine with default configuration
func New() *Engine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an Engine with custom configuration
func NewWithConfig(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	if config.OutputFormat == "" {
		config.OutputFormat = "png"
	}

	compositor := mask.NewCompositor()
	if config.Observer != nil {
		compositor = mask.NewCompositorWithObserver(config.Observer)
	}

	return &Engine{
		config:     config,
		compositor: compositor,
	}
}

// ExtractResult pairs an extracted tile with the geometry that produced it
type ExtractResult struct {
	Tile []byte          `json:"tile"`
	Fit  types.FittedBox `json:"fit"`
}

// Probe returns dimensions and pixel layout of an encoded image
func (e *Engine) Probe(imageData []byte) (codec.Metadata, error) {
	return codec.Probe(imageData)
}

// ValidateBounds checks that a box is a usable region of the image
func (e *Engine) ValidateBounds(imageData []byte, box types.BoundingBox) error {
	meta, err := codec.Probe(imageData)
	if err != nil {
		return &types.ProcessingError{
			Kind:    types.KindInvalidBounds,
			Message: "image dimensions cannot be determined",
			Err:     err,
		}
	}
	return geometry.ValidateBounds(box, meta.Width, meta.Height)
}

// FitToSupportedRatio snaps a box to the nearest supported aspect ratio
// and resolution without touching any pixels
func (e *Engine) FitToSupportedRatio(box types.BoundingBox) types.FittedBox {
	return geometry.FitToSupportedRatio(box)
}

// ExtractBoundingBox validates the box, snaps it to a supported ratio and
// returns the extracted tile at the matched resolution together with the
// fitted geometry needed to stitch a replacement back
func (e *Engine) ExtractBoundingBox(imageData []byte, box types.BoundingBox) (*ExtractResult, error) {
	img, err := codec.Decode(imageData)
	if err != nil {
		return nil, types.NewExtractError("failed to decode image", err, nil)
	}

	tile, fit, err := stitcher.ExtractBoundingBox(img, box)
	if err != nil {
		return nil, err
	}

	data, err := codec.Encode(tile, e.config.OutputFormat)
	if err != nil {
		return nil, types.NewExtractError("failed to encode tile", err, nil)
	}

	return &ExtractResult{Tile: data, Fit: fit}, nil
}

// StitchTileBack resamples a generated tile to the box dimensions and
// composites it over the original image
func (e *Engine) StitchTileBack(imageData, tileData []byte, box types.BoundingBox) ([]byte, error) {
	original, err := codec.Decode(imageData)
	if err != nil {
		return nil, types.NewCompositeError("failed to decode original image", err, nil)
	}
	tile, err := codec.Decode(tileData)
	if err != nil {
		return nil, types.NewCompositeError("failed to decode tile", err, nil)
	}

	composite, err := stitcher.StitchTileBack(original, tile, box)
	if err != nil {
		return nil, err
	}

	data, err := codec.Encode(composite, e.config.OutputFormat)
	if err != nil {
		return nil, types.NewCompositeError("failed to encode composite", err, nil)
	}
	return data, nil
}

// CombineMaskWithBackground merges a painted stroke mask into the
// background's alpha channel for inpainting. The result is always PNG
// encoded, since the configured format may not carry alpha
func (e *Engine) CombineMaskWithBackground(backgroundData, maskData []byte) ([]byte, error) {
	background, err := codec.Decode(backgroundData)
	if err != nil {
		return nil, types.NewMaskCombineError("failed to decode background", err, nil)
	}
	strokes, err := codec.Decode(maskData)
	if err != nil {
		return nil, types.NewMaskCombineError("failed to decode mask", err, nil)
	}

	combined, err := e.compositor.Combine(background, strokes)
	if err != nil {
		return nil, err
	}

	data, err := codec.Encode(combined, "png")
	if err != nil {
		return nil, types.NewMaskCombineError("failed to encode combined image", err, nil)
	}
	return data, nil
}

// OptimalUpscale computes upscale target dimensions for a source size
// using the default dimension ceiling
func (e *Engine) OptimalUpscale(width, height int) types.DimensionCalculation {
	return scaler.OptimalUpscale(width, height, 0)
}

// RegenerateRegion runs the full edit pipeline: extract the region, ask
// the generator for a replacement tile, stitch the result back into the
// original image
func (e *Engine) RegenerateRegion(ctx context.Context, imageData []byte, box types.BoundingBox, gen generator.TileGenerator) ([]byte, error) {
	if gen == nil {
		return nil, fmt.Errorf("nil tile generator")
	}

	extract, err := e.ExtractBoundingBox(imageData, box)
	if err != nil {
		return nil, err
	}

	tile, err := gen.GenerateTile(ctx, extract.Tile, generator.HintFromFit(extract.Fit))
	if err != nil {
		return nil, fmt.Errorf("tile generation failed: %w", err)
	}

	return e.StitchTileBack(imageData, tile, extract.Fit.BoundingBox)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
