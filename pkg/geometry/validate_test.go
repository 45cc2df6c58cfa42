package geometry

import (
	"math"
	"testing"

	"github.com/brushwork/image-compositor/pkg/types"
)

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name        string
		box         types.BoundingBox
		imageWidth  int
		imageHeight int
		valid       bool
	}{
		{
			name:        "box inside image",
			box:         types.BoundingBox{Left: 10, Top: 20, Width: 50, Height: 40},
			imageWidth:  100,
			imageHeight: 100,
			valid:       true,
		},
		{
			name:        "box filling image exactly",
			box:         types.BoundingBox{Left: 0, Top: 0, Width: 100, Height: 100},
			imageWidth:  100,
			imageHeight: 100,
			valid:       true,
		},
		{
			name:        "box flush with right edge",
			box:         types.BoundingBox{Left: 90, Top: 0, Width: 10, Height: 10},
			imageWidth:  100,
			imageHeight: 100,
			valid:       true,
		},
		{
			name:        "width exceeds image",
			box:         types.BoundingBox{Left: 0, Top: 0, Width: 101, Height: 10},
			imageWidth:  100,
			imageHeight: 100,
			valid:       false,
		},
		{
			name:        "height exceeds image",
			box:         types.BoundingBox{Left: 0, Top: 95, Width: 10, Height: 10},
			imageWidth:  100,
			imageHeight: 100,
			valid:       false,
		},
		{
			name:        "negative left",
			box:         types.BoundingBox{Left: -1, Top: 0, Width: 1, Height: 1},
			imageWidth:  10,
			imageHeight: 10,
			valid:       false,
		},
		{
			name:        "negative top",
			box:         types.BoundingBox{Left: 0, Top: -3, Width: 1, Height: 1},
			imageWidth:  10,
			imageHeight: 10,
			valid:       false,
		},
		{
			name:        "fractional left",
			box:         types.BoundingBox{Left: 0.5, Top: 0, Width: 1, Height: 1},
			imageWidth:  10,
			imageHeight: 10,
			valid:       false,
		},
		{
			name:        "fractional height",
			box:         types.BoundingBox{Left: 0, Top: 0, Width: 2, Height: 1.25},
			imageWidth:  10,
			imageHeight: 10,
			valid:       false,
		},
		{
			name:        "zero width",
			box:         types.BoundingBox{Left: 0, Top: 0, Width: 0, Height: 5},
			imageWidth:  10,
			imageHeight: 10,
			valid:       false,
		},
		{
			name:        "negative height",
			box:         types.BoundingBox{Left: 0, Top: 0, Width: 5, Height: -5},
			imageWidth:  10,
			imageHeight: 10,
			valid:       false,
		},
		{
			name:        "zero image width",
			box:         types.BoundingBox{Left: 0, Top: 0, Width: 1, Height: 1},
			imageWidth:  0,
			imageHeight: 10,
			valid:       false,
		},
		{
			name:        "negative image height",
			box:         types.BoundingBox{Left: 0, Top: 0, Width: 1, Height: 1},
			imageWidth:  10,
			imageHeight: -1,
			valid:       false,
		},
		{
			name:        "NaN coordinate",
			box:         types.BoundingBox{Left: math.NaN(), Top: 0, Width: 1, Height: 1},
			imageWidth:  10,
			imageHeight: 10,
			valid:       false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateBounds(test.box, test.imageWidth, test.imageHeight)
			if test.valid && err != nil {
				t.Errorf("Expected box to validate, got %v", err)
			}
			if !test.valid {
				if err == nil {
					t.Fatal("Expected validation to fail")
				}
				if !types.IsInvalidBounds(err) {
					t.Errorf("Expected invalid_bounds error, got %v", err)
				}
			}
		})
	}
}

func TestValidateBoundsErrorContext(t *testing.T) {
	err := ValidateBounds(types.BoundingBox{Left: 0, Top: 0, Width: 101, Height: 10}, 100, 100)
	if err == nil {
		t.Fatal("Expected validation to fail")
	}

	pe, ok := err.(*types.ProcessingError)
	if !ok {
		t.Fatalf("Expected *types.ProcessingError, got %T", err)
	}
	if pe.Context["image_width"] != 100 {
		t.Errorf("Expected image_width 100 in context, got %v", pe.Context["image_width"])
	}
	if pe.Context["width"] != 101.0 {
		t.Errorf("Expected width 101 in context, got %v", pe.Context["width"])
	}
}
