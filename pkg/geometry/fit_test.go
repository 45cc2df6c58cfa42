package geometry

import (
	"testing"

	"github.com/brushwork/image-compositor/pkg/catalog"
	"github.com/brushwork/image-compositor/pkg/types"
)

func TestFitToSupportedRatio(t *testing.T) {
	tests := []struct {
		name       string
		box        types.BoundingBox
		wantBox    types.BoundingBox
		wantRatio  string
		wantRes    types.Resolution
		wantTier   string
		wantResize bool
	}{
		{
			// Landscape box keeps its width, the height is recomputed
			// and the overflow above the image is clamped away.
			name:       "landscape keeps width",
			box:        types.BoundingBox{Left: 0, Top: 0, Width: 1600, Height: 1000},
			wantBox:    types.BoundingBox{Left: 0, Top: 0, Width: 1600, Height: 1066},
			wantRatio:  "3:2",
			wantRes:    types.Resolution{Width: 2496, Height: 1664},
			wantTier:   "2K",
			wantResize: true,
		},
		{
			// Portrait box keeps its height and grows sideways, so the
			// left edge shifts by half the added width.
			name:       "portrait keeps height and widens",
			box:        types.BoundingBox{Left: 100, Top: 50, Width: 700, Height: 900},
			wantBox:    types.BoundingBox{Left: 90, Top: 50, Width: 720, Height: 900},
			wantRatio:  "4:5",
			wantRes:    types.Resolution{Width: 896, Height: 1120},
			wantTier:   "1K",
			wantResize: true,
		},
		{
			name:       "portrait keeps height and narrows",
			box:        types.BoundingBox{Left: 40, Top: 0, Width: 1200, Height: 1400},
			wantBox:    types.BoundingBox{Left: 80, Top: 0, Width: 1120, Height: 1400},
			wantRatio:  "4:5",
			wantRes:    types.Resolution{Width: 1792, Height: 2240},
			wantTier:   "2K",
			wantResize: true,
		},
		{
			// Odd width delta: the half offset is rounded down.
			name:       "odd centering offset floors",
			box:        types.BoundingBox{Left: 0, Top: 0, Width: 1201, Height: 1400},
			wantBox:    types.BoundingBox{Left: 40, Top: 0, Width: 1120, Height: 1400},
			wantRatio:  "4:5",
			wantRes:    types.Resolution{Width: 1792, Height: 2240},
			wantTier:   "2K",
			wantResize: true,
		},
		{
			// A box flush with the left edge cannot shift negative.
			name:       "left edge clamped at zero",
			box:        types.BoundingBox{Left: 0, Top: 50, Width: 700, Height: 900},
			wantBox:    types.BoundingBox{Left: 0, Top: 50, Width: 720, Height: 900},
			wantRatio:  "4:5",
			wantRes:    types.Resolution{Width: 896, Height: 1120},
			wantTier:   "1K",
			wantResize: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fit := FitToSupportedRatio(test.box)
			if fit.BoundingBox != test.wantBox {
				t.Errorf("Expected box %+v, got %+v", test.wantBox, fit.BoundingBox)
			}
			if fit.AspectRatio != test.wantRatio {
				t.Errorf("Expected ratio %s, got %s", test.wantRatio, fit.AspectRatio)
			}
			if fit.Resolution != test.wantRes {
				t.Errorf("Expected resolution %+v, got %+v", test.wantRes, fit.Resolution)
			}
			if fit.Tier != test.wantTier {
				t.Errorf("Expected tier %s, got %s", test.wantTier, fit.Tier)
			}
			if fit.NeedsResize != test.wantResize {
				t.Errorf("Expected NeedsResize %v, got %v", test.wantResize, fit.NeedsResize)
			}
		})
	}
}

// Boxes whose dimensions already match a catalog resolution must pass
// through untouched, whatever their position.
func TestFitCatalogPairsUnchanged(t *testing.T) {
	ratios := catalog.Ratios()
	for _, tier := range catalog.Tiers() {
		for i, res := range tier.Resolutions {
			box := types.BoundingBox{
				Left:   16,
				Top:    32,
				Width:  float64(res.Width),
				Height: float64(res.Height),
			}

			fit := FitToSupportedRatio(box)
			if fit.BoundingBox != box {
				t.Errorf("%s %s: expected box unchanged, got %+v", tier.Label, ratios[i].Label, fit.BoundingBox)
			}
			if fit.NeedsResize {
				t.Errorf("%s %s: expected NeedsResize false", tier.Label, ratios[i].Label)
			}
			if fit.Resolution != res {
				t.Errorf("%s %s: expected resolution %+v, got %+v", tier.Label, ratios[i].Label, res, fit.Resolution)
			}
			if fit.AspectRatio != ratios[i].Label {
				t.Errorf("%s: expected ratio %s, got %s", tier.Label, ratios[i].Label, fit.AspectRatio)
			}
		}
	}
}

// A fitted box re-selects the same catalog pair, so running it through
// again keeps its dimensions.
func TestFitStable(t *testing.T) {
	boxes := []types.BoundingBox{
		{Left: 0, Top: 0, Width: 1600, Height: 1000},
		{Left: 100, Top: 50, Width: 700, Height: 900},
		{Left: 40, Top: 0, Width: 1200, Height: 1400},
		{Left: 3, Top: 7, Width: 333, Height: 777},
	}

	for _, box := range boxes {
		first := FitToSupportedRatio(box)
		second := FitToSupportedRatio(first.BoundingBox)
		if second.BoundingBox != first.BoundingBox {
			t.Errorf("Box %+v: expected stable fit %+v, got %+v", box, first.BoundingBox, second.BoundingBox)
		}
	}
}

func BenchmarkFitToSupportedRatio(b *testing.B) {
	box := types.BoundingBox{Left: 100, Top: 50, Width: 700, Height: 900}
	for i := 0; i < b.N; i++ {
		FitToSupportedRatio(box)
	}
}
