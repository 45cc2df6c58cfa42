// Package catalog holds the fixed table of aspect ratios and per-tier
// resolutions the downstream generative model accepts, and selects the best
// entry for an arbitrary region. The tables are process-wide constants; they
// mirror the model's accepted input sizes and are not runtime-tunable.
package catalog

import (
	"math"

	"github.com/brushwork/image-compositor/pkg/types"
)

// RatioEntry is one supported aspect ratio.
type RatioEntry struct {
	W     int    `json:"w"`
	H     int    `json:"h"`
	Label string `json:"label"`
}

// Value returns the ratio as a real number (W/H).
func (r RatioEntry) Value() float64 {
	return float64(r.W) / float64(r.H)
}

// Tier labels in ascending pixel-budget order.
const (
	Tier1K = "1K"
	Tier2K = "2K"
	Tier4K = "4K"
)

// Tier is a pixel-budget class holding one concrete resolution per supported
// ratio, index-aligned with the ratio table.
type Tier struct {
	Label       string
	Resolutions [10]types.Resolution
	maxPixels   int
}

// MaxPixels returns the largest pixel count among the tier's resolutions.
func (t Tier) MaxPixels() int {
	return t.maxPixels
}

// Supported aspect ratios in canonical order. The resolution tables below are
// index-aligned with this list; reordering either side breaks the pairing.
var ratios = [10]RatioEntry{
	{1, 1, "1:1"},
	{2, 3, "2:3"},
	{3, 2, "3:2"},
	{3, 4, "3:4"},
	{4, 3, "4:3"},
	{4, 5, "4:5"},
	{5, 4, "5:4"},
	{9, 16, "9:16"},
	{16, 9, "16:9"},
	{21, 9, "21:9"},
}

var tiers = [3]Tier{
	{Label: Tier1K, Resolutions: [10]types.Resolution{
		{Width: 1024, Height: 1024},
		{Width: 832, Height: 1248},
		{Width: 1248, Height: 832},
		{Width: 864, Height: 1152},
		{Width: 1152, Height: 864},
		{Width: 896, Height: 1120},
		{Width: 1120, Height: 896},
		{Width: 720, Height: 1280},
		{Width: 1280, Height: 720},
		{Width: 1680, Height: 720},
	}},
	{Label: Tier2K, Resolutions: [10]types.Resolution{
		{Width: 2048, Height: 2048},
		{Width: 1664, Height: 2496},
		{Width: 2496, Height: 1664},
		{Width: 1728, Height: 2304},
		{Width: 2304, Height: 1728},
		{Width: 1792, Height: 2240},
		{Width: 2240, Height: 1792},
		{Width: 1440, Height: 2560},
		{Width: 2560, Height: 1440},
		{Width: 3360, Height: 1440},
	}},
	{Label: Tier4K, Resolutions: [10]types.Resolution{
		{Width: 4096, Height: 4096},
		{Width: 3328, Height: 4992},
		{Width: 4992, Height: 3328},
		{Width: 3456, Height: 4608},
		{Width: 4608, Height: 3456},
		{Width: 3584, Height: 4480},
		{Width: 4480, Height: 3584},
		{Width: 2880, Height: 5120},
		{Width: 5120, Height: 2880},
		{Width: 6720, Height: 2880},
	}},
}

func init() {
	for i := range tiers {
		for _, r := range tiers[i].Resolutions {
			if px := r.PixelCount(); px > tiers[i].maxPixels {
				tiers[i].maxPixels = px
			}
		}
	}
}

// Ratios returns a copy of the supported aspect ratio table in canonical
// order.
func Ratios() []RatioEntry {
	return append([]RatioEntry(nil), ratios[:]...)
}

// Tiers returns copies of the resolution tiers in ascending pixel-budget
// order.
func Tiers() []Tier {
	return append([]Tier(nil), tiers[:]...)
}

// SelectTier returns the smallest tier whose maximum pixel count covers
// pixelCount. Regions larger than the biggest tier fall back to it; every
// positive pixel count maps to exactly one tier.
func SelectTier(pixelCount float64) Tier {
	for _, t := range tiers {
		if float64(t.maxPixels) >= pixelCount {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Match pairs a supported ratio with the concrete resolution chosen for a
// region.
type Match struct {
	Index      int
	Ratio      RatioEntry
	Resolution types.Resolution
	Tier       string
}

// Nearest selects the catalog ratio closest to width/height by absolute
// difference of the real-valued ratios, and the concrete resolution for the
// region's pixel budget. On a tie the earlier entry wins. Width and height
// must be positive; every positive pair maps to exactly one entry.
func Nearest(width, height float64) Match {
	current := width / height

	best := 0
	bestDiff := math.Abs(ratios[0].Value() - current)
	for i := 1; i < len(ratios); i++ {
		if diff := math.Abs(ratios[i].Value() - current); diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	tier := SelectTier(width * height)
	return Match{
		Index:      best,
		Ratio:      ratios[best],
		Resolution: tier.Resolutions[best],
		Tier:       tier.Label,
	}
}
