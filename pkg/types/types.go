package types

// BoundingBox describes a rectangular region in the pixel coordinate space of
// a specific image. The box carries no reference to that image; callers pair
// them explicitly. Fields are float64 so values arriving from the editor can
// be checked for integrality instead of being silently truncated: a valid box
// holds whole, non-negative numbers that stay inside the image.
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PixelCount returns the number of pixels the box covers.
func (b BoundingBox) PixelCount() float64 {
	return b.Width * b.Height
}

// Resolution is a concrete width/height pair accepted by the downstream model.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsZero reports whether the resolution is unset.
func (r Resolution) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// PixelCount returns width times height.
func (r Resolution) PixelCount() int {
	return r.Width * r.Height
}

// FittedBox is a BoundingBox snapped to the nearest supported aspect ratio,
// extended with the geometry the generation layer needs. It is produced by the
// fitter, consumed immediately by the extractor and never persisted.
type FittedBox struct {
	BoundingBox
	AspectRatio string     `json:"aspect_ratio"`
	Resolution  Resolution `json:"resolution"`
	Tier        string     `json:"tier"`
	NeedsResize bool       `json:"needs_resize"`
}

// DimensionCalculation is the result of an upscale computation. Non-positive
// inputs produce the zero value rather than an error; callers check IsZero
// before using the targets.
type DimensionCalculation struct {
	TargetWidth    int     `json:"target_width"`
	TargetHeight   int     `json:"target_height"`
	UpscaleFactor  float64 `json:"upscale_factor"`
	OriginalWidth  int     `json:"original_width"`
	OriginalHeight int     `json:"original_height"`
}

// IsZero reports whether the calculation is the invalid-input sentinel.
func (d DimensionCalculation) IsZero() bool {
	return d == DimensionCalculation{}
}
