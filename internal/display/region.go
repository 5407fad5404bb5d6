package display

import "math"

// Rect is a rectangle in logical (UI) pixels as produced by a region
// selection collaborator.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// PhysicalRegion is a rectangle in physical capture pixels. Width and Height
// are always even; encoders with chroma subsampling reject odd dimensions.
type PhysicalRegion struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Physical maps a logical rectangle to physical pixels by applying the
// display scale factor, rounding each coordinate, clamping origins at zero,
// and bumping odd dimensions up to the next even value.
func Physical(r Rect, scale float64) PhysicalRegion {
	if scale < 1 {
		scale = 1
	}
	region := PhysicalRegion{
		X:      roundScaled(r.X, scale),
		Y:      roundScaled(r.Y, scale),
		Width:  roundScaled(r.Width, scale),
		Height: roundScaled(r.Height, scale),
	}
	if region.X < 0 {
		region.X = 0
	}
	if region.Y < 0 {
		region.Y = 0
	}
	if region.Width < 2 {
		region.Width = 2
	}
	if region.Height < 2 {
		region.Height = 2
	}
	if region.Width%2 != 0 {
		region.Width++
	}
	if region.Height%2 != 0 {
		region.Height++
	}
	return region
}

func roundScaled(value int, scale float64) int {
	return int(math.Round(float64(value) * scale))
}
