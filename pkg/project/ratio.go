package project

import "math"

// RatioFromDimensions maps pixel dimensions to the closest supported
// aspect ratio. Anything not within 0.1 of 4:3 is treated as 16:9.
func RatioFromDimensions(width, height int) string {
	if width <= 0 || height <= 0 {
		return AspectWide
	}
	r := float64(width) / float64(height)
	switch {
	case math.Abs(r-16.0/9.0) < 0.1:
		return AspectWide
	case math.Abs(r-4.0/3.0) < 0.1:
		return AspectStandard
	}
	return AspectWide
}
