package layout

import "math"

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// noBound disables one axis of a box. Computed bounds may be negative, so
// the sentinel sits far outside any reachable value.
const noBound = math.MinInt

// epsilon absorbs float error before flooring, so 36*(16/9) floors to 64.
const epsilon = 1e-9

// box is the space one thumbnail may occupy. Either axis may be noBound.
type box struct {
	width, height int
}

// fitAspect returns the largest size with the given aspect ratio that fits
// in b. The binding axis is whichever yields the smaller height. Results are
// floored to whole pixels, and anything under the minimum collapses to the
// minimum size for that ratio, even if the minimum overflows b.
func fitAspect(b box, ratio float64, minHeight int) Size {
	ratio = sanitizeRatio(ratio)
	minimum := minimumSize(ratio, minHeight)

	height := math.Inf(1)
	if b.width != noBound {
		height = math.Min(height, float64(b.width)/ratio)
	}
	if b.height != noBound {
		height = math.Min(height, float64(b.height))
	}
	if math.IsInf(height, 1) || math.IsNaN(height) {
		return minimum
	}

	h := int(math.Floor(height + epsilon))
	w := int(math.Floor(float64(h)*ratio + epsilon))
	if b.height != noBound && h > b.height {
		h = b.height
	}
	if b.width != noBound && w > b.width {
		w = b.width
	}

	if w < minimum.Width || h < minimum.Height {
		return minimum
	}
	return Size{Width: w, Height: h}
}

// minimumSize is the smallest thumbnail for ratio; both axes are at least 1.
func minimumSize(ratio float64, minHeight int) Size {
	h := max(minHeight, 1)
	w := max(int(math.Floor(float64(h)*ratio+epsilon)), 1)
	return Size{Width: w, Height: h}
}

func sanitizeRatio(ratio float64) float64 {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 1
	}
	return ratio
}

// Helper functions

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}

func nonNegative(v int) int {
	return max(v, 0)
}
