package engine

import "math"

// PopRating compresses a raw interaction or search-result count into a
// 0-5 display rating. Calibration: 100 -> 1, 10k -> 3, 1M -> 5.
func PopRating(raw int) float64 {
	if raw <= 0 {
		return 0
	}
	return clamp(math.Log10(float64(raw))-1, 0, 5)
}
