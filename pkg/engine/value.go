package engine

import "math"

// Value expresses value-for-money as score earned per 100 currency
// units of entry price. Non-positive price or non-finite inputs
// yield 0 rather than an error or a division by zero.
func Value(score, priceMin float64) float64 {
	if priceMin <= 0 {
		return 0
	}
	if math.IsNaN(score) || math.IsInf(score, 0) ||
		math.IsNaN(priceMin) || math.IsInf(priceMin, 0) {
		return 0
	}
	return score * 100 / priceMin
}
