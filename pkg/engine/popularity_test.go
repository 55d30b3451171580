package engine

import (
	"math"
	"testing"
)

func TestPopRatingCalibration(t *testing.T) {
	tests := []struct {
		raw  int
		want float64
	}{
		{0, 0},
		{-42, 0},
		{10, 0}, // log10(10)-1 = 0
		{100, 1},
		{10_000, 3},
		{1_000_000, 5},
		{100_000_000, 5}, // clamped at the top of the scale
	}
	for _, tt := range tests {
		if got := PopRating(tt.raw); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("PopRating(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
