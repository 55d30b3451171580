package engine

import (
	"math"

	"github.com/oleksiit/giftrank/pkg/catalog"
)

// Components is the full scoring breakdown for one item. Callers that
// only need the composite use Score; the sub-components exist for
// display and debugging.
type Components struct {
	Rating     float64 `json:"rating"`     // (stars/5)*10, 0-10
	Recency    float64 `json:"recency"`    // 10*exp(-days/180), (0,10]
	Popularity float64 `json:"popularity"` // formula-dependent, 0-10
	Weighted   float64 `json:"weighted"`   // weighted sum before price
	Score      float64 `json:"score"`      // weighted / log2(price)
}

// Weights controls the relative importance of the three quality
// sub-components. A zero sum falls back to the defaults.
type Weights struct {
	Rating     float64 `yaml:"rating"`
	Recency    float64 `yaml:"recency"`
	Popularity float64 `yaml:"popularity"`
}

// DefaultWeights favors rating most, then recency, then popularity.
func DefaultWeights() Weights {
	return Weights{Rating: 0.40, Recency: 0.35, Popularity: 0.25}
}

// Formula is the popularity sub-score strategy. Two corpus schemas
// occur in practice: review counts with a corpus-wide maximum, and an
// external interaction-volume index. Everything else in the score is
// shared between them.
type Formula interface {
	Name() string
	popScore(it catalog.Item, maxReviews int) float64
}

// ReviewBased scales log10 of the item's review count against the
// corpus maximum, so a handful of outlier counts don't linearly
// dominate the sub-score.
type ReviewBased struct{}

func (ReviewBased) Name() string { return "reviews" }

func (ReviewBased) popScore(it catalog.Item, maxReviews int) float64 {
	if maxReviews <= 0 {
		return 0
	}
	reviews := float64(it.Reviews)
	if reviews < 0 {
		reviews = 0
	}
	return math.Log10(reviews+1) / math.Log10(float64(maxReviews)+1) * 10
}

// InteractionIndexBased reuses the 0-5 popularity rating at 2x scale
// to fit the 0-10 sub-component range.
type InteractionIndexBased struct{}

func (InteractionIndexBased) Name() string { return "interaction" }

func (InteractionIndexBased) popScore(it catalog.Item, _ int) float64 {
	return 2 * PopRating(it.Popularity)
}

// DetectFormula picks the strategy matching the corpus schema: review
// counts present anywhere means the review-based formula, otherwise
// the interaction-index variant.
func DetectFormula(items []catalog.Item) Formula {
	for i := range items {
		if items[i].Reviews > 0 {
			return ReviewBased{}
		}
	}
	return InteractionIndexBased{}
}

// ParseFormula maps a config name to a strategy. Empty and "auto"
// return nil, which defers to DetectFormula at corpus load.
func ParseFormula(name string) (Formula, bool) {
	switch name {
	case "", "auto":
		return nil, true
	case "reviews":
		return ReviewBased{}, true
	case "interaction":
		return InteractionIndexBased{}, true
	}
	return nil, false
}

// scoreItem computes the full breakdown for one item. Inputs are
// clamped, never rejected: out-of-scale stars, negative days and
// non-positive prices all collapse to their nearest legal value.
func scoreItem(it catalog.Item, w Weights, f Formula, maxReviews int) Components {
	stars := clamp(it.Stars, 0, 5)
	days := math.Max(it.DaysSinceAdded, 0)

	c := Components{
		Rating:     stars / 5 * 10,
		Recency:    10 * math.Exp(-days/180),
		Popularity: f.popScore(it, maxReviews),
	}
	c.Weighted = c.Rating*w.Rating + c.Recency*w.Recency + c.Popularity*w.Popularity

	// Price floor keeps the log divisor defined; price == 1 skips the
	// divisor entirely rather than rewarding a degenerate 1-currency item.
	price := math.Max(it.PriceMin, 1)
	c.Score = c.Weighted
	if logPrice := math.Log2(price); logPrice != 0 {
		c.Score = c.Weighted / logPrice
	}

	// Intentional fallback for sparse records: without it a record with
	// no signals sorts as worthless and value sorting degrades.
	if c.Score <= 0 {
		if it.PriceMin > 0 {
			c.Score = it.PriceMin * 0.10
		} else {
			c.Score = 0
		}
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
