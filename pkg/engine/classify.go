package engine

// Priority is the discrete analytics tier assigned to a row.
type Priority int

const (
	PriorityStandard  Priority = 1 // default, no other condition matched
	PriorityDemand    Priority = 2 // high demand, quality unqualified
	PriorityNiche     Priority = 3 // high quality, low reach
	PriorityValuePick Priority = 4 // value at or above the corpus 85th percentile
	PrioritySustained Priority = 5 // sustained high demand
)

// Label returns the display name for a priority tier. The mapping is
// total: unknown values read as the standard tier.
func (p Priority) Label() string {
	switch p {
	case PrioritySustained:
		return "sustained demand"
	case PriorityValuePick:
		return "value pick"
	case PriorityNiche:
		return "niche favorite"
	case PriorityDemand:
		return "high demand"
	default:
		return "standard"
	}
}

// Thresholds holds the classifier constants. Zero fields fall back to
// the historical defaults; corpora whose score formula produces a
// different output range override HighScore from config instead of
// inheriting a miscalibrated constant.
type Thresholds struct {
	HighScore       float64 `yaml:"high_score"`       // score gate for tiers 5 and 3
	HighDemand      float64 `yaml:"high_demand"`      // popularity gate for tiers 5 and 2
	NicheReach      float64 `yaml:"niche_reach"`      // popularity ceiling for tier 3
	ValuePercentile float64 `yaml:"value_percentile"` // corpus percentile for tier 4
}

// DefaultThresholds returns the historical calibration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighScore:       9.0,
		HighDemand:      400,
		NicheReach:      200,
		ValuePercentile: 0.85,
	}
}

func (t Thresholds) normalized() Thresholds {
	d := DefaultThresholds()
	if t.HighScore == 0 {
		t.HighScore = d.HighScore
	}
	if t.HighDemand == 0 {
		t.HighDemand = d.HighDemand
	}
	if t.NicheReach == 0 {
		t.NicheReach = d.NicheReach
	}
	if t.ValuePercentile <= 0 || t.ValuePercentile >= 1 {
		t.ValuePercentile = d.ValuePercentile
	}
	return t
}

// Classify assigns a priority tier. This is a decision list, not a
// scoring sum: conditions are evaluated top-down and the first match
// wins, so an item satisfying both tier 5 and tier 4 gets tier 5.
// valueP85 == 0 (empty or price-less corpus) disables tier 4 only.
func (t Thresholds) Classify(score, value float64, popularity int, valueP85 float64) Priority {
	pop := float64(popularity)
	switch {
	case score > t.HighScore && pop > t.HighDemand:
		return PrioritySustained
	case valueP85 > 0 && value >= valueP85:
		return PriorityValuePick
	case score > t.HighScore && pop < t.NicheReach:
		return PriorityNiche
	case pop > t.HighDemand:
		return PriorityDemand
	default:
		return PriorityStandard
	}
}
