package engine

import "testing"

func TestClassifyPrecedence(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name       string
		score      float64
		value      float64
		popularity int
		valueP85   float64
		want       Priority
	}{
		// Satisfies tier 4 too (value >= p85) but tier 5 is evaluated first.
		{"sustained beats value pick", 9.5, 12, 500, 3, PrioritySustained},
		{"value pick", 5, 12, 300, 3, PriorityValuePick},
		{"niche favorite", 9.5, 1, 100, 3, PriorityNiche},
		{"high demand without quality", 2, 1, 500, 3, PriorityDemand},
		{"standard", 2, 1, 100, 3, PriorityStandard},
		// Popularity in the dead zone [200,400]: neither tier 3 nor 2.
		{"mid popularity high score", 9.5, 1, 300, 3, PriorityStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := th.Classify(tt.score, tt.value, tt.popularity, tt.valueP85)
			if got != tt.want {
				t.Errorf("Classify = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassifyEmptyCorpusThreshold(t *testing.T) {
	th := DefaultThresholds()

	// valueP85 == 0 disables tier 4; everything else still terminates.
	if got := th.Classify(5, 100, 300, 0); got != PriorityStandard {
		t.Errorf("Classify with zero p85 = %d, want standard", got)
	}
	if got := th.Classify(9.5, 100, 500, 0); got != PrioritySustained {
		t.Errorf("Classify with zero p85 = %d, want sustained", got)
	}
}

func TestPriorityLabelTotal(t *testing.T) {
	for p := Priority(-1); p <= 7; p++ {
		if p.Label() == "" {
			t.Errorf("Priority(%d).Label() is empty", p)
		}
	}
	if PrioritySustained.Label() != "sustained demand" {
		t.Errorf("unexpected label %q", PrioritySustained.Label())
	}
}

func TestThresholdsNormalized(t *testing.T) {
	got := Thresholds{}.normalized()
	if got != DefaultThresholds() {
		t.Errorf("normalized zero thresholds = %+v, want defaults", got)
	}

	custom := Thresholds{HighScore: 3.5, HighDemand: 400, NicheReach: 200, ValuePercentile: 0.85}
	if got := custom.normalized(); got != custom {
		t.Errorf("normalized = %+v, want %+v unchanged", got, custom)
	}
}
