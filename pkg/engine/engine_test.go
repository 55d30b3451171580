package engine

import (
	"sort"
	"testing"

	"golang.org/x/text/language"

	"github.com/oleksiit/giftrank/pkg/catalog"
)

func TestLoadCorpusAggregates(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Category: "mugs", Reviews: 40, Stars: 4, PriceMin: 120},
		{ID: 2, Category: "books", Reviews: 90, Stars: 3, PriceMin: 340},
		{ID: 3, Category: "mugs", Reviews: 15, Stars: 5, PriceMin: 80},
		{ID: 4, Category: "", Reviews: 5, Stars: 2, PriceMin: 0}, // no price: excluded from p85
	}

	e := testEngine()
	c := e.LoadCorpus(items)

	if c.Agg.Count != 4 {
		t.Errorf("Count = %d, want 4", c.Agg.Count)
	}
	if c.Agg.MaxReviews != 90 {
		t.Errorf("MaxReviews = %d, want 90", c.Agg.MaxReviews)
	}
	if len(c.Agg.Categories) != 2 || c.Agg.Categories[0] != "books" || c.Agg.Categories[1] != "mugs" {
		t.Errorf("Categories = %v, want [books mugs]", c.Agg.Categories)
	}
	if c.Formula != "reviews" {
		t.Errorf("Formula = %q, want reviews", c.Formula)
	}

	// p85 must be the element at floor(n*0.85) of the ascending values
	// of positive-price items.
	var values []float64
	for _, it := range items {
		if it.PriceMin <= 0 {
			continue
		}
		values = append(values, Value(e.Score(it, c).Score, it.PriceMin))
	}
	sort.Float64s(values)
	want := values[int(float64(len(values))*0.85)]
	if c.Agg.ValueP85 != want {
		t.Errorf("ValueP85 = %v, want %v", c.Agg.ValueP85, want)
	}
}

func TestLoadCorpusEmpty(t *testing.T) {
	e := testEngine()
	c := e.LoadCorpus(nil)

	if c.Agg.Count != 0 || c.Agg.MaxReviews != 0 || c.Agg.ValueP85 != 0 {
		t.Errorf("empty corpus aggregates = %+v, want zeros", c.Agg)
	}
	if rows := e.Query(c, Query{}); len(rows) != 0 {
		t.Errorf("query over empty corpus returned %d rows", len(rows))
	}
}

func TestLoadCorpusForcedFormula(t *testing.T) {
	e := New(Weights{}, Thresholds{}, language.Und, InteractionIndexBased{})

	// Review counts are present, but the forced formula wins over detection.
	c := e.LoadCorpus([]catalog.Item{{Reviews: 50, Popularity: 10_000}})
	if c.Formula != "interaction" {
		t.Errorf("Formula = %q, want interaction", c.Formula)
	}
}
