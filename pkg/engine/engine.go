// Package engine turns raw catalogue signals into composite quality
// scores, value-for-money indexes and analytics priorities, and runs
// filter/sort queries over the derived rows. Every function is a pure
// function of its arguments: corpus-wide aggregates are computed once
// per load and threaded explicitly, never held as package state.
package engine

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/oleksiit/giftrank/pkg/catalog"
)

// Engine holds the scoring configuration shared by all queries.
type Engine struct {
	weights    Weights
	thresholds Thresholds
	formula    Formula // nil = detect per corpus
	collator   *collate.Collator
}

// New creates an engine. Zero weights and thresholds fall back to
// defaults; a nil formula is detected from the corpus schema at load.
func New(w Weights, t Thresholds, loc language.Tag, f Formula) *Engine {
	if w.Rating+w.Recency+w.Popularity == 0 {
		w = DefaultWeights()
	}
	return &Engine{
		weights:    w,
		thresholds: t.normalized(),
		formula:    f,
		collator:   collate.New(loc),
	}
}

// Aggregates are the once-per-load corpus statistics. They are
// invalidated by any corpus change and must never be recomputed per row.
type Aggregates struct {
	Count      int      `json:"count"`
	MaxReviews int      `json:"max_reviews"`
	ValueP85   float64  `json:"value_p85"`
	Categories []string `json:"categories"`
}

// Corpus is an immutable snapshot of the catalogue plus its aggregates.
// Queries read it, never mutate it; a reload builds a fresh Corpus and
// swaps it wholesale.
type Corpus struct {
	Items    []catalog.Item
	Agg      Aggregates
	Formula  string
	LoadedAt time.Time

	formula Formula
}

// LoadCorpus computes the corpus-wide aggregates and binds the score
// formula for this snapshot. An empty slice is a valid corpus.
func (e *Engine) LoadCorpus(items []catalog.Item) *Corpus {
	f := e.formula
	if f == nil {
		f = DetectFormula(items)
	}

	agg := Aggregates{Count: len(items)}
	seen := map[string]bool{}
	for i := range items {
		if items[i].Reviews > agg.MaxReviews {
			agg.MaxReviews = items[i].Reviews
		}
		if c := items[i].Category; c != "" && !seen[c] {
			seen[c] = true
			agg.Categories = append(agg.Categories, c)
		}
	}
	sort.Slice(agg.Categories, func(i, j int) bool {
		return e.collator.CompareString(agg.Categories[i], agg.Categories[j]) < 0
	})

	// 85th-percentile value over items with a positive price. Scores
	// depend only on MaxReviews, so this runs after the first pass.
	var values []float64
	for i := range items {
		if items[i].PriceMin <= 0 {
			continue
		}
		c := scoreItem(items[i], e.weights, f, agg.MaxReviews)
		values = append(values, Value(c.Score, items[i].PriceMin))
	}
	if len(values) > 0 {
		sort.Float64s(values)
		idx := int(float64(len(values)) * e.thresholds.ValuePercentile)
		if idx >= len(values) {
			idx = len(values) - 1
		}
		agg.ValueP85 = values[idx]
	}

	return &Corpus{
		Items:    items,
		Agg:      agg,
		Formula:  f.Name(),
		LoadedAt: time.Now().UTC(),
		formula:  f,
	}
}

// Score computes the scoring breakdown for a single item against the
// given corpus aggregates.
func (e *Engine) Score(it catalog.Item, c *Corpus) Components {
	return scoreItem(it, e.weights, c.formula, c.Agg.MaxReviews)
}
