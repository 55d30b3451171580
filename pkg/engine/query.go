package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/oleksiit/giftrank/pkg/catalog"
)

// Row is a catalogue item enriched with its derived fields. Rows are
// built fresh for every query and are valid only for the corpus
// snapshot they were computed from.
type Row struct {
	catalog.Item

	Components    Components `json:"components"`
	Score         float64    `json:"score"`
	Value         float64    `json:"value"`
	PopRating     float64    `json:"pop_rating"`
	Priority      Priority   `json:"priority"`
	PriorityLabel string     `json:"priority_label"`
}

// SortKey selects the sort column.
type SortKey string

const (
	SortTitle      SortKey = "title"
	SortCategory   SortKey = "category"
	SortPrice      SortKey = "price"
	SortStars      SortKey = "stars"
	SortDays       SortKey = "days"
	SortReviews    SortKey = "reviews"
	SortPopularity SortKey = "popularity"
	SortScore      SortKey = "score"
	SortValue      SortKey = "value"
	SortPriority   SortKey = "priority"
)

// ParseSortKey validates a user-supplied sort key name.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortTitle, SortCategory, SortPrice, SortStars, SortDays,
		SortReviews, SortPopularity, SortScore, SortValue, SortPriority:
		return k, true
	}
	return "", false
}

// Sort is the single source of truth for ordering: one key, one
// direction. The UI's quick toggles are alternate constructors that
// overwrite it atomically, never separate booleans kept in sync.
type Sort struct {
	Key  SortKey `json:"key"`
	Desc bool    `json:"desc"`
}

// SortByValue is the "best value" quick toggle.
func SortByValue() Sort { return Sort{Key: SortValue, Desc: true} }

// SortByPopularity is the "most popular" quick toggle.
func SortByPopularity() Sort { return Sort{Key: SortPopularity, Desc: true} }

// Query holds one filter+sort request. Numeric filters arrive as raw
// strings; malformed values deactivate the filter instead of failing.
type Query struct {
	Category  string // exact category, "" or "all" keeps everything
	Tag       string // taxonomy tag id, takes precedence over Category
	Search    string // case-insensitive substring over title and category
	MaxPrice  string // price ceiling, lenient numeric
	MinRating string // stars floor, lenient numeric
	Sort      Sort   // zero value sorts by score descending
}

// Query builds rows for the whole corpus, filters, and stable-sorts.
// The input corpus is never mutated.
func (e *Engine) Query(c *Corpus, q Query) []Row {
	// Rows are built before filtering: filters and sorting may
	// reference derived fields such as value.
	rows := e.Build(c)

	var filtered []Row
	for _, r := range rows {
		if e.matches(r, q) {
			filtered = append(filtered, r)
		}
	}

	e.sortRows(filtered, q.Sort)
	return filtered
}

// Build computes the derived row for every item in corpus order.
func (e *Engine) Build(c *Corpus) []Row {
	rows := make([]Row, 0, len(c.Items))
	for _, it := range c.Items {
		comps := scoreItem(it, e.weights, c.formula, c.Agg.MaxReviews)
		value := Value(comps.Score, it.PriceMin)
		prio := e.thresholds.Classify(comps.Score, value, it.Popularity, c.Agg.ValueP85)
		rows = append(rows, Row{
			Item:          it,
			Components:    comps,
			Score:         comps.Score,
			Value:         value,
			PopRating:     PopRating(it.Popularity),
			Priority:      prio,
			PriorityLabel: prio.Label(),
		})
	}
	return rows
}

func (e *Engine) matches(r Row, q Query) bool {
	if q.Tag != "" {
		if !r.HasTag(q.Tag) {
			return false
		}
	} else if cat := strings.TrimSpace(q.Category); cat != "" && !strings.EqualFold(cat, "all") {
		if r.Category != cat {
			return false
		}
	}

	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		if !strings.Contains(strings.ToLower(r.Title), s) &&
			!strings.Contains(strings.ToLower(r.Category), s) {
			return false
		}
	}

	if max, ok := parseNum(q.MaxPrice); ok && r.PriceMin > max {
		return false
	}
	if min, ok := parseNum(q.MinRating); ok && r.Stars < min {
		return false
	}
	return true
}

// parseNum parses a lenient numeric filter input. Anything that isn't
// a finite number means "filter not applied".
func parseNum(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// sortRows stable-sorts in place. Equal keys keep their corpus/filter
// order in both directions.
func (e *Engine) sortRows(rows []Row, s Sort) {
	key := s.Key
	desc := s.Desc
	if key == "" {
		key, desc = SortScore, true
	}

	sort.SliceStable(rows, func(i, j int) bool {
		c := e.compare(rows[i], rows[j], key)
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func (e *Engine) compare(a, b Row, key SortKey) int {
	switch key {
	case SortTitle:
		return e.collator.CompareString(a.Title, b.Title)
	case SortCategory:
		return e.collator.CompareString(a.Category, b.Category)
	case SortPrice:
		return cmpFloat(a.PriceMin, b.PriceMin)
	case SortStars:
		return cmpFloat(a.Stars, b.Stars)
	case SortDays:
		return cmpFloat(a.DaysSinceAdded, b.DaysSinceAdded)
	case SortReviews:
		return cmpFloat(float64(a.Reviews), float64(b.Reviews))
	case SortPopularity:
		return cmpFloat(a.PopRating, b.PopRating)
	case SortValue:
		return cmpFloat(a.Value, b.Value)
	case SortPriority:
		return cmpFloat(float64(a.Priority), float64(b.Priority))
	default:
		return cmpFloat(a.Score, b.Score)
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
