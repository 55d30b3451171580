package catalog

import (
	"encoding/json"
	"time"
)

// Item is one catalogue entry. Numeric signals arrive from offline
// acquisition scripts and are not trusted: the engine clamps them
// before any arithmetic, the loader only normalizes shape.
type Item struct {
	ID              int64    `json:"id" db:"id"`
	Title           string   `json:"title" db:"title"`
	Category        string   `json:"category" db:"category"`
	Tags            []string `json:"tags,omitempty" db:"-"`
	PriceMin        float64  `json:"price_min" db:"price_min"`
	PriceMax        float64  `json:"price_max" db:"price_max"`
	Stars           float64  `json:"stars" db:"stars"`
	DaysSinceAdded  float64  `json:"days_since_added" db:"days_since_added"`
	Reviews         int      `json:"reviews" db:"reviews"`
	Popularity      int      `json:"popularity" db:"popularity"`
	Stock           bool     `json:"stock" db:"stock"`
	Personalization bool     `json:"personalization" db:"personalization"`

	ImportedAt time.Time `json:"imported_at,omitzero" db:"imported_at"`
	TagsJSON   string    `json:"-" db:"tags"`
}

// itemJSON mirrors Item plus the legacy scalar-price and alternate
// field names that occur across corpus snapshots.
type itemJSON struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Price           *float64 `json:"price"`
	PriceMin        *float64 `json:"price_min"`
	PriceMax        *float64 `json:"price_max"`
	Stars           float64  `json:"stars"`
	DaysSinceAdded  float64  `json:"days_since_added"`
	Reviews         int      `json:"reviews"`
	Popularity      int      `json:"popularity"`
	GoogleResults   int      `json:"google_results"`
	Stock           bool     `json:"stock"`
	Personalization bool     `json:"personalization"`
}

// UnmarshalJSON accepts both corpus schemas: a scalar "price" is read
// as price_min == price_max, and "google_results" feeds Popularity
// when no "popularity" field is present.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	it.ID = raw.ID
	it.Title = raw.Title
	if it.Title == "" {
		it.Title = raw.Name
	}
	it.Category = raw.Category
	it.Tags = raw.Tags
	it.Stars = raw.Stars
	it.DaysSinceAdded = raw.DaysSinceAdded
	it.Reviews = raw.Reviews
	it.Popularity = raw.Popularity
	if it.Popularity == 0 {
		it.Popularity = raw.GoogleResults
	}
	it.Stock = raw.Stock
	it.Personalization = raw.Personalization

	switch {
	case raw.PriceMin != nil || raw.PriceMax != nil:
		if raw.PriceMin != nil {
			it.PriceMin = *raw.PriceMin
		}
		if raw.PriceMax != nil {
			it.PriceMax = *raw.PriceMax
		}
		if it.PriceMax < it.PriceMin {
			it.PriceMin, it.PriceMax = it.PriceMax, it.PriceMin
		}
	case raw.Price != nil:
		it.PriceMin = *raw.Price
		it.PriceMax = *raw.Price
	}
	return nil
}

// HasTag reports whether the item carries the given taxonomy tag id.
func (it *Item) HasTag(id string) bool {
	for _, t := range it.Tags {
		if t == id {
			return true
		}
	}
	return false
}
