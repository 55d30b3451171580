package catalog

import (
	"encoding/json"
	"testing"
)

func TestItemUnmarshalPriceForms(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantMin float64
		wantMax float64
	}{
		{"scalar price", `{"id":1,"title":"mug","price":120}`, 120, 120},
		{"price range", `{"id":2,"title":"scarf","price_min":200,"price_max":350}`, 200, 350},
		{"swapped range is reordered", `{"id":3,"title":"game","price_min":500,"price_max":100}`, 100, 500},
		{"range wins over scalar", `{"id":4,"title":"box","price":10,"price_min":50,"price_max":60}`, 50, 60},
		{"no price", `{"id":5,"title":"card"}`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var it Item
			if err := json.Unmarshal([]byte(tt.in), &it); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if it.PriceMin != tt.wantMin || it.PriceMax != tt.wantMax {
				t.Errorf("price = [%v, %v], want [%v, %v]", it.PriceMin, it.PriceMax, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestItemUnmarshalAliases(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"id":7,"name":"tea set","google_results":12000,"stars":4.2}`), &it)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.Title != "tea set" {
		t.Errorf("Title = %q, want name fallback", it.Title)
	}
	if it.Popularity != 12000 {
		t.Errorf("Popularity = %d, want google_results fallback", it.Popularity)
	}

	// An explicit popularity field wins over google_results.
	err = json.Unmarshal([]byte(`{"id":8,"title":"x","popularity":5,"google_results":900}`), &it)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if it.Popularity != 5 {
		t.Errorf("Popularity = %d, want 5", it.Popularity)
	}
}

func TestItemHasTag(t *testing.T) {
	it := Item{Tags: []string{"kitchen", "ceramic"}}
	if !it.HasTag("ceramic") {
		t.Error("HasTag(ceramic) = false")
	}
	if it.HasTag("winter") {
		t.Error("HasTag(winter) = true")
	}
	empty := Item{}
	if empty.HasTag("kitchen") {
		t.Error("HasTag on empty tag set = true")
	}
}
