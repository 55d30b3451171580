package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LoadFile reads a corpus from a JSON array file. The file is produced
// offline by the acquisition and cleaning scripts; LoadFile only
// normalizes shape (price range ordering, missing tag sets) and leaves
// signal clamping to the engine.
func LoadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	now := time.Now().UTC()
	for i := range items {
		if items[i].Tags == nil {
			items[i].Tags = []string{}
		}
		if items[i].ImportedAt.IsZero() {
			items[i].ImportedAt = now
		}
	}
	return items, nil
}
