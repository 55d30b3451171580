package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Taxonomy resolves tag ids to display labels and groups related tags.
// The engine filters on raw tag ids only; labels exist for output.
type Taxonomy struct {
	Labels map[string]string `json:"labels"`
	Groups []TagGroup        `json:"groups"`
}

// TagGroup is a named set of tag ids shown together in navigation.
type TagGroup struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	TagIDs []string `json:"tag_ids"`
}

// LoadTaxonomy reads a taxonomy mapping from a JSON file.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}

	var t Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}
	if t.Labels == nil {
		t.Labels = map[string]string{}
	}
	return &t, nil
}

// Label returns the display label for a tag id, falling back to the
// id itself for unknown tags.
func (t *Taxonomy) Label(id string) string {
	if t == nil {
		return id
	}
	if label, ok := t.Labels[id]; ok {
		return label
	}
	return id
}

// GroupTags returns the member tag ids of a group, nil if unknown.
func (t *Taxonomy) GroupTags(groupID string) []string {
	if t == nil {
		return nil
	}
	for _, g := range t.Groups {
		if g.ID == groupID {
			return g.TagIDs
		}
	}
	return nil
}
