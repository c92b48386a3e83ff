package roadmap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileRoadmap struct {
	ID         string     `yaml:"id"`
	UserID     string     `yaml:"user_id"`
	TargetRole string     `yaml:"target_role"`
	Items      []fileItem `yaml:"items"`
}

type fileItem struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	Type       string `yaml:"type"`
	Topic      string `yaml:"topic"`
	Difficulty string `yaml:"difficulty"`
}

type roadmapFile struct {
	Roadmaps []fileRoadmap `yaml:"roadmaps"`
}

// LoadFile reads roadmaps from a YAML import file.
func LoadFile(path string) ([]*Roadmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roadmap file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates roadmap YAML. Item positions follow file order.
func Parse(data []byte) ([]*Roadmap, error) {
	var f roadmapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse roadmap yaml: %w", err)
	}

	out := make([]*Roadmap, 0, len(f.Roadmaps))
	for i, fr := range f.Roadmaps {
		if strings.TrimSpace(fr.ID) == "" {
			return nil, fmt.Errorf("roadmaps[%d]: id is required", i)
		}
		r := &Roadmap{ID: fr.ID, UserID: fr.UserID, TargetRole: fr.TargetRole}
		seen := make(map[string]bool, len(fr.Items))
		for j, fi := range fr.Items {
			if fi.ID == "" || fi.Title == "" {
				return nil, fmt.Errorf("roadmap %s items[%d]: id and title are required", fr.ID, j)
			}
			if seen[fi.ID] {
				return nil, fmt.Errorf("roadmap %s: duplicate item id %q", fr.ID, fi.ID)
			}
			seen[fi.ID] = true

			typ := ItemType(fi.Type)
			if typ == "" {
				typ = ItemTheory
			}
			if !typ.Valid() {
				return nil, fmt.Errorf("roadmap %s item %s: unknown type %q", fr.ID, fi.ID, fi.Type)
			}
			r.Items = append(r.Items, Item{
				ID:         fi.ID,
				Title:      fi.Title,
				Type:       typ,
				Topic:      fi.Topic,
				Difficulty: fi.Difficulty,
				Position:   j,
			})
		}
		out = append(out, r)
	}
	return out, nil
}
