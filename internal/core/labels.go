package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Category is the canonical credibility class
type Category string

const (
	CategoryCredible   Category = "CREDIBLE"
	CategoryMisleading Category = "MISLEADING"
)

// ParseCategory parses a category name case-insensitively
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(CategoryCredible):
		return CategoryCredible, nil
	case string(CategoryMisleading):
		return CategoryMisleading, nil
	default:
		return "", fmt.Errorf("unknown category %q (expected credible or misleading)", s)
	}
}

var labelPresets = map[string]map[string]string{
	"fake-news": {
		"LABEL_0": string(CategoryMisleading),
		"LABEL_1": string(CategoryCredible),
		"FAKE":    string(CategoryMisleading),
		"REAL":    string(CategoryCredible),
	},
	"sentiment": {
		"POSITIVE": string(CategoryCredible),
		"NEGATIVE": string(CategoryMisleading),
	},
	// Prompted models answer in category names directly
	"credibility": {
		string(CategoryCredible):   string(CategoryCredible),
		string(CategoryMisleading): string(CategoryMisleading),
	},
}

// PresetLabels returns a copy of a built-in label table
func PresetLabels(name string) (map[string]string, bool) {
	preset, ok := labelPresets[name]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(preset))
	for k, v := range preset {
		out[k] = v
	}
	return out, true
}

// LabelMap maps a model's label vocabulary onto categories.
// Lookups ignore case.
type LabelMap struct {
	categories map[string]Category
	labels     []string
}

// NewLabelMap builds a label map from a label -> category name table
func NewLabelMap(table map[string]string) (LabelMap, error) {
	if len(table) == 0 {
		return LabelMap{}, errors.New("label map is empty")
	}

	// Sorted so conflicts and Labels() are deterministic
	raw := make([]string, 0, len(table))
	for label := range table {
		raw = append(raw, label)
	}
	sort.Strings(raw)

	m := LabelMap{categories: make(map[string]Category, len(table))}
	for _, label := range raw {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" {
			return LabelMap{}, errors.New("label map contains an empty label")
		}
		category, err := ParseCategory(table[label])
		if err != nil {
			return LabelMap{}, fmt.Errorf("label %q: %w", label, err)
		}
		key := foldLabel(trimmed)
		if existing, ok := m.categories[key]; ok {
			if existing != category {
				return LabelMap{}, fmt.Errorf("label %q is mapped to both %s and %s", trimmed, existing, category)
			}
			continue
		}
		m.categories[key] = category
		m.labels = append(m.labels, trimmed)
	}
	return m, nil
}

// Category looks up the category of a label
func (m LabelMap) Category(label string) (Category, bool) {
	c, ok := m.categories[foldLabel(strings.TrimSpace(label))]
	return c, ok
}

// Labels returns the mapped labels in sorted order
func (m LabelMap) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Len returns the number of distinct labels
func (m LabelMap) Len() int {
	return len(m.labels)
}

// Covers reports the first label in labels that the map does not cover
func (m LabelMap) Covers(labels []string) error {
	for _, label := range labels {
		if _, ok := m.Category(label); !ok {
			return &UnmappedLabelError{Label: label}
		}
	}
	return nil
}

func foldLabel(label string) string {
	// Casers carry state, so one per call
	return cases.Fold().String(label)
}
