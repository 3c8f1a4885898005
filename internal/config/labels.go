package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/young1lin/label-layout/labels"
)

// ErrEmptyLabelID is returned when a labels file has an entry without an id
var ErrEmptyLabelID = errors.New("label id is required")

// labelsFile is the mapping form of a labels file: `labels: [...]`
type labelsFile struct {
	Labels []labels.Label `yaml:"labels"`
}

// LoadLabels reads a YAML (or JSON) labels file. The file is either a list of
// {id, name} entries or a mapping with a `labels` key holding that list.
// Entries without a name use their id as the name.
func LoadLabels(path string) ([]labels.Label, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}
	return ParseLabels(data)
}

// ParseLabels decodes labels file content, see LoadLabels
func ParseLabels(data []byte) ([]labels.Label, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse labels file: %w", err)
	}
	// Empty document
	if len(root.Content) == 0 {
		return []labels.Label{}, nil
	}

	var out []labels.Label
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&out); err != nil {
			return nil, fmt.Errorf("failed to parse labels file: %w", err)
		}
	case yaml.MappingNode:
		var f labelsFile
		if err := doc.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse labels file: %w", err)
		}
		out = f.Labels
	default:
		return nil, fmt.Errorf("failed to parse labels file: expected a list or a mapping")
	}

	for i := range out {
		if out[i].ID == "" {
			return nil, fmt.Errorf("label at index %d: %w", i, ErrEmptyLabelID)
		}
		if out[i].Name == "" {
			out[i].Name = out[i].ID
		}
	}
	if out == nil {
		out = []labels.Label{}
	}
	return out, nil
}
