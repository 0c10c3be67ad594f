package mapping

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNotDocument is returned when a request document is not a mapping at the top level.
var ErrNotDocument = errors.New("document is not a mapping")

// LoadDocument loads and parses a YAML or JSON request document from the given path.
func LoadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	return ParseDocument(data)
}

// ParseDocument parses YAML data (JSON included) into a nested request map.
// An empty document yields an empty map.
func ParseDocument(data []byte) (map[string]any, error) {
	var doc any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if doc == nil {
		return map[string]any{}, nil
	}

	values, ok := asMap(doc)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotDocument, doc)
	}

	return values, nil
}

// DocumentPaths loads a request document and returns its ParameterNames.
func DocumentPaths(path string) ([]string, error) {
	values, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}

	return ParameterNames(values), nil
}
