package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source supplies the seed garments loaded at start-up.
type Source interface {
	Load(ctx context.Context) ([]Garment, error)
}

// FileSource reads a dataset file. JSON files may hold a bare array or an
// object with a "garments" array; .yaml and .yml files are read as YAML.
type FileSource struct {
	Path string
}

type datasetDoc struct {
	Garments []Garment `json:"garments" yaml:"garments"`
}

func (s FileSource) Load(ctx context.Context) ([]Garment, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) ([]Garment, error) {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '{' {
		var doc datasetDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode dataset: %w", err)
		}
		return nonNil(doc.Garments), nil
	}

	var out []Garment
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return nonNil(out), nil
}

func decodeYAML(data []byte) ([]Garment, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if len(node.Content) == 0 {
		return []Garment{}, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.MappingNode {
		var doc datasetDoc
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode dataset: %w", err)
		}
		return nonNil(doc.Garments), nil
	}

	var out []Garment
	if err := root.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return nonNil(out), nil
}

func nonNil(g []Garment) []Garment {
	if g == nil {
		return []Garment{}
	}
	return g
}

// LoadSeed fills the store from src. It is meant to run once, before serving.
func LoadSeed(ctx context.Context, src Source, store *MemStore) (int, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	store.Initialize(records)
	return len(records), nil
}
