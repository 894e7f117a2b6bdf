package ctmdp

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/schema"
)

// Version is the library and CLI version.
//
//go:embed VERSION
var Version string

// Parse decodes and builds a model description.
func Parse(data []byte) (*domain.Model, schema.Description, error) {
	return schema.Load(data)
}

// LoadModel reads a model description file (YAML or JSON) and builds it.
// An unnamed description takes the file path as its name.
func LoadModel(path string) (*domain.Model, schema.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, schema.Description{}, fmt.Errorf("failed to read model: %w", err)
	}
	m, desc, err := schema.Load(data)
	if err != nil {
		return nil, schema.Description{}, fmt.Errorf("%s: %w", path, err)
	}
	if desc.Name == "" {
		desc.Name = path
	}
	return m, desc, nil
}

// LoadAutomaton reads an automaton document and builds it.
func LoadAutomaton(path string) (*domain.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read automaton: %w", err)
	}
	doc, err := schema.DecodeAutomaton(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc.Build()
}

// LoadLabeling reads a labeling document.
func LoadLabeling(path string) (schema.LabelingDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.LabelingDocument{}, fmt.Errorf("failed to read labeling: %w", err)
	}
	doc, err := schema.DecodeLabeling(data)
	if err != nil {
		return schema.LabelingDocument{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadMap reads a state and action map document.
func LoadMap(path string) (schema.MapDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.MapDocument{}, fmt.Errorf("failed to read map: %w", err)
	}
	doc, err := schema.DecodeMap(data)
	if err != nil {
		return schema.MapDocument{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
