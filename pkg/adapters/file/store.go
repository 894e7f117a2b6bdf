// Package file stores model descriptions as YAML files in a directory.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/ports"
	"github.com/aretw0/ctmdp/pkg/schema"
)

const ext = ".yaml"

// Store implements ports.ModelStore using the local filesystem.
// Each model lives in <BasePath>/<name>.yaml, in the same format the CLI reads.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".ctmdp/models".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".ctmdp", "models")
	}
	return &Store{BasePath: basePath}
}

// Save writes the description atomically: temp file, fsync, rename.
func (s *Store) Save(ctx context.Context, name string, desc schema.Description) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	data, err := schema.Encode(desc)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure model directory: %w", err)
	}
	destPath := s.path(name)

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows can't rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing model file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads and decodes the model file.
func (s *Store) Load(ctx context.Context, name string) (schema.Description, error) {
	if err := ports.ValidateName(name); err != nil {
		return schema.Description{}, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return schema.Description{}, fmt.Errorf("model %q: %w", name, domain.ErrModelNotFound)
		}
		return schema.Description{}, fmt.Errorf("failed to read model file: %w", err)
	}
	desc, err := schema.Decode(data)
	if err != nil {
		return schema.Description{}, fmt.Errorf("model %q: %w", name, err)
	}
	return desc, nil
}

// Delete removes the model file. Deleting a missing model is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete model file: %w", err)
	}
	return nil
}

// List returns the stored model names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		n := entry.Name()
		if entry.IsDir() || filepath.Ext(n) != ext || strings.HasPrefix(n, "tmp-") {
			continue
		}
		names = append(names, strings.TrimSuffix(n, ext))
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.BasePath, name+ext)
}
