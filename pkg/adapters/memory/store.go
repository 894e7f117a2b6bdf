package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/ports"
	"github.com/aretw0/ctmdp/pkg/schema"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]schema.Description
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, seeded with descs keyed by their Name.
func NewStore(descs ...schema.Description) (*Store, error) {
	s := &Store{
		data: make(map[string]schema.Description),
	}
	for _, d := range descs {
		if err := s.Save(context.Background(), d.Name, d); err != nil {
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}
	return s, nil
}

// Save stores a deep copy of desc.
func (s *Store) Save(ctx context.Context, name string, desc schema.Description) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	copied := desc.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns a copy so callers can't mutate the stored description.
func (s *Store) Load(ctx context.Context, name string) (schema.Description, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	desc, ok := s.data[name]
	if !ok {
		return schema.Description{}, fmt.Errorf("model %q: %w", name, domain.ErrModelNotFound)
	}
	return desc.Clone(), nil
}

// Delete removes the description.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
