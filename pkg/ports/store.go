package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/ctmdp/pkg/schema"
)

// ErrInvalidName is returned for model names a store cannot key.
var ErrInvalidName = errors.New("invalid model name")

// ModelStore persists model descriptions by name.
type ModelStore interface {
	// Save stores desc under name, replacing any previous description.
	Save(ctx context.Context, name string, desc schema.Description) error

	// Load retrieves the description stored under name.
	// Returns domain.ErrModelNotFound if there is none.
	Load(ctx context.Context, name string) (schema.Description, error)

	// Delete removes name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names, sorted.
	List(ctx context.Context) ([]string, error)
}

// ValidateName rejects names that are empty or could escape a key namespace
// or directory.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\:`) || strings.TrimSpace(name) != name {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}
