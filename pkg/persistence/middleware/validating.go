package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/ctmdp/pkg/ports"
	"github.com/aretw0/ctmdp/pkg/schema"
)

type validatingMiddleware struct {
	ports.ModelStore
}

// NewValidatingMiddleware rejects descriptions that do not build before they
// reach the store, so every stored model loads.
func NewValidatingMiddleware() Middleware {
	return func(next ports.ModelStore) ports.ModelStore {
		return &validatingMiddleware{ModelStore: next}
	}
}

func (m *validatingMiddleware) Save(ctx context.Context, name string, desc schema.Description) error {
	if err := schema.Validate(desc); err != nil {
		return fmt.Errorf("model %q: %w", name, err)
	}
	return m.ModelStore.Save(ctx, name, desc)
}
