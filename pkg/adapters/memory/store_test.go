package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ctmdp/pkg/adapters/memory"
	"github.com/aretw0/ctmdp/pkg/dsl"
	contract "github.com/aretw0/ctmdp/pkg/ports/tests"
	"github.com/aretw0/ctmdp/pkg/schema"
)

func TestMemoryStore_Contract(t *testing.T) {
	store, err := memory.NewStore()
	require.NoError(t, err)
	contract.RunModelStoreContract(t, store)
}

func TestMemoryStore_Seed(t *testing.T) {
	store, err := memory.NewStore(schema.FromModel("path3", dsl.Path(3)), schema.FromModel("cycle4", dsl.Cycle(4)))
	require.NoError(t, err)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cycle4", "path3"}, names)

	_, err = memory.NewStore(schema.Description{})
	assert.Error(t, err, "unnamed seed")
}
