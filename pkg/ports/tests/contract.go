package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/ports"
	"github.com/aretw0/ctmdp/pkg/schema"
)

// fixture is a small description using every entry shape.
func fixture(name string) schema.Description {
	var d schema.Description
	d.Name = name
	d.AddState(domain.Int(0)).
		Add("next", schema.DeterministicTarget{Target: domain.Int(1)})
	d.AddState(domain.Int(1)).
		Add("prev", schema.Distribution{Measure: domain.Measure{domain.Int(0): 0.5, domain.Int(1): 0.5}}).
		Add("stay", schema.DistributionWithReward{Measure: domain.Dirac(domain.Int(1)), Reward: -1})
	d.Goals = []domain.Label{domain.Int(1)}
	return d
}

// RunModelStoreContract runs a suite of tests to verify that a ModelStore
// implementation adheres to the defined interface contract.
// The store must be empty.
func RunModelStoreContract(t *testing.T, store ports.ModelStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		want := fixture("contract")
		require.NoError(t, store.Save(ctx, "contract", want))

		got, err := store.Load(ctx, "contract")
		require.NoError(t, err)
		assert.Equal(t, want, got)

		_, err = schema.Build(got)
		assert.NoError(t, err)
	})

	t.Run("Overwrite", func(t *testing.T) {
		first := fixture("first")
		second := fixture("second")
		require.NoError(t, store.Save(ctx, "overwrite", first))
		require.NoError(t, store.Save(ctx, "overwrite", second))

		got, err := store.Load(ctx, "overwrite")
		require.NoError(t, err)
		assert.Equal(t, "second", got.Name)
	})

	t.Run("Isolation", func(t *testing.T) {
		d := fixture("isolated")
		require.NoError(t, store.Save(ctx, "isolated", d))

		d.States[1].Actions[0].Entry.(schema.Distribution).Measure[domain.Int(0)] = 99

		got, err := store.Load(ctx, "isolated")
		require.NoError(t, err)
		measure, _ := got.States[1].Actions[0].Entry.Resolve()
		assert.Equal(t, 0.5, measure[domain.Int(0)])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent")
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "doomed", fixture("doomed")))
		require.NoError(t, store.Delete(ctx, "doomed"))

		_, err := store.Load(ctx, "doomed")
		assert.ErrorIs(t, err, domain.ErrModelNotFound, "Load after Delete should return ErrModelNotFound")

		assert.NoError(t, store.Delete(ctx, "doomed"), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "b-model", fixture("b")))
		require.NoError(t, store.Save(ctx, "a-model", fixture("a")))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, "a-model")
		assert.Contains(t, names, "b-model")
		assert.NotContains(t, names, "doomed")
		assert.IsIncreasing(t, names)
	})

	t.Run("Invalid Name", func(t *testing.T) {
		err := store.Save(ctx, "../escape", fixture("x"))
		assert.ErrorIs(t, err, ports.ErrInvalidName)
	})
}
