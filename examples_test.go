package ctmdp_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ctmdp"
	"github.com/aretw0/ctmdp/pkg/bisim"
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/morphism"
	"github.com/aretw0/ctmdp/pkg/product"
	"github.com/aretw0/ctmdp/pkg/twisted"
)

func TestExamples_Grid(t *testing.T) {
	path, _, err := ctmdp.LoadModel(filepath.Join("examples", "grid", "path3.yaml"))
	require.NoError(t, err)
	aut, err := ctmdp.LoadAutomaton(filepath.Join("examples", "grid", "visit-corner.yaml"))
	require.NoError(t, err)
	labeling, err := ctmdp.LoadLabeling(filepath.Join("examples", "grid", "corners.yaml"))
	require.NoError(t, err)

	grid := product.Box(path, path)
	require.Equal(t, 9, grid.Len())

	tw, err := twisted.Build(grid, aut, labeling.Func())
	require.NoError(t, err)

	corner := domain.Tuple(domain.Int(2), domain.Int(2))
	assert.True(t, tw.Model.IsGoal(twisted.Label(corner, "done")))
	assert.False(t, tw.Model.IsGoal(twisted.Label(corner, "dead")))
	for _, g := range tw.Model.Goals() {
		_, q, ok := tw.Components(g)
		require.True(t, ok)
		assert.Equal(t, "done", q)
	}
}

func TestExamples_Slippery(t *testing.T) {
	m, _, err := ctmdp.LoadModel(filepath.Join("examples", "grid", "slippery.yaml"))
	require.NoError(t, err)

	a, err := m.Action(domain.Int(1), "next")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, a.Measure.Normalize()[domain.Int(2)], 1e-12)
}

func TestExamples_Ring(t *testing.T) {
	c4, _, err := ctmdp.LoadModel(filepath.Join("examples", "ring", "cycle4.yaml"))
	require.NoError(t, err)
	c2, _, err := ctmdp.LoadModel(filepath.Join("examples", "ring", "cycle2.yaml"))
	require.NoError(t, err)
	fold, err := ctmdp.LoadMap(filepath.Join("examples", "ring", "fold.yaml"))
	require.NoError(t, err)

	assert.True(t, morphism.FromDocument(fold).Morphism(c4, c2).IsValid())

	q, err := bisim.BuildQuotient(c4)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Model.Len())
}

func TestLoadModel_Errors(t *testing.T) {
	_, _, err := ctmdp.LoadModel(filepath.Join("examples", "missing.yaml"))
	assert.Error(t, err)

	// An automaton document is not a model.
	_, _, err = ctmdp.LoadModel(filepath.Join("examples", "grid", "visit-corner.yaml"))
	assert.Error(t, err)
}
