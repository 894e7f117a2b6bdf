package product_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/dsl"
	"github.com/aretw0/ctmdp/pkg/product"
)

func pathDegree(i, n int) int {
	if i == 0 || i == n-1 {
		return 1
	}
	return 2
}

func TestBox_ChainCornerEdgeInterior(t *testing.T) {
	m := product.Box(dsl.Path(3), dsl.Path(3))
	require.Equal(t, 9, m.Len())

	counts := map[domain.Label]int{}
	for _, s := range m.States() {
		counts[s.Label] = len(s.Actions())
	}
	assert.Equal(t, 2, counts["(0, 0)"], "corner")
	assert.Equal(t, 3, counts["(0, 1)"], "edge")
	assert.Equal(t, 3, counts["(1, 2)"], "edge")
	assert.Equal(t, 4, counts["(1, 1)"], "interior")
	assert.Equal(t, 2, counts["(2, 2)"], "corner")
}

func TestBox_SelfProductDegrees(t *testing.T) {
	for n := 2; n <= 5; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			m := product.Box(dsl.Path(n), dsl.Path(n))
			assert.Equal(t, n*n, m.Len())
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					s, ok := m.State(domain.Tuple(domain.Int(i), domain.Int(j)))
					require.True(t, ok)
					assert.Len(t, s.Actions(), pathDegree(i, n)+pathDegree(j, n), "state %s", s.Label)
				}
			}
		})
	}
}

func TestBox_OneCoordinatePerStep(t *testing.T) {
	m := product.Box(dsl.Path(3), dsl.Cycle(3))
	m.Each(func(s *domain.State, a *domain.Action) {
		from := s.Label.Parts()
		for _, target := range a.Reachable() {
			to := target.Parts()
			changed := 0
			for k := range from {
				if from[k] != to[k] {
					changed++
				}
			}
			assert.Equal(t, 1, changed, "%s via %s to %s", s.Label, a.Label, target)
		}
	})
}

func TestBox_LabelsRewardsGoals(t *testing.T) {
	m1 := dsl.Path(2)
	m1.SetRewards(domain.RewardAction("next", 3))
	m2 := dsl.Path(2)

	m := product.Box(m1, m2)

	s, _ := m.State(domain.Tuple(domain.Int(0), domain.Int(0)))
	assert.Equal(t, []string{"next-M1", "next-M2"}, s.ActionLabels())

	a, err := m.Action(s.Label, "next-M1")
	require.NoError(t, err)
	assert.Equal(t, 3.0, a.Reward)
	assert.Equal(t, domain.Dirac(domain.Tuple(domain.Int(1), domain.Int(0))), a.Measure)

	assert.Equal(t, []domain.Label{"(1, 1)"}, m.Goals())

	bare := product.Box(m1, m2, product.WithSuffixes("", "right"))
	s, _ = bare.State(s.Label)
	assert.Equal(t, []string{"next", "next-right"}, s.ActionLabels())
}

func TestBox_InputsUntouched(t *testing.T) {
	m1 := dsl.Path(3)
	before := m1.Labels()
	_ = product.Box(m1, m1)
	assert.Equal(t, before, m1.Labels())
	assert.Equal(t, 4, m1.NumActions())
}

func TestCartesian_CountsAndLabels(t *testing.T) {
	m := product.Cartesian(dsl.Path(3), dsl.Path(3))
	for _, s := range m.States() {
		parts := s.Label.Parts()
		i, _ := strconv.Atoi(parts[0].Text())
		j, _ := strconv.Atoi(parts[1].Text())
		assert.Len(t, s.Actions(), pathDegree(i, 3)*pathDegree(j, 3), "state %s", s.Label)
	}

	s, _ := m.State(domain.MustParseLabel("(1, 1)"))
	assert.Equal(t, []string{"prev-prev", "prev-next", "next-prev", "next-next"}, s.ActionLabels())

	s, _ = m.State(domain.MustParseLabel("(0, 1)"))
	assert.Equal(t, []string{"next-prev", "next-next"}, s.ActionLabels())

	s, _ = m.State(domain.MustParseLabel("(0, 2)"))
	assert.Equal(t, []string{"next-prev"}, s.ActionLabels())

	dashed := product.Cartesian(dsl.Path(2), dsl.Path(2), product.WithSeparator("|"))
	s, _ = dashed.State(domain.MustParseLabel("(0, 0)"))
	assert.Equal(t, []string{"next|next"}, s.ActionLabels())
}

func TestCartesian_OverlayAndReward(t *testing.T) {
	m1 := domain.NewModel()
	m1.AddState("a").SetAction("go", domain.Measure{"a": 0.2, "b": 0.8}, 1)
	m1.AddState("b")
	m2 := domain.NewModel()
	m2.AddState("x").SetAction("go", domain.Dirac("x"), 2)

	m := product.Cartesian(m1, m2)

	a, err := m.Action(domain.Tuple("a", "x"), "go-go")
	require.NoError(t, err)
	assert.InDelta(t, 0.6, a.Measure[domain.Tuple("a", "x")], 1e-12)
	assert.InDelta(t, 0.9, a.Measure[domain.Tuple("b", "x")], 1e-12)
	assert.Equal(t, 3.0, a.Reward)
}

func TestCartesian_DropsEmptyOverlay(t *testing.T) {
	m1 := domain.NewModel()
	m1.AddState("a").SetAction("z", domain.Measure{"a": 0}, 0)
	m2 := domain.NewModel()
	m2.AddState("x").SetAction("w", domain.Measure{"x": 0}, 0)

	m := product.Cartesian(m1, m2)
	assert.Equal(t, 0, m.NumActions())
}

func TestBoxN_FlatLabelsAndSums(t *testing.T) {
	ops := []*domain.Model{dsl.Path(2), dsl.Path(3), dsl.Cycle(2)}
	m, err := product.BoxN(ops)
	require.NoError(t, err)
	assert.Equal(t, 12, m.Len())

	for _, s := range m.States() {
		parts := s.Label.Parts()
		require.Len(t, parts, 3, "label %s", s.Label)
		want := 0
		for k, op := range ops {
			st, ok := op.State(parts[k])
			require.True(t, ok)
			want += len(st.Actions())
		}
		assert.Len(t, s.Actions(), want, "state %s", s.Label)
	}

	s, _ := m.State(domain.MustParseLabel("(0, 1, 0)"))
	assert.ElementsMatch(t,
		[]string{"next-M1", "prev-M2", "next-M2", "prev-M3", "next-M3"},
		s.ActionLabels())

	a, err := m.Action(s.Label, "next-M3")
	require.NoError(t, err)
	assert.Equal(t, domain.Dirac(domain.MustParseLabel("(0, 1, 1)")), a.Measure)

	assert.Empty(t, m.Goals(), "the cycle has no goal")
}

func TestCartesianN_ProductsAndLabels(t *testing.T) {
	m, err := product.CartesianN([]*domain.Model{dsl.Path(3), dsl.Path(3), dsl.Path(2)})
	require.NoError(t, err)
	assert.Equal(t, 18, m.Len())

	s, ok := m.State(domain.MustParseLabel("(1, 1, 0)"))
	require.True(t, ok)
	assert.Len(t, s.Actions(), 4)
	assert.Contains(t, s.ActionLabels(), "prev-next-next")

	a, err := m.Action(s.Label, "prev-next-next")
	require.NoError(t, err)
	assert.Equal(t, domain.Dirac(domain.MustParseLabel("(0, 2, 1)")), a.Measure)
	assert.Equal(t, []domain.Label{"(2, 2, 1)"}, m.Goals())
}

func TestFold_TupleOperandsStayWhole(t *testing.T) {
	grid := product.Box(dsl.Path(2), dsl.Path(2))
	m, err := product.BoxN([]*domain.Model{grid, dsl.Path(2), dsl.Path(2)})
	require.NoError(t, err)

	_, ok := m.State(domain.MustParseLabel("((0, 1), 0, 1)"))
	assert.True(t, ok)
	for _, l := range m.Labels() {
		assert.Equal(t, 3, l.Len())
	}

	m, err = product.BoxN([]*domain.Model{dsl.Path(2), dsl.Path(2), grid})
	require.NoError(t, err)
	_, ok = m.State(domain.MustParseLabel("(0, 1, (1, 0))"))
	assert.True(t, ok)
}

func TestFold_Degenerate(t *testing.T) {
	_, err := product.BoxN(nil)
	assert.ErrorIs(t, err, domain.ErrNoOperands)

	only := dsl.Path(3)
	m, err := product.CartesianN([]*domain.Model{only})
	require.NoError(t, err)
	assert.Same(t, only, m)
}

func TestLift_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := product.Lift(func(l, r *domain.Model) (*domain.Model, error) {
		calls++
		if calls == 2 {
			return nil, boom
		}
		return product.Box(l, r), nil
	}, dsl.Path(2), dsl.Path(2), dsl.Path(2))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
