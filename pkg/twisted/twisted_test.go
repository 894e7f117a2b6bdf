package twisted_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/dsl"
	"github.com/aretw0/ctmdp/pkg/morphism"
	"github.com/aretw0/ctmdp/pkg/twisted"
)

// reachGoal accepts once the symbol "goal" has been read.
func reachGoal(t *testing.T, opts ...domain.AutomatonOption) *domain.Automaton {
	t.Helper()
	opts = append([]domain.AutomatonOption{
		domain.WithAccepting("done"),
		domain.On("wait", "goal", "done"),
		domain.On("done", "goal", "done"),
		domain.On("done", "safe", "done"),
	}, opts...)
	aut, err := domain.NewAutomaton([]string{"wait", "done"}, []string{"safe", "goal"}, "wait", opts...)
	require.NoError(t, err)
	return aut
}

func twoStates() *domain.Model {
	b := dsl.New("pair")
	b.State("a").Go("go", "b").Go("stay", "a")
	b.State("b").Go("back", "a")
	return b.MustBuild()
}

func labelB(l domain.Label) string {
	if l == "b" {
		return "goal"
	}
	return "safe"
}

func TestBuild_GoalIsAbsorbing(t *testing.T) {
	aut := reachGoal(t, domain.On("wait", "safe", "wait"))
	tw, err := twisted.Build(twoStates(), aut, labelB)
	require.NoError(t, err)

	assert.Equal(t, twisted.Label("a", "wait"), tw.Initial)
	assert.Equal(t, []domain.Label{
		twisted.Label("a", "wait"),
		twisted.Label("b", "done"),
		twisted.Label("a", "done"),
	}, tw.Model.Labels())

	reached := false
	for _, s := range tw.Model.States() {
		if !tw.IsAccepting(s.Label) {
			continue
		}
		reached = true
		for _, a := range s.Actions() {
			for _, target := range a.Reachable() {
				assert.True(t, tw.IsAccepting(target), "%s via %s leaves acceptance", s.Label, a.Label)
			}
		}
	}
	assert.True(t, reached)
	assert.ElementsMatch(t, []domain.Label{twisted.Label("b", "done"), twisted.Label("a", "done")}, tw.Model.Goals())
	assert.Empty(t, tw.Pruned)
}

func TestBuild_PrunesUnsynchronizedActions(t *testing.T) {
	// Partial automaton: "wait" has no transition on "goal".
	aut, err := domain.NewAutomaton([]string{"wait"}, []string{"safe", "goal"}, "wait",
		domain.On("wait", "safe", "wait"))
	require.NoError(t, err)

	tw, err := twisted.Build(twoStates(), aut, labelB)
	require.NoError(t, err)

	assert.Equal(t, []domain.Label{twisted.Label("a", "wait")}, tw.Model.Labels())
	s, _ := tw.Model.State(tw.Initial)
	assert.Equal(t, []string{"stay"}, s.ActionLabels())
	assert.Equal(t, []twisted.PrunedAction{{State: tw.Initial, Action: "go"}}, tw.Pruned)
}

func TestBuild_PartialMeasureKeepsSynchronizedMass(t *testing.T) {
	b := dsl.New("coin")
	b.State("a").Dist("flip", domain.Measure{"a": 1, "b": 3})
	b.State("b")
	aut, err := domain.NewAutomaton([]string{"wait"}, []string{"safe", "goal"}, "wait",
		domain.On("wait", "safe", "wait"))
	require.NoError(t, err)

	tw, err := twisted.Build(b.MustBuild(), aut, labelB)
	require.NoError(t, err)

	a, err := tw.Model.Action(tw.Initial, "flip")
	require.NoError(t, err)
	assert.Equal(t, domain.Measure{twisted.Label("a", "wait"): 1}, a.Measure)
}

func TestBuild_SinkCompletesTheAutomaton(t *testing.T) {
	aut, err := domain.NewAutomaton([]string{"wait", "err"}, []string{"safe", "goal"}, "wait",
		domain.On("wait", "safe", "wait"), domain.WithSink("err"))
	require.NoError(t, err)

	base := twoStates()
	base.SetRewards(domain.RewardAction("back", -2))
	tw, err := twisted.Build(base, aut, labelB)
	require.NoError(t, err)

	a, err := tw.Model.Action(twisted.Label("b", "err"), "back")
	require.NoError(t, err)
	assert.Equal(t, domain.Dirac(twisted.Label("a", "err")), a.Measure)
	assert.Equal(t, -2.0, a.Reward)
	assert.Empty(t, tw.Pruned)

	// Fully synchronized: the counit is an exact morphism onto the base.
	proj := morphism.New(tw.Model, base, tw.Projection(), morphism.IdentityAction)
	assert.True(t, proj.IsValid())
}

func TestTwisted_CounitAndComponents(t *testing.T) {
	aut := reachGoal(t, domain.On("wait", "safe", "wait"))
	base := twoStates()
	tw, err := twisted.Build(base, aut, labelB)
	require.NoError(t, err)

	l := twisted.Label("b", "done")
	b, q, ok := tw.Components(l)
	require.True(t, ok)
	assert.Equal(t, domain.Label("b"), b)
	assert.Equal(t, "done", q)

	s, ok := tw.Counit(l)
	require.True(t, ok)
	assert.Equal(t, []string{"back"}, s.ActionLabels())

	_, ok = tw.Counit(twisted.Label("b", "wait"))
	assert.False(t, ok, "unreachable pair")
}

func TestTwisted_CoextendMorphism(t *testing.T) {
	aut := reachGoal(t, domain.On("wait", "safe", "wait"))
	base := twoStates()
	tw, err := twisted.Build(base, aut, labelB)
	require.NoError(t, err)

	renamed := twoStates()
	renamed.RelabelStates(domain.StateRename{From: "a", To: "A"}, domain.StateRename{From: "b", To: "B"})
	upper := func(l domain.Label) domain.Label {
		return map[domain.Label]domain.Label{"a": "A", "b": "B"}[l]
	}
	tw2, err := twisted.Build(renamed, aut, func(l domain.Label) string { return labelB(map[domain.Label]domain.Label{"A": "a", "B": "b"}[l]) })
	require.NoError(t, err)

	f, g := tw.CoextendMorphism(upper, morphism.IdentityAction)
	assert.Equal(t, twisted.Label("B", "done"), f(twisted.Label("b", "done")))
	assert.True(t, morphism.New(tw.Model, tw2.Model, f, g).IsValid())
}

func TestBuild_InitialState(t *testing.T) {
	aut := reachGoal(t, domain.On("wait", "safe", "wait"))

	tw, err := twisted.Build(twoStates(), aut, labelB, twisted.WithInitialState("b"))
	require.NoError(t, err)
	assert.Equal(t, twisted.Label("b", "wait"), tw.Initial)

	_, err = twisted.Build(twoStates(), aut, labelB, twisted.WithInitialState("z"))
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	_, err = twisted.Build(domain.NewModel(), aut, labelB)
	assert.ErrorIs(t, err, domain.ErrEmptyModel)
}

func TestBuild_DanglingTarget(t *testing.T) {
	base := domain.NewModel()
	base.AddState("a").SetAction("go", domain.Dirac("ghost"), 0)
	aut := reachGoal(t, domain.On("wait", "safe", "wait"))

	_, err := twisted.Build(base, aut, labelB)
	assert.ErrorIs(t, err, domain.ErrUnresolvedTarget)
}
