package domain_test

import (
	"testing"

	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomaton_Delta(t *testing.T) {
	a, err := domain.NewAutomaton(
		[]string{"q0", "q1"},
		[]string{"a", "b"},
		"q0",
		domain.On("q0", "a", "q1"),
		domain.WithAccepting("q1"),
	)
	require.NoError(t, err)

	next, ok := a.Delta("q0", "a")
	assert.True(t, ok)
	assert.Equal(t, "q1", next)

	_, ok = a.Delta("q0", "b")
	assert.False(t, ok, "partial automaton has no successor")

	assert.True(t, a.IsAccepting("q1"))
	assert.False(t, a.IsAccepting("q0"))
	assert.Equal(t, []string{"a", "b"}, a.Alphabet())
	assert.Equal(t, "q0", a.Initial())
}

func TestAutomaton_Sink(t *testing.T) {
	a, err := domain.NewAutomaton(
		[]string{"q0", "dead"},
		[]string{"a"},
		"q0",
		domain.WithSink("dead"),
	)
	require.NoError(t, err)

	next, ok := a.Delta("q0", "a")
	assert.True(t, ok)
	assert.Equal(t, "dead", next)
	next, ok = a.Delta("dead", "a")
	assert.True(t, ok)
	assert.Equal(t, "dead", next)

	sink, ok := a.Sink()
	assert.True(t, ok)
	assert.Equal(t, "dead", sink)
}

func TestAutomaton_Validate(t *testing.T) {
	_, err := domain.NewAutomaton([]string{"q0"}, nil, "qx")
	assert.ErrorIs(t, err, domain.ErrUnknownAutomatonState)

	_, err = domain.NewAutomaton([]string{"q0"}, []string{"a"}, "q0", domain.On("q0", "a", "q9"))
	assert.ErrorIs(t, err, domain.ErrUnknownAutomatonState)

	_, err = domain.NewAutomaton([]string{"q0"}, []string{"a"}, "q0", domain.On("q0", "z", "q0"))
	assert.Error(t, err)

	_, err = domain.NewAutomaton([]string{"q0"}, nil, "q0", domain.WithSink("nowhere"))
	assert.ErrorIs(t, err, domain.ErrUnknownAutomatonState)
}
