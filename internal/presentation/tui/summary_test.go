package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ctmdp/pkg/bisim"
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/dsl"
	"github.com/aretw0/ctmdp/pkg/morphism"
)

func TestModelSummary(t *testing.T) {
	got := ModelSummary("path", dsl.Path(3))

	assert.Contains(t, got, "# path")
	assert.Contains(t, got, "3 states, 4 actions, goals: 2")
	assert.Contains(t, got, "| 0 | next | 0 | 1: 1 |")
	assert.Contains(t, got, "| 1 | prev | 0 | 0: 1 |")
	assert.Contains(t, got, "| 2 | prev | 0 | 1: 1 |")
}

func TestPartitionSummary(t *testing.T) {
	p := bisim.Refine(dsl.Cycle(4))
	got := PartitionSummary(p)

	assert.Contains(t, got, "## Partition (1 blocks)")
	assert.Contains(t, got, "| 0 | 0 | 0 1 2 3 |")
}

func TestViolationSummary(t *testing.T) {
	assert.Contains(t, ViolationSummary(nil), "Exact")

	got := ViolationSummary([]morphism.Violation{
		{Kind: morphism.MissingAction, State: domain.Int(0), Action: "jump", Detail: "no jump at 0"},
	})
	assert.Contains(t, got, "1 violations")
	assert.Contains(t, got, "| 0 | jump | missing_action | no jump at 0 |")
}

func TestSearchSummary(t *testing.T) {
	source := dsl.Cycle(2)
	r, err := morphism.Search(source, []*domain.Model{dsl.Cycle(2)}, morphism.DefaultMetric(), morphism.WithTrials(0))
	require.NoError(t, err)

	got := SearchSummary([]string{"self"}, r)
	assert.Contains(t, got, "Best candidate: self")
	assert.Contains(t, got, "Worst-case error: 0")
	assert.Contains(t, got, "| 1 | 1 |")
}

func TestDisplay_NonTerminalWritesRaw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Display(&buf, "# raw\n"))
	assert.Equal(t, "# raw\n", buf.String())
	assert.False(t, IsTerminal(&buf))
}

func TestVerdict(t *testing.T) {
	assert.Contains(t, Verdict(true, "valid"), "valid")
	assert.Contains(t, Verdict(false, "invalid"), "invalid")
}

func TestModelSummary_ActionlessStates(t *testing.T) {
	b := dsl.New("ends")
	b.State(domain.Atom("start")).Go("go", domain.Atom("done"))
	b.State(domain.Atom("done"))
	b.State(domain.Atom("stuck"))
	b.Goal(domain.Atom("done"))

	got := ModelSummary("ends", b.MustBuild())
	assert.Contains(t, got, "| done | goal | | |")
	assert.Contains(t, got, "| stuck | - | | |")
}
