package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ctmdp/internal/presentation/graph"
	"github.com/aretw0/ctmdp/pkg/bisim"
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	coin := dsl.New("coin")
	coin.State(domain.Atom("flip")).
		Dist("toss", domain.Measure{domain.Atom("heads"): 1, domain.Atom("tails"): 3}).
		Reward("toss", -1)
	coin.State(domain.Atom("heads"))
	coin.State(domain.Atom("tails")).Go("retry", domain.Atom("flip"))
	coin.Goal(domain.Atom("heads"))

	tests := []struct {
		name     string
		model    *domain.Model
		overlay  *graph.GraphOverlay
		contains []string
	}{
		{
			name:  "Shapes",
			model: coin.MustBuild(),
			overlay: &graph.GraphOverlay{
				Initial: domain.Atom("flip"),
			},
			contains: []string{
				"graph TD",
				"s0([\"flip\"])",
				"s1((\"heads\"))",
				"s2[\"tails\"]",
			},
		},
		{
			name:  "Weighted Edges",
			model: coin.MustBuild(),
			contains: []string{
				"s0 -- \"toss 0.25 r=-1\" --> s1",
				"s0 -- \"toss 0.75 r=-1\" --> s2",
				"s2 -- \"retry\" --> s0",
			},
		},
		{
			name:  "Tuple Labels",
			model: dsl.Path(2),
			contains: []string{
				"s0[\"0\"]",
				"s0 -- \"next\" --> s1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.model, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	m := dsl.Cycle(4)
	p, err := bisim.NewPartition([][]domain.Label{
		{domain.Int(0), domain.Int(2)},
		{domain.Int(1), domain.Int(3)},
	})
	require.NoError(t, err)

	got := graph.GenerateMermaid(m, &graph.GraphOverlay{
		Partition:   p,
		Highlighted: []domain.Label{domain.Int(1), domain.Int(1), domain.Atom("ghost")},
	})

	assert.Contains(t, got, "subgraph b0[\"block 0\"]\n        s0\n        s2\n    end")
	assert.Contains(t, got, "subgraph b1[\"block 1\"]\n        s1\n        s3\n    end")
	assert.Contains(t, got, "classDef highlight")
	assert.Equal(t, 1, strings.Count(got, "class s1 highlight;"))
	assert.NotContains(t, got, "ghost")
}

func TestGenerateMermaid_EscapesQuotes(t *testing.T) {
	b := dsl.New("quoted")
	b.State(domain.Atom(`say "hi"`))
	got := graph.GenerateMermaid(b.MustBuild(), nil)
	assert.Contains(t, got, `s0["say #quot;hi#quot;"]`)
}
