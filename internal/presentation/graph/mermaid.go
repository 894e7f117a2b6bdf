package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/ctmdp/pkg/bisim"
	"github.com/aretw0/ctmdp/pkg/domain"
)

// GraphOverlay contains extra data to visualize on the graph.
type GraphOverlay struct {
	// Initial is drawn as a stadium.
	Initial domain.Label
	// Partition groups states into one subgraph per block.
	Partition *bisim.Partition
	// Highlighted states get the "highlight" class.
	Highlighted []domain.Label
}

// GenerateMermaid produces a Mermaid flowchart from a model.
// Shapes: goal ((Circle)), initial ([Stadium]), default [Rectangle].
// Each positive-weight transition is an edge labeled with the action, its
// normalized probability when below 1, and its reward when nonzero.
func GenerateMermaid(m *domain.Model, overlay *GraphOverlay) string {
	if overlay == nil {
		overlay = &GraphOverlay{}
	}
	ids := make(map[domain.Label]string, m.Len())
	for i, s := range m.States() {
		ids[s.Label] = "s" + strconv.Itoa(i)
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, s := range m.States() {
		opener, closer := "[", "]"
		switch {
		case m.IsGoal(s.Label):
			opener, closer = "((", "))"
		case overlay.Initial != "" && s.Label == overlay.Initial:
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[s.Label], opener, escape(s.Label.Text()), closer)
	}

	for _, s := range m.States() {
		for _, a := range s.Actions() {
			normalized := a.Measure.Normalize()
			for _, target := range a.Reachable() {
				to, ok := ids[target]
				if !ok {
					continue
				}
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", ids[s.Label], escape(edgeLabel(a, normalized[target])), to)
			}
		}
	}

	if overlay.Partition != nil {
		sb.WriteString("\n    %% Partition\n")
		for i, block := range overlay.Partition.Blocks() {
			fmt.Fprintf(&sb, "    subgraph b%d[\"block %d\"]\n", i, i)
			for _, l := range block {
				if id, ok := ids[l]; ok {
					fmt.Fprintf(&sb, "        %s\n", id)
				}
			}
			sb.WriteString("    end\n")
		}
	}

	if len(overlay.Highlighted) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text stays readable on both themes.
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := make(map[string]bool)
		for _, l := range overlay.Highlighted {
			id, ok := ids[l]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s highlight;\n", id)
		}
	}

	return sb.String()
}

func edgeLabel(a *domain.Action, p float64) string {
	label := a.Label
	if p < 1 {
		label += " " + strconv.FormatFloat(p, 'g', 3, 64)
	}
	if a.Reward != 0 {
		label += " r=" + strconv.FormatFloat(a.Reward, 'g', -1, 64)
	}
	return label
}

// escape keeps labels from closing the quoted Mermaid text.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
