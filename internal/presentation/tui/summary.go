package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/ctmdp/pkg/bisim"
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/morphism"
)

// ModelSummary renders a model as a markdown table, one row per action.
func ModelSummary(name string, m *domain.Model) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", mdEscape(name))
	fmt.Fprintf(&sb, "%d states, %d actions", m.Len(), m.NumActions())
	if goals := m.Goals(); len(goals) > 0 {
		fmt.Fprintf(&sb, ", goals: %s", joinLabels(goals))
	}
	sb.WriteString("\n\n")

	sb.WriteString("| State | Action | Reward | Targets |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, s := range m.States() {
		if len(s.Actions()) == 0 {
			marker := "-"
			if m.IsGoal(s.Label) {
				marker = "goal"
			}
			fmt.Fprintf(&sb, "| %s | %s | | |\n", mdEscape(s.Label.String()), marker)
			continue
		}
		for _, a := range s.Actions() {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				mdEscape(s.Label.String()), mdEscape(a.Label), formatFloat(a.Reward), measureText(a.Measure))
		}
	}
	return sb.String()
}

// PartitionSummary lists the blocks of a partition.
func PartitionSummary(p *bisim.Partition) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Partition (%d blocks)\n\n", p.Len())
	sb.WriteString("| Block | Representative | States |\n")
	sb.WriteString("|---|---|---|\n")
	for i, b := range p.Blocks() {
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", i, mdEscape(b.Representative().String()), joinLabels(b))
	}
	return sb.String()
}

// ViolationSummary lists morphism violations; an empty list reads as exact.
func ViolationSummary(violations []morphism.Violation) string {
	if len(violations) == 0 {
		return "## Morphism\n\nExact: every action is preserved.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Morphism (%d violations)\n\n", len(violations))
	sb.WriteString("| State | Action | Kind | Detail |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, v := range violations {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			mdEscape(v.State.String()), mdEscape(v.Action), v.Kind, mdEscape(v.Detail))
	}
	return sb.String()
}

// SearchSummary describes the winner of a morphism search.
func SearchSummary(names []string, r *morphism.Result) string {
	var sb strings.Builder
	name := strconv.Itoa(r.Index)
	if r.Index < len(names) {
		name = names[r.Index]
	}
	fmt.Fprintf(&sb, "## Best candidate: %s\n\n", mdEscape(name))
	fmt.Fprintf(&sb, "Worst-case error: %s\n\n", formatFloat(r.Error))

	sb.WriteString("| Source state | Target state |\n")
	sb.WriteString("|---|---|\n")
	for _, l := range r.Morphism.Source.Labels() {
		fmt.Fprintf(&sb, "| %s | %s |\n", mdEscape(l.String()), mdEscape(r.Table.StateMap()(l).String()))
	}
	return sb.String()
}

func measureText(m domain.Measure) string {
	parts := make([]string, 0, len(m))
	for _, l := range m.Labels() {
		parts = append(parts, fmt.Sprintf("%s: %s", mdEscape(l.String()), formatFloat(m[l])))
	}
	return strings.Join(parts, ", ")
}

func joinLabels(labels []domain.Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = mdEscape(l.String())
	}
	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
