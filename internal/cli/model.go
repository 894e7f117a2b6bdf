package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/ctmdp"
	"github.com/aretw0/ctmdp/internal/presentation/graph"
	"github.com/aretw0/ctmdp/internal/presentation/tui"
	"github.com/aretw0/ctmdp/internal/validator"
	"github.com/aretw0/ctmdp/pkg/bisim"
)

// ErrInvalidModel is returned by Validate when structural problems are found.
var ErrInvalidModel = errors.New("model is invalid")

// InspectOptions configures the inspect command.
type InspectOptions struct {
	Path      string
	Partition bool
	Out       io.Writer
}

// Inspect prints a markdown summary of a model.
func Inspect(opts InspectOptions) error {
	out := stdout(opts.Out)
	m, desc, err := ctmdp.LoadModel(opts.Path)
	if err != nil {
		return err
	}

	md := tui.ModelSummary(desc.Name, m)
	if opts.Partition {
		md += "\n" + tui.PartitionSummary(bisim.Refine(m))
	}
	return tui.Display(out, md)
}

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	Path  string
	Start string // defaults to the first state
	Out   io.Writer
}

// Validate builds a model and checks reachability and dead ends from Start.
func Validate(opts ValidateOptions) error {
	out := stdout(opts.Out)
	m, _, err := ctmdp.LoadModel(opts.Path)
	if err != nil {
		return err
	}

	start := opts.Start
	if start == "" {
		first, ok := m.First()
		if !ok {
			return fmt.Errorf("%s: %w", opts.Path, ErrInvalidModel)
		}
		start = first.Label.String()
	}

	if err := validator.ValidateModel(m, parseLabels([]string{start})[0]); err != nil {
		fmt.Fprintln(out, tui.Verdict(false, err.Error()))
		return fmt.Errorf("%s: %w", opts.Path, ErrInvalidModel)
	}
	fmt.Fprintln(out, tui.Verdict(true, "model is valid"))
	return nil
}

// GraphOptions configures the graph command.
type GraphOptions struct {
	Path      string
	Partition bool
	Highlight []string
	Out       io.Writer
}

// Graph prints the Mermaid diagram of a model.
func Graph(opts GraphOptions) error {
	out := stdout(opts.Out)
	m, _, err := ctmdp.LoadModel(opts.Path)
	if err != nil {
		return err
	}

	overlay := &graph.GraphOverlay{Highlighted: parseLabels(opts.Highlight)}
	if first, ok := m.First(); ok {
		overlay.Initial = first.Label
	}
	if opts.Partition {
		overlay.Partition = bisim.Refine(m)
	}
	_, err = fmt.Fprint(out, graph.GenerateMermaid(m, overlay))
	return err
}
