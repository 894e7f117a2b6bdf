package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/ctmdp"
	"github.com/aretw0/ctmdp/pkg/bisim"
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/product"
	"github.com/aretw0/ctmdp/pkg/schema"
	"github.com/aretw0/ctmdp/pkg/twisted"
)

// ProductOptions configures the box and cartesian commands.
type ProductOptions struct {
	Kind      string // "box" or "cartesian"
	Paths     []string
	Name      string
	Separator string
	Output    string // file to write; stdout when empty
	Debug     bool
	Out       io.Writer
}

// Product folds the models at Paths with the box or Cartesian product.
func Product(opts ProductOptions) error {
	logger := createLogger(opts.Debug)
	models := make([]*domain.Model, 0, len(opts.Paths))
	names := make([]string, 0, len(opts.Paths))
	for _, p := range opts.Paths {
		m, desc, err := ctmdp.LoadModel(p)
		if err != nil {
			return err
		}
		models = append(models, m)
		names = append(names, strings.TrimSuffix(filepath.Base(desc.Name), filepath.Ext(desc.Name)))
	}

	pOpts := []product.Option{product.WithLogger(logger)}
	if opts.Separator != "" {
		pOpts = append(pOpts, product.WithSeparator(opts.Separator))
	}

	var out *domain.Model
	var err error
	switch opts.Kind {
	case "box":
		out, err = product.BoxN(models, pOpts...)
	case "cartesian":
		out, err = product.CartesianN(models, pOpts...)
	default:
		return fmt.Errorf("unknown product %q", opts.Kind)
	}
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name = opts.Kind + "(" + strings.Join(names, ", ") + ")"
	}
	return writeResult(stdout(opts.Out), opts.Output, schema.FromModel(name, out))
}

// QuotientOptions configures the quotient command.
type QuotientOptions struct {
	Path            string
	Tolerance       float64
	RewardSensitive bool
	Output          string
	Debug           bool
	Out             io.Writer
}

// Quotient writes the bisimulation quotient of a model.
func Quotient(opts QuotientOptions) error {
	m, desc, err := ctmdp.LoadModel(opts.Path)
	if err != nil {
		return err
	}

	bOpts := []bisim.Option{bisim.WithLogger(createLogger(opts.Debug))}
	if opts.Tolerance > 0 {
		bOpts = append(bOpts, bisim.WithTolerance(opts.Tolerance))
	}
	if opts.RewardSensitive {
		bOpts = append(bOpts, bisim.WithRewardSensitive())
	}
	q, err := bisim.BuildQuotient(m, bOpts...)
	if err != nil {
		return err
	}
	return writeResult(stdout(opts.Out), opts.Output, schema.FromModel(desc.Name+"/bisim", q.Model))
}

// TwistOptions configures the twist command.
type TwistOptions struct {
	Path          string
	AutomatonPath string
	LabelingPath  string
	Initial       string // base state to start from; defaults to the first state
	Output        string
	Debug         bool
	Out           io.Writer
}

// Twist writes the reachable product of a model with an automaton.
func Twist(opts TwistOptions) error {
	logger := createLogger(opts.Debug)
	m, desc, err := ctmdp.LoadModel(opts.Path)
	if err != nil {
		return err
	}
	aut, err := ctmdp.LoadAutomaton(opts.AutomatonPath)
	if err != nil {
		return err
	}
	labeling, err := ctmdp.LoadLabeling(opts.LabelingPath)
	if err != nil {
		return err
	}

	tOpts := []twisted.Option{twisted.WithLogger(logger)}
	if opts.Initial != "" {
		tOpts = append(tOpts, twisted.WithInitialState(parseLabels([]string{opts.Initial})[0]))
	}
	tw, err := twisted.Build(m, aut, labeling.Func(), tOpts...)
	if err != nil {
		return err
	}
	for _, p := range tw.Pruned {
		logger.Info("action pruned", "state", p.State, "action", p.Action)
	}
	return writeResult(stdout(opts.Out), opts.Output, schema.FromModel(desc.Name+"/twisted", tw.Model))
}
