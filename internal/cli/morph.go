package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/aretw0/ctmdp"
	"github.com/aretw0/ctmdp/internal/presentation/tui"
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/morphism"
	"github.com/aretw0/ctmdp/pkg/schema"
)

// ErrNotMorphism is returned by Check when the map breaks the morphism conditions.
var ErrNotMorphism = errors.New("map is not a morphism")

// CheckOptions configures the morph command.
type CheckOptions struct {
	SourcePath string
	TargetPath string
	MapPath    string // identity when empty
	Tolerance  float64
	Out        io.Writer
}

// Check runs the exact morphism check and lists every violation.
func Check(opts CheckOptions) error {
	out := stdout(opts.Out)
	source, _, err := ctmdp.LoadModel(opts.SourcePath)
	if err != nil {
		return err
	}
	target, _, err := ctmdp.LoadModel(opts.TargetPath)
	if err != nil {
		return err
	}

	var doc schema.MapDocument
	if opts.MapPath != "" {
		if doc, err = ctmdp.LoadMap(opts.MapPath); err != nil {
			return err
		}
	}

	var mOpts []morphism.Option
	if opts.Tolerance > 0 {
		mOpts = append(mOpts, morphism.WithTolerance(opts.Tolerance))
	}
	violations := morphism.FromDocument(doc).Morphism(source, target).Violations(mOpts...)
	if err := tui.Display(out, tui.ViolationSummary(violations)); err != nil {
		return err
	}
	if len(violations) > 0 {
		return fmt.Errorf("%d violations: %w", len(violations), ErrNotMorphism)
	}
	return nil
}

// SearchOptions configures the search command.
type SearchOptions struct {
	SourcePath     string
	CandidatePaths []string
	Trials         int
	Seed           uint64 // random when zero
	Metric         string // "l1" (default) or "tv"
	MapOutput      string // file to write the winning map to
	Debug          bool
	Out            io.Writer
}

// Search looks for the candidate closest to the source under random maps.
func Search(opts SearchOptions) error {
	out := stdout(opts.Out)
	source, _, err := ctmdp.LoadModel(opts.SourcePath)
	if err != nil {
		return err
	}
	candidates := make([]*domain.Model, 0, len(opts.CandidatePaths))
	for _, p := range opts.CandidatePaths {
		m, _, err := ctmdp.LoadModel(p)
		if err != nil {
			return err
		}
		candidates = append(candidates, m)
	}

	metric := morphism.DefaultMetric()
	switch opts.Metric {
	case "", "l1":
	case "tv":
		metric.Distribution = morphism.TotalVariation
	default:
		return fmt.Errorf("unknown metric %q", opts.Metric)
	}

	sOpts := []morphism.Option{morphism.WithLogger(createLogger(opts.Debug))}
	if opts.Trials > 0 {
		sOpts = append(sOpts, morphism.WithTrials(opts.Trials))
	}
	if opts.Seed != 0 {
		sOpts = append(sOpts, morphism.WithRand(rand.New(rand.NewPCG(opts.Seed, opts.Seed))))
	}

	result, err := morphism.Search(source, candidates, metric, sOpts...)
	if err != nil {
		return err
	}
	if err := tui.Display(out, tui.SearchSummary(opts.CandidatePaths, result)); err != nil {
		return err
	}
	if opts.MapOutput != "" {
		if err := writeMap(opts.MapOutput, result.Table.Document()); err != nil {
			return err
		}
	}
	return nil
}
