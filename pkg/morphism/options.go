package morphism

import (
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/ctmdp/internal/logging"
	"github.com/aretw0/ctmdp/pkg/observability"
)

const (
	// DefaultTolerance is the absolute tolerance of the exact check.
	DefaultTolerance = 1e-6
	// DefaultTrials is the number of random maps Search scores per candidate.
	DefaultTrials = 10
)

type config struct {
	tolerance float64
	trials    int
	rng       *rand.Rand
	logger    *slog.Logger
	metrics   *observability.Metrics
}

func newConfig(opts []Option) *config {
	c := &config{
		tolerance: DefaultTolerance,
		trials:    DefaultTrials,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures checks and searches.
type Option func(*config)

// WithTolerance sets the absolute tolerance of measure comparisons.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tolerance = tol
	}
}

// WithTrials sets the number of random maps scored per candidate.
func WithTrials(n int) Option {
	return func(c *config) {
		c.trials = n
	}
}

// WithRand sets the random source used by Search.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithLogger sets the logger used for progress at Debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = logging.OrNop(l)
	}
}

// WithMetrics records search trials and outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}
