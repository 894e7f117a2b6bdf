package bisim

import (
	"log/slog"

	"github.com/aretw0/ctmdp/internal/logging"
	"github.com/aretw0/ctmdp/pkg/observability"
)

// DefaultTolerance is the largest mass difference treated as equal.
const DefaultTolerance = 1e-9

type config struct {
	tolerance       float64
	rewardSensitive bool
	logger          *slog.Logger
	metrics         *observability.Metrics
}

func newConfig(opts []Option) *config {
	c := &config{tolerance: DefaultTolerance, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures refinement.
type Option func(*config)

// WithTolerance sets the largest difference at which two block masses (and
// rewards, when reward sensitive) still count as equal. Within a block, each
// state is compared against the first state of every group formed so far in
// label order, so the result does not depend on where masses fall relative
// to a rounding boundary. Zero means exact comparison.
func WithTolerance(tol float64) Option {
	return func(c *config) {
		c.tolerance = tol
	}
}

// WithRewardSensitive adds action rewards to signatures, so states with
// different rewards are never merged.
func WithRewardSensitive() Option {
	return func(c *config) {
		c.rewardSensitive = true
	}
}

// WithLogger sets the logger used for progress at Debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = logging.OrNop(l)
	}
}

// WithMetrics records refinement rounds and splits.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}
