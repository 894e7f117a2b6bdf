package product

import (
	"log/slog"

	"github.com/aretw0/ctmdp/internal/logging"
	"github.com/aretw0/ctmdp/pkg/observability"
)

// DefaultSeparator joins component action labels in a Cartesian product.
const DefaultSeparator = "-"

type config struct {
	left, right string
	separator   string
	logger      *slog.Logger
	metrics     *observability.Metrics
}

func newConfig(opts []Option) *config {
	c := &config{
		left:      "M1",
		right:     "M2",
		separator: DefaultSeparator,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a product operator.
type Option func(*config)

// WithSuffixes sets the action label suffixes of the box product operands.
// A suffix s turns action a into "a-s"; an empty suffix keeps the label as is.
func WithSuffixes(left, right string) Option {
	return func(c *config) {
		c.left, c.right = left, right
	}
}

// WithSeparator sets the string joining action labels in a Cartesian product.
func WithSeparator(sep string) Option {
	return func(c *config) {
		c.separator = sep
	}
}

// WithLogger sets the logger used for progress at Debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = logging.OrNop(l)
	}
}

// WithMetrics records built states.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}
