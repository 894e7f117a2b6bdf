package twisted

import (
	"log/slog"

	"github.com/aretw0/ctmdp/internal/logging"
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/observability"
)

type config struct {
	initial    domain.Label
	hasInitial bool
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// Option configures Build.
type Option func(*config)

// WithInitialState starts the exploration from base state l instead of the
// first base state.
func WithInitialState(l domain.Label) Option {
	return func(c *config) {
		c.initial = l
		c.hasInitial = true
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
