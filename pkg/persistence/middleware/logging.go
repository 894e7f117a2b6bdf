package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/ctmdp/internal/logging"
	"github.com/aretw0/ctmdp/pkg/ports"
	"github.com/aretw0/ctmdp/pkg/schema"
)

type loggingMiddleware struct {
	next   ports.ModelStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at Debug and failures at Warn.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	logger = logging.OrNop(logger)
	return func(next ports.ModelStore) ports.ModelStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(op, name string, start time.Time, err error) {
	if err != nil {
		m.logger.Warn("store call failed", "op", op, "name", name, "error", err)
		return
	}
	m.logger.Debug("store call", "op", op, "name", name, "took", time.Since(start))
}

func (m *loggingMiddleware) Save(ctx context.Context, name string, desc schema.Description) error {
	start := time.Now()
	err := m.next.Save(ctx, name, desc)
	m.log("save", name, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (schema.Description, error) {
	start := time.Now()
	desc, err := m.next.Load(ctx, name)
	m.log("load", name, start, err)
	return desc, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.log("delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.log("list", "", start, err)
	return names, err
}
