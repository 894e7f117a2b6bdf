package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	backend "github.com/redis/go-redis/v9"

	httpAdapter "github.com/aretw0/ctmdp/pkg/adapters/http"
	"github.com/aretw0/ctmdp/pkg/adapters/file"
	"github.com/aretw0/ctmdp/pkg/adapters/memory"
	"github.com/aretw0/ctmdp/pkg/adapters/redis"
	"github.com/aretw0/ctmdp/pkg/persistence/middleware"
	"github.com/aretw0/ctmdp/pkg/ports"
)

// ServeOptions configures the serve command.
type ServeOptions struct {
	Addr     string
	StoreDir string // file store directory
	RedisURL string // takes precedence over StoreDir
	Memory   bool   // keep models in memory only
	Debug    bool
	Out      io.Writer
}

// NewStore picks the model store described by opts.
func NewStore(opts ServeOptions) (ports.ModelStore, error) {
	switch {
	case opts.RedisURL != "":
		redisOpts, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return redis.NewFromClient(backend.NewClient(redisOpts)), nil
	case opts.Memory:
		return memory.NewStore()
	default:
		return file.New(opts.StoreDir), nil
	}
}

// Serve runs the HTTP API until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	out := stdout(opts.Out)
	logger := createLogger(opts.Debug)

	backing, err := NewStore(opts)
	if err != nil {
		return err
	}
	store := middleware.Chain(backing,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidatingMiddleware(),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           httpAdapter.NewHandler(store, httpAdapter.WithLogger(logger), httpAdapter.WithRegistry(reg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(out, "Starting ctmdp server on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		fmt.Fprintln(out, "ctmdp server stopped gracefully")
		if c, ok := backing.(io.Closer); ok {
			return c.Close()
		}
		return nil
	}
}
