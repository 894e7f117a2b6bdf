package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/ctmdp"
	"github.com/aretw0/ctmdp/internal/logging"
	"github.com/aretw0/ctmdp/internal/presentation/graph"
	"github.com/aretw0/ctmdp/pkg/bisim"
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/morphism"
	"github.com/aretw0/ctmdp/pkg/observability"
	"github.com/aretw0/ctmdp/pkg/ports"
	"github.com/aretw0/ctmdp/pkg/product"
	"github.com/aretw0/ctmdp/pkg/schema"
)

// maxBody caps request bodies.
const maxBody = 4 << 20

// Server serves the model algebra over a ModelStore.
type Server struct {
	Store    ports.ModelStore
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures NewHandler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = l
	}
}

// WithRegistry registers the operator metrics on reg and serves reg on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.Metrics = observability.NewMetrics(reg)
		s.Gatherer = reg
	}
}

// NewHandler creates the HTTP handler. Without WithRegistry a private
// registry backs /metrics.
func NewHandler(store ports.ModelStore, opts ...Option) http.Handler {
	server := &Server{Store: store}
	for _, opt := range opts {
		opt(server)
	}
	server.Logger = logging.OrNop(server.Logger)
	if server.Gatherer == nil {
		WithRegistry(prometheus.NewRegistry())(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/models", func(r chi.Router) {
		r.Get("/", server.ListModels)
		r.Post("/", server.CreateModel)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", server.GetModel)
			r.Put("/", server.PutModel)
			r.Delete("/", server.DeleteModel)
			r.Get("/graph", server.GetGraph)
			r.Post("/quotient", server.Quotient)
		})
	})
	r.Post("/products/{op}", server.Product)
	r.Post("/morphisms/check", server.CheckMorphism)

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "ctmdp-http",
		"version": strings.TrimSpace(ctmdp.Version),
	})
}

// ListModels handles GET /models.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ModelList{Models: names})
}

// CreateModel handles POST /models: the body is stored under a generated name.
func (s *Server) CreateModel(w http.ResponseWriter, r *http.Request) {
	s.storeBody(w, r, uuid.NewString(), http.StatusCreated)
}

// PutModel handles PUT /models/{name}.
func (s *Server) PutModel(w http.ResponseWriter, r *http.Request) {
	s.storeBody(w, r, chi.URLParam(r, "name"), http.StatusOK)
}

func (s *Server) storeBody(w http.ResponseWriter, r *http.Request, name string, status int) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	desc, err := schema.Decode(data)
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}
	desc.Name = name
	m, err := schema.Build(desc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Store.Save(r.Context(), name, desc); err != nil {
		s.writeError(w, err)
		return
	}
	s.Logger.Info("model stored", "name", name, "states", m.Len())
	s.writeJSON(w, status, Created{Name: name, States: m.Len(), Actions: m.NumActions()})
}

// GetModel handles GET /models/{name}, returning the stored description as YAML.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	desc, err := s.Store.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := schema.Encode(desc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(data)
}

// DeleteModel handles DELETE /models/{name}.
func (s *Server) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles GET /models/{name}/graph. With ?partition=true the
// bisimulation blocks are drawn as subgraphs.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	m, err := s.load(r, chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	overlay := &graph.GraphOverlay{}
	if first, ok := m.First(); ok {
		overlay.Initial = first.Label
	}
	if r.URL.Query().Get("partition") == "true" {
		overlay.Partition = bisim.Refine(m, bisim.WithMetrics(s.Metrics))
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(m, overlay))
}

// Quotient handles POST /models/{name}/quotient and stores the result.
func (s *Server) Quotient(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req QuotientRequest
	if !s.decodeJSON(w, r, &req, true) {
		return
	}
	if req.Into == "" {
		req.Into = name + "-quotient"
	}

	m, err := s.load(r, name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := []bisim.Option{bisim.WithMetrics(s.Metrics), bisim.WithLogger(s.Logger)}
	if req.Tolerance != nil {
		opts = append(opts, bisim.WithTolerance(*req.Tolerance))
	}
	if req.RewardSensitive {
		opts = append(opts, bisim.WithRewardSensitive())
	}
	q, err := bisim.BuildQuotient(m, opts...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Store.Save(r.Context(), req.Into, schema.FromModel(req.Into, q.Model)); err != nil {
		s.writeError(w, err)
		return
	}

	resp := QuotientResponse{
		Created: Created{Name: req.Into, States: q.Model.Len(), Actions: q.Model.NumActions()},
		Blocks:  make([][]string, 0, q.Partition.Len()),
	}
	for _, b := range q.Partition.Blocks() {
		labels := make([]string, len(b))
		for i, l := range b {
			labels[i] = l.String()
		}
		resp.Blocks = append(resp.Blocks, labels)
	}
	s.writeJSON(w, http.StatusCreated, resp)
}

// Product handles POST /products/{op} for op box or cartesian.
func (s *Server) Product(w http.ResponseWriter, r *http.Request) {
	op := chi.URLParam(r, "op")
	var fold func([]*domain.Model, ...product.Option) (*domain.Model, error)
	switch op {
	case "box":
		fold = product.BoxN
	case "cartesian":
		fold = product.CartesianN
	default:
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("unknown product %q", op)})
		return
	}

	var req ProductRequest
	if !s.decodeJSON(w, r, &req, false) {
		return
	}
	if req.Into == "" {
		req.Into = op + "-" + strings.Join(req.Operands, "-")
	}

	models := make([]*domain.Model, 0, len(req.Operands))
	for _, name := range req.Operands {
		m, err := s.load(r, name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		models = append(models, m)
	}

	out, err := fold(models, product.WithMetrics(s.Metrics), product.WithLogger(s.Logger))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Store.Save(r.Context(), req.Into, schema.FromModel(req.Into, out)); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, Created{Name: req.Into, States: out.Len(), Actions: out.NumActions()})
}

// CheckMorphism handles POST /morphisms/check.
func (s *Server) CheckMorphism(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !s.decodeJSON(w, r, &req, false) {
		return
	}
	source, err := s.load(r, req.Source)
	if err != nil {
		s.writeError(w, err)
		return
	}
	target, err := s.load(r, req.Target)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var opts []morphism.Option
	if req.Tolerance != nil {
		opts = append(opts, morphism.WithTolerance(*req.Tolerance))
	}
	mor := morphism.FromDocument(req.Map.document()).Morphism(source, target)

	resp := CheckResponse{Violations: []Violation{}}
	for _, v := range mor.Violations(opts...) {
		resp.Violations = append(resp.Violations, Violation{
			Kind:   string(v.Kind),
			State:  v.State.String(),
			Action: v.Action,
			Detail: v.Detail,
		})
	}
	resp.Valid = len(resp.Violations) == 0
	s.writeJSON(w, http.StatusOK, resp)
}

// -- Helpers --

func (s *Server) load(r *http.Request, name string) (*domain.Model, error) {
	desc, err := s.Store.Load(r.Context(), name)
	if err != nil {
		return nil, err
	}
	return schema.Build(desc)
}

// decodeJSON reads the body into v. An empty body is accepted when optional.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	s.Logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
	s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	return false
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: err.Error()}

	var aggr *schema.AggregateError
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ports.ErrInvalidName):
		status = http.StatusBadRequest
	case errors.As(err, &aggr):
		status = http.StatusUnprocessableEntity
		resp.Error = "invalid description"
		for _, e := range aggr.Errors {
			resp.Problems = append(resp.Problems, e.Error())
		}
	case errors.Is(err, domain.ErrNoOperands), errors.Is(err, domain.ErrEmptyModel):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
