package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ctmdp/pkg/adapters/memory"
	"github.com/aretw0/ctmdp/pkg/dsl"
	"github.com/aretw0/ctmdp/pkg/schema"
)

const pathYAML = `
states:
  0: {next: 1}
  1: {prev: 0, next: 2}
  2: {prev: 1}
goals: [2]
`

func newTestServer(t *testing.T, seed ...schema.Description) (http.Handler, *memory.Store) {
	t.Helper()
	store, err := memory.NewStore(seed...)
	require.NoError(t, err)
	return NewHandler(store), store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ctmdp-http")
}

func TestModelsCRUD(t *testing.T) {
	h, _ := newTestServer(t)

	w := do(t, h, "PUT", "/models/path3", pathYAML)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[Created](t, w)
	assert.Equal(t, Created{Name: "path3", States: 3, Actions: 4}, created)

	w = do(t, h, "GET", "/models", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"path3"}, decode[ModelList](t, w).Models)

	w = do(t, h, "GET", "/models/path3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	m, desc, err := schema.Load(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "path3", desc.Name)
	assert.Equal(t, 3, m.Len())

	w = do(t, h, "DELETE", "/models/path3", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/models/path3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateModel_GeneratesName(t *testing.T) {
	h, store := newTestServer(t)

	w := do(t, h, "POST", "/models", pathYAML)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[Created](t, w)

	_, err := uuid.Parse(created.Name)
	assert.NoError(t, err)

	desc, err := store.Load(context.Background(), created.Name)
	require.NoError(t, err)
	assert.Equal(t, created.Name, desc.Name)
}

func TestPutModel_Rejections(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		check  func(t *testing.T, resp ErrorResponse)
	}{
		{
			name:   "Malformed YAML",
			body:   "states: [",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "Unresolved Target And Bad Goal",
			body:   "states:\n  a: {go: ghost}\ngoals: [nowhere]\n",
			status: http.StatusUnprocessableEntity,
			check: func(t *testing.T, resp ErrorResponse) {
				assert.Equal(t, "invalid description", resp.Error)
				assert.Len(t, resp.Problems, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "PUT", "/models/bad", tt.body)
			assert.Equal(t, tt.status, w.Code)
			if tt.check != nil {
				tt.check(t, decode[ErrorResponse](t, w))
			}
		})
	}

	w := do(t, h, "GET", "/models", "")
	assert.Empty(t, decode[ModelList](t, w).Models)
}

func TestGetGraph(t *testing.T) {
	h, _ := newTestServer(t, schema.FromModel("cycle4", dsl.Cycle(4)))

	w := do(t, h, "GET", "/models/cycle4/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))
	assert.Contains(t, w.Body.String(), `s0(["0"])`)
	assert.NotContains(t, w.Body.String(), "subgraph")

	w = do(t, h, "GET", "/models/cycle4/graph?partition=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "subgraph b0")

	w = do(t, h, "GET", "/models/missing/graph", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuotient(t *testing.T) {
	h, store := newTestServer(t, schema.FromModel("cycle4", dsl.Cycle(4)))

	w := do(t, h, "POST", "/models/cycle4/quotient", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[QuotientResponse](t, w)
	assert.Equal(t, "cycle4-quotient", resp.Name)
	assert.Equal(t, 1, resp.States)
	assert.Equal(t, [][]string{{"0", "1", "2", "3"}}, resp.Blocks)

	_, err := store.Load(context.Background(), "cycle4-quotient")
	assert.NoError(t, err)

	w = do(t, h, "POST", "/models/cycle4/quotient", `{"into": "q", "reward_sensitive": true, "tolerance": 1e-6}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "q", decode[QuotientResponse](t, w).Name)
}

func TestProducts(t *testing.T) {
	h, _ := newTestServer(t,
		schema.FromModel("a", dsl.Path(2)),
		schema.FromModel("b", dsl.Path(3)),
	)

	w := do(t, h, "POST", "/products/box", `{"operands": ["a", "b"], "into": "grid"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, Created{Name: "grid", States: 6, Actions: 3*2 + 2*4}, decode[Created](t, w))

	w = do(t, h, "POST", "/products/cartesian", `{"operands": ["a", "b"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[Created](t, w)
	assert.Equal(t, "cartesian-a-b", created.Name)
	assert.Equal(t, 6, created.States)

	w = do(t, h, "POST", "/products/box", `{"operands": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, "POST", "/products/box", `{"operands": ["a", "ghost"]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, "POST", "/products/tensor", `{"operands": ["a"]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckMorphism(t *testing.T) {
	h, _ := newTestServer(t,
		schema.FromModel("cycle4", dsl.Cycle(4)),
		schema.FromModel("cycle2", dsl.Cycle(2)),
	)

	body := `{"source": "cycle4", "target": "cycle2", "map": {"states": {"0": "0", "1": "1", "2": "0", "3": "1"}}}`
	w := do(t, h, "POST", "/morphisms/check", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[CheckResponse](t, w)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Violations)

	// Without a map the identity leaves states 2 and 3 unmapped.
	w = do(t, h, "POST", "/morphisms/check", `{"source": "cycle4", "target": "cycle2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[CheckResponse](t, w)
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Violations)

	w = do(t, h, "POST", "/morphisms/check", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	store, err := memory.NewStore(schema.FromModel("cycle4", dsl.Cycle(4)))
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	h := NewHandler(store, WithRegistry(reg))

	w := do(t, h, "POST", "/models/cycle4/quotient", "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `ctmdp_states_built_total{operator="quotient"} 1`)
	assert.Contains(t, w.Body.String(), "ctmdp_refinement_rounds_total")
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestServer(t)
	req := httptest.NewRequest("OPTIONS", "/models", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
