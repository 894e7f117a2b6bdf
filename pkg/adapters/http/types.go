package http

import "github.com/aretw0/ctmdp/pkg/schema"

// ModelList is the GET /models response.
type ModelList struct {
	Models []string `json:"models"`
}

// Created is returned when a request stores a new model.
type Created struct {
	Name    string `json:"name"`
	States  int    `json:"states"`
	Actions int    `json:"actions"`
}

// ProductRequest is the body of POST /products/{op}.
type ProductRequest struct {
	Operands []string `json:"operands"`
	Into     string   `json:"into,omitempty"`
}

// QuotientRequest is the body of POST /models/{name}/quotient. All fields are optional.
type QuotientRequest struct {
	Into            string   `json:"into,omitempty"`
	Tolerance       *float64 `json:"tolerance,omitempty"`
	RewardSensitive bool     `json:"reward_sensitive,omitempty"`
}

// QuotientResponse reports the stored quotient and its blocks.
type QuotientResponse struct {
	Created
	Blocks [][]string `json:"blocks"`
}

// MapRequest is a JSON state and action table.
type MapRequest struct {
	States  map[string]string `json:"states,omitempty"`
	Actions map[string]string `json:"actions,omitempty"`
}

func (m *MapRequest) document() schema.MapDocument {
	if m == nil {
		return schema.MapDocument{}
	}
	return schema.MapDocument{States: m.States, Actions: m.Actions}
}

// CheckRequest is the body of POST /morphisms/check. A missing map is the identity.
type CheckRequest struct {
	Source    string      `json:"source"`
	Target    string      `json:"target"`
	Map       *MapRequest `json:"map,omitempty"`
	Tolerance *float64    `json:"tolerance,omitempty"`
}

// Violation mirrors morphism.Violation.
type Violation struct {
	Kind   string `json:"kind"`
	State  string `json:"state"`
	Action string `json:"action"`
	Detail string `json:"detail"`
}

// CheckResponse is the verdict of the exact morphism check.
type CheckResponse struct {
	Valid      bool        `json:"valid"`
	Violations []Violation `json:"violations"`
}

// ErrorResponse carries a message and, for invalid descriptions, every problem found.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}
