package domain

import (
	"fmt"
	"math/rand/v2"
)

// Policy maps each non-goal state to proportional weights over its action labels.
type Policy struct {
	model   *Model
	weights map[Label]Measure
}

// actionKey lets action weights reuse Measure for sampling.
func actionKey(action string) Label { return Atom(action) }

// NewPolicy validates weights against model and returns a policy.
// Entries for goal states are dropped. Unknown states or actions, negative
// weights and rows without any positive weight are rejected.
func NewPolicy(model *Model, weights map[Label]map[string]float64) (*Policy, error) {
	p := &Policy{model: model, weights: make(map[Label]Measure, len(weights))}
	for state, row := range weights {
		if model.IsGoal(state) {
			continue
		}
		s, ok := model.State(state)
		if !ok {
			return nil, fmt.Errorf("policy state %s: %w", state, ErrStateNotFound)
		}
		m := make(Measure, len(row))
		for action, w := range row {
			if _, ok := s.Action(action); !ok {
				return nil, fmt.Errorf("policy action %s at %s: %w", action, state, ErrActionNotFound)
			}
			m[actionKey(action)] = w
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("policy state %s: %w", state, err)
		}
		p.weights[state] = m
	}
	return p, nil
}

// Model returns the model the policy chooses actions on.
func (p *Policy) Model() *Model { return p.model }

// Covers reports whether the policy defines a choice at state.
func (p *Policy) Covers(state Label) bool {
	_, ok := p.weights[state]
	return ok
}

// Weights returns the normalized action distribution at state.
func (p *Policy) Weights(state Label) map[string]float64 {
	m, ok := p.weights[state]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, w := range m.Normalize() {
		out[k.Text()] = w
	}
	return out
}

// SelectAction samples an action at state according to the policy weights.
func (p *Policy) SelectAction(state Label, rng *rand.Rand) (*Action, error) {
	if p.model.IsGoal(state) {
		return nil, fmt.Errorf("select at %s: %w", state, ErrGoalState)
	}
	m, ok := p.weights[state]
	if !ok {
		return nil, fmt.Errorf("policy has no entry for %s: %w", state, ErrStateNotFound)
	}
	key, err := m.Sample(rng)
	if err != nil {
		return nil, err
	}
	return p.model.Action(state, key.Text())
}
