package dsl

import (
	"fmt"

	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/schema"
)

// Builder manages the description construction.
type Builder struct {
	name   string
	order  []domain.Label
	states map[domain.Label]*StateBuilder
	goals  []domain.Label
}

// New creates a new description builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[domain.Label]*StateBuilder),
	}
}

// State declares a state. If the state already exists, it returns the existing builder.
func (b *Builder) State(label domain.Label) *StateBuilder {
	if sb, ok := b.states[label]; ok {
		return sb
	}
	sb := &StateBuilder{
		desc:  schema.StateDescription{Label: label},
		index: make(map[string]int),
	}
	b.states[label] = sb
	b.order = append(b.order, label)
	return sb
}

// Goal marks labels as goal states.
func (b *Builder) Goal(labels ...domain.Label) *Builder {
	b.goals = append(b.goals, labels...)
	return b
}

// Description returns the assembled description without validating it.
func (b *Builder) Description() schema.Description {
	desc := schema.Description{Name: b.name, Goals: append([]domain.Label(nil), b.goals...)}
	for _, l := range b.order {
		sb := b.states[l]
		sd := schema.StateDescription{Label: l}
		sd.Actions = append(sd.Actions, sb.desc.Actions...)
		desc.States = append(desc.States, sd)
	}
	return desc
}

// Build validates the description and materializes the model.
func (b *Builder) Build() (*domain.Model, error) {
	m, err := schema.Build(b.Description())
	if err != nil {
		return nil, fmt.Errorf("failed to build %q: %w", b.name, err)
	}
	return m, nil
}

// MustBuild is like Build but panics on error. Intended for tests and fixed constructors.
func (b *Builder) MustBuild() *domain.Model {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

// StateBuilder provides a fluent API for configuring the actions of a state.
type StateBuilder struct {
	desc  schema.StateDescription
	index map[string]int
}

func (s *StateBuilder) set(action string, entry schema.Entry) *StateBuilder {
	if i, ok := s.index[action]; ok {
		s.desc.Actions[i].Entry = entry
		return s
	}
	s.index[action] = len(s.desc.Actions)
	s.desc.Actions = append(s.desc.Actions, schema.ActionDescription{Label: action, Entry: entry})
	return s
}

// Go adds a deterministic action to target.
func (s *StateBuilder) Go(action string, target domain.Label) *StateBuilder {
	return s.set(action, schema.DeterministicTarget{Target: target})
}

// Dist adds a stochastic action with the given weights.
func (s *StateBuilder) Dist(action string, measure domain.Measure) *StateBuilder {
	return s.set(action, schema.Distribution{Measure: measure.Clone()})
}

// Reward attaches a reward to an action already declared on this state.
// Rewarding an undeclared action is a no-op.
func (s *StateBuilder) Reward(action string, reward float64) *StateBuilder {
	i, ok := s.index[action]
	if !ok {
		return s
	}
	measure, _ := s.desc.Actions[i].Entry.Resolve()
	s.desc.Actions[i].Entry = schema.DistributionWithReward{Measure: measure, Reward: reward}
	return s
}
