package domain

import (
	"fmt"
	"math/rand/v2"
)

// Action is a labeled, rewarded transition measure owned by one state.
type Action struct {
	Label   string
	State   Label
	Measure Measure
	Reward  float64
}

// Transition samples the next state label from the action's measure.
func (a *Action) Transition(rng *rand.Rand) (Label, error) {
	next, err := a.Measure.Sample(rng)
	if err != nil {
		return "", fmt.Errorf("action %s at %s: %w", a.Label, a.State, err)
	}
	return next, nil
}

// Reachable returns the positive-weight targets of the action, sorted.
func (a *Action) Reachable() []Label {
	return a.Measure.Support()
}

func (a *Action) String() string {
	return fmt.Sprintf("<Action %s @%s>", a.Label, a.State)
}

// State holds the actions available at one state label, in insertion order.
type State struct {
	Label   Label
	actions []*Action
	index   map[string]int
}

func newState(label Label) *State {
	return &State{Label: label, index: make(map[string]int)}
}

// Actions returns the actions in insertion order.
func (s *State) Actions() []*Action {
	return s.actions
}

// Action looks up an action by label.
func (s *State) Action(label string) (*Action, bool) {
	i, ok := s.index[label]
	if !ok {
		return nil, false
	}
	return s.actions[i], true
}

// ActionLabels returns the action labels in insertion order.
func (s *State) ActionLabels() []string {
	out := make([]string, len(s.actions))
	for i, a := range s.actions {
		out[i] = a.Label
	}
	return out
}

// SetAction adds or replaces the action labeled label. A replaced action keeps its slot.
func (s *State) SetAction(label string, measure Measure, reward float64) *Action {
	a := &Action{Label: label, State: s.Label, Measure: measure, Reward: reward}
	if i, ok := s.index[label]; ok {
		s.actions[i] = a
		return a
	}
	s.index[label] = len(s.actions)
	s.actions = append(s.actions, a)
	return a
}

func (s *State) String() string {
	return fmt.Sprintf("<State %s>", s.Label)
}

// Model is a finite MDP: insertion-ordered states, each with labeled actions.
type Model struct {
	states []*State
	index  map[Label]int
	goals  map[Label]struct{}
}

// NewModel returns an empty model. Models are normally produced by schema.Build.
func NewModel() *Model {
	return &Model{
		index: make(map[Label]int),
		goals: make(map[Label]struct{}),
	}
}

// AddState returns the state labeled label, creating it if needed.
func (m *Model) AddState(label Label) *State {
	if i, ok := m.index[label]; ok {
		return m.states[i]
	}
	s := newState(label)
	m.index[label] = len(m.states)
	m.states = append(m.states, s)
	return s
}

// MarkGoal designates label as a goal (terminal) state.
func (m *Model) MarkGoal(label Label) error {
	if _, ok := m.index[label]; !ok {
		return fmt.Errorf("goal %s: %w", label, ErrStateNotFound)
	}
	m.goals[label] = struct{}{}
	return nil
}

// States returns the states in insertion order.
func (m *Model) States() []*State {
	return m.states
}

// Labels returns the state labels in insertion order.
func (m *Model) Labels() []Label {
	out := make([]Label, len(m.states))
	for i, s := range m.states {
		out[i] = s.Label
	}
	return out
}

// Len returns the number of states.
func (m *Model) Len() int {
	return len(m.states)
}

// NumActions returns the number of actions over all states.
func (m *Model) NumActions() int {
	n := 0
	for _, s := range m.states {
		n += len(s.actions)
	}
	return n
}

// State looks up a state by label.
func (m *Model) State(label Label) (*State, bool) {
	i, ok := m.index[label]
	if !ok {
		return nil, false
	}
	return m.states[i], true
}

// Action looks up the action labeled action at state.
func (m *Model) Action(state Label, action string) (*Action, error) {
	s, ok := m.State(state)
	if !ok {
		return nil, fmt.Errorf("state %s: %w", state, ErrStateNotFound)
	}
	a, ok := s.Action(action)
	if !ok {
		return nil, fmt.Errorf("action %s at %s: %w", action, state, ErrActionNotFound)
	}
	return a, nil
}

// First returns the first state in insertion order.
func (m *Model) First() (*State, bool) {
	if len(m.states) == 0 {
		return nil, false
	}
	return m.states[0], true
}

// Goals returns the goal labels in state order.
func (m *Model) Goals() []Label {
	out := make([]Label, 0, len(m.goals))
	for _, s := range m.states {
		if _, ok := m.goals[s.Label]; ok {
			out = append(out, s.Label)
		}
	}
	return out
}

// IsGoal reports whether label is a goal state.
func (m *Model) IsGoal(label Label) bool {
	_, ok := m.goals[label]
	return ok
}

// Step takes action at state and returns the sampled next state and the action reward.
// This is the whole surface a tabular trainer needs besides enumeration.
func (m *Model) Step(state Label, action string, rng *rand.Rand) (Label, float64, error) {
	a, err := m.Action(state, action)
	if err != nil {
		return "", 0, err
	}
	next, err := a.Transition(rng)
	if err != nil {
		return "", 0, err
	}
	return next, a.Reward, nil
}

// Each calls fn for every action of every state, in order.
func (m *Model) Each(fn func(s *State, a *Action)) {
	for _, s := range m.states {
		for _, a := range s.actions {
			fn(s, a)
		}
	}
}
