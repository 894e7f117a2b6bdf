package morphism

import (
	"fmt"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// ActionMap maps a source action label to a target action label.
type ActionMap func(string) string

// IdentityState maps every state label to itself.
func IdentityState(l domain.Label) domain.Label { return l }

// IdentityAction maps every action label to itself.
func IdentityAction(a string) string { return a }

// Morphism is a pair of label maps from Source to Target.
type Morphism struct {
	Source *domain.Model
	Target *domain.Model
	F      domain.RelabelFunc
	G      ActionMap
}

// New returns the morphism (f, g) from source to target.
func New(source, target *domain.Model, f domain.RelabelFunc, g ActionMap) Morphism {
	return Morphism{Source: source, Target: target, F: f, G: g}
}

// Identity returns the identity morphism of m.
func Identity(m *domain.Model) Morphism {
	return New(m, m, IdentityState, IdentityAction)
}

// Pushforward regroups the measure of a by the image of each target under F.
func (m Morphism) Pushforward(a *domain.Action) domain.Measure {
	return a.Measure.Pushforward(m.F)
}

// Image returns the target action of a, if it exists.
func (m Morphism) Image(a *domain.Action) (*domain.Action, error) {
	target, err := m.Target.Action(m.F(a.State), m.G(a.Label))
	if err != nil {
		return nil, fmt.Errorf("image of %s at %s: %w", a.Label, a.State, err)
	}
	return target, nil
}

// ViolationKind classifies why an action breaks the exact check.
type ViolationKind string

const (
	MissingState    ViolationKind = "missing_state"
	MissingAction   ViolationKind = "missing_action"
	RewardMismatch  ViolationKind = "reward_mismatch"
	MeasureMismatch ViolationKind = "measure_mismatch"
)

// Violation is one source action that the morphism does not preserve.
type Violation struct {
	Kind   ViolationKind
	State  domain.Label
	Action string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at %s: %s (%s)", v.Action, v.State, v.Kind, v.Detail)
}

// Violations lists every source action the morphism fails to preserve, in
// source order. An empty result means the morphism is exact.
func (m Morphism) Violations(opts ...Option) []Violation {
	c := newConfig(opts)
	var out []Violation

	m.Source.Each(func(s *domain.State, a *domain.Action) {
		fs, ga := m.F(s.Label), m.G(a.Label)
		ts, ok := m.Target.State(fs)
		if !ok {
			out = append(out, Violation{Kind: MissingState, State: s.Label, Action: a.Label,
				Detail: fmt.Sprintf("no target state %s", fs)})
			return
		}
		ta, ok := ts.Action(ga)
		if !ok {
			out = append(out, Violation{Kind: MissingAction, State: s.Label, Action: a.Label,
				Detail: fmt.Sprintf("no action %s at %s", ga, fs)})
			return
		}
		if a.Reward != ta.Reward {
			out = append(out, Violation{Kind: RewardMismatch, State: s.Label, Action: a.Label,
				Detail: fmt.Sprintf("reward %v, image has %v", a.Reward, ta.Reward)})
			return
		}
		pushed := m.Pushforward(a)
		if !pushed.EqualWithin(ta.Measure, c.tolerance) {
			out = append(out, Violation{Kind: MeasureMismatch, State: s.Label, Action: a.Label,
				Detail: fmt.Sprintf("pushforward %v, image has %v", pushed, ta.Measure)})
		}
	})
	return out
}

// IsValid reports whether the morphism is exact.
func (m Morphism) IsValid(opts ...Option) bool {
	return len(m.Violations(opts...)) == 0
}
