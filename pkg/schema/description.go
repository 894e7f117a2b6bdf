package schema

import "github.com/aretw0/ctmdp/pkg/domain"

// Entry is the tagged variant of an action description.
// Implementations: DeterministicTarget, Distribution, DistributionWithReward.
type Entry interface {
	// Resolve returns the uniform representation: a fresh measure and a reward.
	Resolve() (domain.Measure, float64)
	isEntry()
}

// DeterministicTarget moves to Target with weight 1 and reward 0.
type DeterministicTarget struct {
	Target domain.Label
}

func (e DeterministicTarget) Resolve() (domain.Measure, float64) {
	return domain.Dirac(e.Target), 0
}

func (DeterministicTarget) isEntry() {}

// Distribution is a weighted measure with reward 0.
type Distribution struct {
	Measure domain.Measure
}

func (e Distribution) Resolve() (domain.Measure, float64) {
	return e.Measure.Clone(), 0
}

func (Distribution) isEntry() {}

// DistributionWithReward is a weighted measure with an explicit reward.
type DistributionWithReward struct {
	Measure domain.Measure
	Reward  float64
}

func (e DistributionWithReward) Resolve() (domain.Measure, float64) {
	return e.Measure.Clone(), e.Reward
}

func (DistributionWithReward) isEntry() {}

// ActionDescription names one action of a state.
type ActionDescription struct {
	Label string
	Entry Entry
}

// StateDescription lists the actions of one state, in order.
type StateDescription struct {
	Label   domain.Label
	Actions []ActionDescription
}

// Description is the declarative form of a model.
type Description struct {
	Name   string
	Goals  []domain.Label
	States []StateDescription
}

// AddState appends a state and returns a pointer for adding actions.
func (d *Description) AddState(label domain.Label) *StateDescription {
	d.States = append(d.States, StateDescription{Label: label})
	return &d.States[len(d.States)-1]
}

// Add appends an action entry to the state.
func (s *StateDescription) Add(action string, entry Entry) *StateDescription {
	s.Actions = append(s.Actions, ActionDescription{Label: action, Entry: entry})
	return s
}

// FromModel exports a model back to a description, choosing the narrowest
// entry shape for each action.
func FromModel(name string, m *domain.Model) Description {
	desc := Description{Name: name, Goals: m.Goals()}
	for _, s := range m.States() {
		sd := StateDescription{Label: s.Label}
		for _, a := range s.Actions() {
			sd.Actions = append(sd.Actions, ActionDescription{Label: a.Label, Entry: entryFor(a)})
		}
		desc.States = append(desc.States, sd)
	}
	return desc
}

func entryFor(a *domain.Action) Entry {
	if a.Reward != 0 {
		return DistributionWithReward{Measure: a.Measure.Clone(), Reward: a.Reward}
	}
	if len(a.Measure) == 1 {
		for target, w := range a.Measure {
			if w == 1 {
				return DeterministicTarget{Target: target}
			}
		}
	}
	return Distribution{Measure: a.Measure.Clone()}
}

// Clone returns a deep copy: measures are not shared with d.
func (d Description) Clone() Description {
	out := Description{Name: d.Name, Goals: append([]domain.Label(nil), d.Goals...)}
	for _, s := range d.States {
		sd := StateDescription{Label: s.Label}
		for _, a := range s.Actions {
			sd.Actions = append(sd.Actions, ActionDescription{Label: a.Label, Entry: cloneEntry(a.Entry)})
		}
		out.States = append(out.States, sd)
	}
	return out
}

func cloneEntry(e Entry) Entry {
	switch v := e.(type) {
	case Distribution:
		return Distribution{Measure: v.Measure.Clone()}
	case DistributionWithReward:
		return DistributionWithReward{Measure: v.Measure.Clone(), Reward: v.Reward}
	}
	return e
}
