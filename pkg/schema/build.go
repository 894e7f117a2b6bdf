package schema

import (
	"fmt"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// Validate checks a description without building it. Every problem found is
// reported in one AggregateError.
func Validate(desc Description) error {
	var errs []error

	known := make(map[domain.Label]struct{}, len(desc.States))
	for i, s := range desc.States {
		if _, dup := known[s.Label]; dup {
			errs = append(errs, &ValidationError{
				Key:    fmt.Sprintf("states[%d]", i),
				Reason: "duplicate state label",
				Value:  s.Label,
			})
		}
		known[s.Label] = struct{}{}
	}

	for _, s := range desc.States {
		seen := make(map[string]struct{}, len(s.Actions))
		for _, a := range s.Actions {
			key := fmt.Sprintf("states[%s].actions[%s]", s.Label, a.Label)
			if _, dup := seen[a.Label]; dup {
				errs = append(errs, &ValidationError{Key: key, Reason: "duplicate action label"})
			}
			seen[a.Label] = struct{}{}

			if a.Entry == nil {
				errs = append(errs, &ValidationError{Key: key, Reason: "missing entry", Err: domain.ErrEmptyMeasure})
				continue
			}
			measure, _ := a.Entry.Resolve()
			if err := measure.Validate(); err != nil {
				errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Err: err})
			}
			for _, target := range measure.Labels() {
				if _, ok := known[target]; !ok {
					errs = append(errs, &ValidationError{
						Key:    key,
						Reason: domain.ErrUnresolvedTarget.Error(),
						Value:  target,
						Err:    domain.ErrUnresolvedTarget,
					})
				}
			}
		}
	}

	for i, g := range desc.Goals {
		if _, ok := known[g]; !ok {
			errs = append(errs, &ValidationError{
				Key:    fmt.Sprintf("goals[%d]", i),
				Reason: "goal is not a state",
				Value:  g,
				Err:    domain.ErrStateNotFound,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Build validates desc and materializes a model.
// Each entry is resolved exactly once into a measure and a reward.
func Build(desc Description) (*domain.Model, error) {
	if err := Validate(desc); err != nil {
		return nil, err
	}

	m := domain.NewModel()
	for _, s := range desc.States {
		m.AddState(s.Label)
	}
	for _, s := range desc.States {
		state, _ := m.State(s.Label)
		for _, a := range s.Actions {
			measure, reward := a.Entry.Resolve()
			state.SetAction(a.Label, measure, reward)
		}
	}
	for _, g := range desc.Goals {
		if err := m.MarkGoal(g); err != nil {
			return nil, err
		}
	}
	return m, nil
}
