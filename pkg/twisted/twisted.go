package twisted

import (
	"fmt"

	"github.com/aretw0/ctmdp/internal/logging"
	"github.com/aretw0/ctmdp/pkg/domain"
	"github.com/aretw0/ctmdp/pkg/morphism"
)

// LabelingFunc assigns an automaton symbol to a base state label.
type LabelingFunc func(domain.Label) string

// PrunedAction identifies a base action dropped from a twisted state because
// none of its targets synchronized with the automaton.
type PrunedAction struct {
	State  domain.Label
	Action string
}

type pair struct {
	base domain.Label
	q    string
}

// Twisted is the result of Build.
type Twisted struct {
	Model     *domain.Model
	Base      *domain.Model
	Automaton *domain.Automaton
	Initial   domain.Label
	Pruned    []PrunedAction

	pairs map[domain.Label]pair
}

// Label returns the twisted state label of (base, q).
func Label(base domain.Label, q string) domain.Label {
	return domain.Tuple(base, domain.Atom(q))
}

// Build explores the synchronized product of base and aut.
func Build(base *domain.Model, aut *domain.Automaton, labelFn LabelingFunc, opts ...Option) (*Twisted, error) {
	c := &config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	start := c.initial
	if !c.hasInitial {
		first, ok := base.First()
		if !ok {
			return nil, domain.ErrEmptyModel
		}
		start = first.Label
	}
	if _, ok := base.State(start); !ok {
		return nil, fmt.Errorf("initial state %s: %w", start, domain.ErrStateNotFound)
	}

	t := &Twisted{
		Model:     domain.NewModel(),
		Base:      base,
		Automaton: aut,
		Initial:   Label(start, aut.Initial()),
		pairs:     make(map[domain.Label]pair),
	}

	queue := []pair{}
	visit := func(p pair) domain.Label {
		l := Label(p.base, p.q)
		if _, seen := t.pairs[l]; !seen {
			t.pairs[l] = p
			t.Model.AddState(l)
			queue = append(queue, p)
		}
		return l
	}
	visit(pair{base: start, q: aut.Initial()})

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		baseState, _ := base.State(cur.base)
		state, _ := t.Model.State(Label(cur.base, cur.q))

		for _, a := range baseState.Actions() {
			measure := make(domain.Measure)
			for _, target := range a.Reachable() {
				if _, ok := base.State(target); !ok {
					return nil, fmt.Errorf("action %s at %s targets %s: %w", a.Label, cur.base, target, domain.ErrUnresolvedTarget)
				}
				next, ok := aut.Delta(cur.q, labelFn(target))
				if !ok {
					continue
				}
				measure[visit(pair{base: target, q: next})] += a.Measure[target]
			}
			if len(measure) == 0 {
				t.Pruned = append(t.Pruned, PrunedAction{State: state.Label, Action: a.Label})
				continue
			}
			state.SetAction(a.Label, measure, a.Reward)
		}
	}

	for _, l := range t.Model.Labels() {
		if aut.IsAccepting(t.pairs[l].q) {
			_ = t.Model.MarkGoal(l)
		}
	}

	c.metrics.StatesBuilt("twisted", t.Model.Len())
	c.logger.Debug("twisted product built",
		"states", t.Model.Len(),
		"base_states", base.Len(),
		"pruned", len(t.Pruned),
	)
	return t, nil
}

// Components splits a twisted state label into its base label and automaton state.
func (t *Twisted) Components(l domain.Label) (domain.Label, string, bool) {
	p, ok := t.pairs[l]
	return p.base, p.q, ok
}

// Counit projects a twisted state onto its base state.
func (t *Twisted) Counit(l domain.Label) (*domain.State, bool) {
	p, ok := t.pairs[l]
	if !ok {
		return nil, false
	}
	return t.Base.State(p.base)
}

// Projection returns the counit as a state map, for morphism checks against the base.
// Labels that are not twisted states map to themselves.
func (t *Twisted) Projection() domain.RelabelFunc {
	return func(l domain.Label) domain.Label {
		if p, ok := t.pairs[l]; ok {
			return p.base
		}
		return l
	}
}

// IsAccepting reports whether the automaton component of l is accepting.
func (t *Twisted) IsAccepting(l domain.Label) bool {
	p, ok := t.pairs[l]
	return ok && t.Automaton.IsAccepting(p.q)
}

// CoextendMorphism lifts base maps to twisted labels: (b, q) goes to (f(b), q),
// and actions map through g unchanged.
func (t *Twisted) CoextendMorphism(f domain.RelabelFunc, g morphism.ActionMap) (domain.RelabelFunc, morphism.ActionMap) {
	return func(l domain.Label) domain.Label {
		p, ok := t.pairs[l]
		if !ok {
			return l
		}
		return Label(f(p.base), p.q)
	}, g
}
