package domain

import (
	"fmt"
	"sort"
)

// AutomatonOption configures an Automaton.
type AutomatonOption func(*Automaton)

// WithAccepting marks states as accepting.
func WithAccepting(states ...string) AutomatonOption {
	return func(a *Automaton) {
		for _, q := range states {
			a.accepting[q] = struct{}{}
		}
	}
}

// WithSink routes every undefined transition to sink, making the automaton total.
func WithSink(sink string) AutomatonOption {
	return func(a *Automaton) {
		a.sink = sink
		a.hasSink = true
	}
}

// On adds the transition from --symbol--> to.
func On(from, symbol, to string) AutomatonOption {
	return func(a *Automaton) {
		a.transitions[transitionKey{from, symbol}] = to
	}
}

type transitionKey struct {
	state  string
	symbol string
}

// Automaton is a deterministic finite automaton with a possibly partial
// transition function. Supplying a sink makes it total.
type Automaton struct {
	states      []string
	alphabet    map[string]struct{}
	transitions map[transitionKey]string
	initial     string
	accepting   map[string]struct{}
	sink        string
	hasSink     bool
}

// NewAutomaton builds an automaton and validates that every referenced state is declared.
func NewAutomaton(states, alphabet []string, initial string, opts ...AutomatonOption) (*Automaton, error) {
	a := &Automaton{
		states:      append([]string(nil), states...),
		alphabet:    make(map[string]struct{}, len(alphabet)),
		transitions: make(map[transitionKey]string),
		initial:     initial,
		accepting:   make(map[string]struct{}),
	}
	for _, s := range alphabet {
		a.alphabet[s] = struct{}{}
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks that initial, accepting, sink and transition endpoints are declared states.
func (a *Automaton) Validate() error {
	known := make(map[string]struct{}, len(a.states))
	for _, q := range a.states {
		known[q] = struct{}{}
	}
	check := func(role, q string) error {
		if _, ok := known[q]; !ok {
			return fmt.Errorf("%s %q: %w", role, q, ErrUnknownAutomatonState)
		}
		return nil
	}
	if err := check("initial", a.initial); err != nil {
		return err
	}
	if a.hasSink {
		if err := check("sink", a.sink); err != nil {
			return err
		}
	}
	for q := range a.accepting {
		if err := check("accepting", q); err != nil {
			return err
		}
	}
	for k, to := range a.transitions {
		if err := check("transition source", k.state); err != nil {
			return err
		}
		if err := check("transition target", to); err != nil {
			return err
		}
		if _, ok := a.alphabet[k.symbol]; !ok {
			return fmt.Errorf("transition %s --%s-->: symbol not in alphabet", k.state, k.symbol)
		}
	}
	return nil
}

// Delta returns the successor of q on sigma. Undefined transitions go to the
// sink when one is set; otherwise ok is false.
func (a *Automaton) Delta(q, sigma string) (string, bool) {
	if to, ok := a.transitions[transitionKey{q, sigma}]; ok {
		return to, true
	}
	if a.hasSink {
		return a.sink, true
	}
	return "", false
}

// Initial returns the initial state.
func (a *Automaton) Initial() string { return a.initial }

// States returns the declared states in order.
func (a *Automaton) States() []string { return a.states }

// Alphabet returns the symbols, sorted.
func (a *Automaton) Alphabet() []string {
	out := make([]string, 0, len(a.alphabet))
	for s := range a.alphabet {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// IsAccepting reports whether q is accepting.
func (a *Automaton) IsAccepting(q string) bool {
	_, ok := a.accepting[q]
	return ok
}

// Sink returns the sink state, if any.
func (a *Automaton) Sink() (string, bool) { return a.sink, a.hasSink }
