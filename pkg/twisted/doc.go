// Package twisted builds the synchronized product of a model with a
// deterministic finite automaton.
//
// States of the twisted model are pairs (base, q). Construction is lazy:
// breadth-first from (initial base state, automaton initial state), only
// reachable pairs are materialized. For each base action and each positive
// weight target t, the automaton reads the symbol labelFn(t); when it has a
// next state q', the twisted action moves to (t, q') with the original
// weight. Rewards are copied.
//
// Two consequences are structural and not errors:
//
//   - An action none of whose targets synchronize is dropped from the twisted
//     state. Twisted.Pruned lists every such action.
//   - Pairs that cannot be reached from the initial pair do not exist in the
//     twisted model, even when both components exist.
//
// A twisted state is a goal when its automaton component is accepting.
package twisted
