/*
Package domain contains the core types of the transition-system algebra.

It defines finite probabilistic labeled transition systems (MDPs) and the values
the operators in the other packages exchange. This package is kept pure and free
of I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Label: Opaque, comparable state identifier (atom or flat tuple).
  - Measure: Unnormalized weights over target labels.
  - Action: A measure plus a scalar reward, owned by exactly one State.
  - Model: Insertion-ordered collection of States, optionally with goal states.
  - Policy: Weighted action choice per non-goal state.
  - Automaton: Deterministic finite automaton used by the twisted product.

Models are built once (see package schema) and are otherwise only changed by
the explicit bulk passes: SetRewards, AddRewards and the Relabel* methods.
None of the types here are safe for concurrent mutation.
*/
package domain
