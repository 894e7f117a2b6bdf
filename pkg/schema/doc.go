// Package schema defines the declarative description of a model and the build
// step that turns it into a domain.Model.
//
// A description maps each state label to its actions, and each action to one
// of three entry shapes:
//
//	next: 1                          # DeterministicTarget (weight 1, reward 0)
//	stay: {0: 0.5, 1: 0.5}           # Distribution (reward 0)
//	jump: [{2: 1}, -1]               # DistributionWithReward
//	hop:  {measure: {2: 1}, reward: 3}
//
// The shape is resolved once, when the description is decoded or assembled,
// never by inspecting values later. Build validates eagerly: a target label
// that names no state fails with domain.ErrUnresolvedTarget, together with
// every other problem found, in a single AggregateError.
//
// Descriptions are read and written as YAML; JSON input is accepted as well,
// being a subset of YAML:
//
//	name: chain
//	goals: [2]
//	states:
//	  0: {next: 1}
//	  1: {prev: 0, next: 2}
//	  2: {prev: 0}
//
// Composite state labels are written in their text form, e.g. "(0, 1)".
package schema
