package domain

import "errors"

// ErrUnresolvedTarget is returned when a measure references a state label the model does not define.
var ErrUnresolvedTarget = errors.New("unresolved target label")

// ErrEmptyMeasure is returned when a measure has no positive weight.
var ErrEmptyMeasure = errors.New("measure has no positive weight")

// ErrNegativeWeight is returned when a measure carries a negative weight.
var ErrNegativeWeight = errors.New("negative weight")

// ErrStateNotFound is returned when a state label is not part of a model.
var ErrStateNotFound = errors.New("state not found")

// ErrActionNotFound is returned when an action label is not defined at a state.
var ErrActionNotFound = errors.New("action not found")

// ErrGoalState is returned when a goal state is used where a non-goal state is required.
var ErrGoalState = errors.New("goal state")

// ErrModelNotFound is returned when a model name cannot be found in a store.
var ErrModelNotFound = errors.New("model not found")

// ErrNoOperands is returned when a product is requested over zero models.
var ErrNoOperands = errors.New("no operands")

// ErrEmptyModel is returned when an operation needs at least one state.
var ErrEmptyModel = errors.New("model has no states")

// ErrUnknownAutomatonState is returned when an automaton references a state it does not declare.
var ErrUnknownAutomatonState = errors.New("unknown automaton state")

// ErrNoCandidates is returned when a morphism search is given no target models.
var ErrNoCandidates = errors.New("no candidate models")
