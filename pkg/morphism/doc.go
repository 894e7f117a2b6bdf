// Package morphism checks structure-preserving maps between models.
//
// A Morphism pairs a state map F and an action map G from a source model to a
// target model. It is exact when, for every source action a at s, the target
// state F(s) has an action G(a) with the same reward and the pushforward of
// a's measure under F equals that action's measure within a tolerance.
// A failed check is a verdict, not an error: IsValid returns false and
// Violations explains why.
//
// The metric variant scores each action with
// Metric.Reward(r1, r2) + Metric.Distribution(pushforward(T1), T2) and accepts
// when every score is within a per-action epsilon.
//
// Search looks for a good approximate morphism into one of several candidate
// models by scoring random maps. It always returns its best finding; callers
// that need a quality bound inspect Result.Error.
package morphism
