// Package product composes models.
//
// Box advances one operand per step, so the actions of a product state are the
// disjoint union of the operands' actions. Cartesian advances every operand at
// once, so its actions are the cross product of the operands' actions. Both are
// eager: every pair of states is materialized. Product states are labeled
// (s1, s2); a state is a goal when every component is.
//
// Fold generalizes any binary product to n operands by right-folding with an
// explicit accumulator, relabeling after each step so the final state labels
// are flat n-tuples in operand order.
//
// Operators always build a fresh model; inputs are never mutated.
package product
