// Package bisim computes the coarsest bisimulation of a model by partition
// refinement and builds the quotient model.
//
// Refinement starts from states grouped by their set of action labels and
// splits blocks by Signature until a round produces no split. A signature
// lists, per action label, the mass the action sends into each block of the
// current partition. Masses are equal when they differ by at most the
// tolerance (see WithTolerance).
// Rewards are not part of the signature unless WithRewardSensitive is given:
// by default two states that differ only in rewards are bisimilar.
//
// Partitions are canonical: members of a block are sorted, and blocks are
// ordered by their smallest label. The representative of a block is its
// smallest label, so quotients are deterministic.
package bisim
