package bisim

import (
	"github.com/aretw0/ctmdp/pkg/domain"
)

// Refine returns the coarsest bisimulation partition of m.
//
// Each round computes every signature against the partition at the start of
// the round. Blocks only split, so there are at most m.Len()-1 splitting
// rounds.
func Refine(m *domain.Model, opts ...Option) *Partition {
	c := newConfig(opts)

	p := mustPartition(groupBy(m.States(), actionSetKey))
	c.logger.Debug("refinement started", "states", m.Len(), "blocks", p.Len())

	for round := 1; ; round++ {
		var groups [][]domain.Label
		splits := 0
		for _, b := range p.Blocks() {
			if len(b) == 1 {
				groups = append(groups, b)
				continue
			}
			sub := splitBlock(m, b, p, c)
			splits += len(sub) - 1
			groups = append(groups, sub...)
		}

		c.metrics.RefinementRound(splits)
		if splits == 0 {
			c.logger.Debug("refinement converged", "round", round, "blocks", p.Len())
			return p
		}
		p = mustPartition(groups)
		c.logger.Debug("refinement round", "round", round, "splits", splits, "blocks", p.Len())
	}
}

// groupBy groups state labels by key, in first-seen order.
func groupBy(states []*domain.State, key func(*domain.State) string) [][]domain.Label {
	var order []string
	groups := make(map[string][]domain.Label)
	for _, s := range states {
		k := key(s)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], s.Label)
	}
	out := make([][]domain.Label, len(order))
	for i, k := range order {
		out[i] = groups[k]
	}
	return out
}

// splitBlock groups the members of b by signature. Members are visited in
// block order; each joins the first group whose leader signature it is
// within tolerance of, or leads a new group.
func splitBlock(m *domain.Model, b Block, p *Partition, c *config) [][]domain.Label {
	var leaders []Signature
	var groups [][]domain.Label
	for _, l := range b {
		s, _ := m.State(l)
		sig := signatureOf(s, p, c)
		joined := false
		for i, lead := range leaders {
			if lead.Within(sig) {
				groups[i] = append(groups[i], l)
				joined = true
				break
			}
		}
		if !joined {
			leaders = append(leaders, sig)
			groups = append(groups, []domain.Label{l})
		}
	}
	return groups
}

// mustPartition wraps NewPartition for groups derived from a model, which are
// disjoint and non-empty by construction.
func mustPartition(groups [][]domain.Label) *Partition {
	p, err := NewPartition(groups)
	if err != nil {
		panic(err)
	}
	return p
}
