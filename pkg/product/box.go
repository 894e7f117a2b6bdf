package product

import (
	"github.com/aretw0/ctmdp/pkg/domain"
)

// Box returns the box product of m1 and m2.
//
// At (s1, s2), every action a of s1 becomes "a-<left>" and moves only the
// first coordinate; every action b of s2 becomes "b-<right>" and moves only the
// second. Rewards are copied. When suffixes are empty and labels collide, the
// action coming from m2 wins.
func Box(m1, m2 *domain.Model, opts ...Option) *domain.Model {
	c := newConfig(opts)
	out := domain.NewModel()

	for _, s1 := range m1.States() {
		for _, s2 := range m2.States() {
			state := out.AddState(domain.Tuple(s1.Label, s2.Label))
			for _, a := range s1.Actions() {
				measure := make(domain.Measure, len(a.Measure))
				for _, t := range a.Measure.Labels() {
					measure[domain.Tuple(t, s2.Label)] += a.Measure[t]
				}
				state.SetAction(suffixed(a.Label, c.left), measure, a.Reward)
			}
			for _, b := range s2.Actions() {
				measure := make(domain.Measure, len(b.Measure))
				for _, t := range b.Measure.Labels() {
					measure[domain.Tuple(s1.Label, t)] += b.Measure[t]
				}
				state.SetAction(suffixed(b.Label, c.right), measure, b.Reward)
			}
		}
	}
	markGoals(out, m1, m2)

	c.metrics.StatesBuilt("box", out.Len())
	c.logger.Debug("box product built", "states", out.Len(), "actions", out.NumActions())
	return out
}

func suffixed(label, suffix string) string {
	if suffix == "" {
		return label
	}
	return label + "-" + suffix
}

// markGoals marks (s1, s2) as a goal when both components are goals.
func markGoals(out, m1, m2 *domain.Model) {
	for _, g1 := range m1.Goals() {
		for _, g2 := range m2.Goals() {
			_ = out.MarkGoal(domain.Tuple(g1, g2))
		}
	}
}
