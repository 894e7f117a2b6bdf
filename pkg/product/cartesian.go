package product

import (
	"github.com/aretw0/ctmdp/pkg/domain"
)

// Cartesian returns the Cartesian product of m1 and m2.
//
// At (s1, s2), every pair of actions (a, b) becomes "a<sep>b" and moves both
// coordinates. The measure overlays the two operands: each target pair
// (t1, t2) gets weight (w1 + w2) / 2. This is an averaged overlay and not the
// independent joint distribution w1 * w2. The reward is a.Reward + b.Reward.
// Pairs whose overlay has no positive weight are dropped.
func Cartesian(m1, m2 *domain.Model, opts ...Option) *domain.Model {
	c := newConfig(opts)
	out := domain.NewModel()

	for _, s1 := range m1.States() {
		for _, s2 := range m2.States() {
			state := out.AddState(domain.Tuple(s1.Label, s2.Label))
			for _, a := range s1.Actions() {
				for _, b := range s2.Actions() {
					measure := Overlay(a.Measure, b.Measure)
					if measure.Validate() != nil {
						continue
					}
					state.SetAction(a.Label+c.separator+b.Label, measure, a.Reward+b.Reward)
				}
			}
		}
	}
	markGoals(out, m1, m2)

	c.metrics.StatesBuilt("cartesian", out.Len())
	c.logger.Debug("cartesian product built", "states", out.Len(), "actions", out.NumActions())
	return out
}

// Overlay pairs every target of m1 with every target of m2 at weight (w1 + w2) / 2.
func Overlay(m1, m2 domain.Measure) domain.Measure {
	out := make(domain.Measure, len(m1)*len(m2))
	for _, t1 := range m1.Labels() {
		for _, t2 := range m2.Labels() {
			out[domain.Tuple(t1, t2)] = (m1[t1] + m2[t2]) / 2
		}
	}
	return out
}
