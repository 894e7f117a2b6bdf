package morphism

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// RewardDistance compares two rewards.
type RewardDistance func(r1, r2 float64) float64

// MeasureDistance compares two measures.
type MeasureDistance func(p, q domain.Measure) float64

// Metric scores how far an action is from its image.
type Metric struct {
	Reward       RewardDistance
	Distribution MeasureDistance
}

// DefaultMetric is AbsoluteDifference on rewards and L1 on raw weights.
// It is zero exactly when the exact check passes with zero tolerance.
func DefaultMetric() Metric {
	return Metric{Reward: AbsoluteDifference, Distribution: L1}
}

// EpsilonFunc bounds the admissible error of each source action.
type EpsilonFunc func(state domain.Label, action string) float64

// ConstantEpsilon admits the same error for every action.
func ConstantEpsilon(eps float64) EpsilonFunc {
	return func(domain.Label, string) float64 { return eps }
}

// AbsoluteDifference is |r1 - r2|.
func AbsoluteDifference(r1, r2 float64) float64 {
	return math.Abs(r1 - r2)
}

// L1 is the sum of absolute weight differences over the union of targets.
func L1(p, q domain.Measure) float64 {
	labels := union(p, q)
	vp := make([]float64, len(labels))
	vq := make([]float64, len(labels))
	for i, l := range labels {
		vp[i], vq[i] = p[l], q[l]
	}
	return floats.Distance(vp, vq, 1)
}

// TotalVariation is half the L1 distance between the normalized measures.
func TotalVariation(p, q domain.Measure) float64 {
	return L1(p.Normalize(), q.Normalize()) / 2
}

func union(p, q domain.Measure) []domain.Label {
	all := p.Clone()
	for l := range q {
		all[l] += 0
	}
	return all.Labels()
}

// Error scores source action a under metric. Actions without an image score
// +Inf.
func (m Morphism) Error(metric Metric, a *domain.Action) float64 {
	img, err := m.Image(a)
	if err != nil {
		return math.Inf(1)
	}
	return metric.Reward(a.Reward, img.Reward) + metric.Distribution(m.Pushforward(a), img.Measure)
}

// MaxError is the worst Error over every source action, 0 for a model without actions.
func (m Morphism) MaxError(metric Metric) float64 {
	worst := 0.0
	m.Source.Each(func(_ *domain.State, a *domain.Action) {
		worst = math.Max(worst, m.Error(metric, a))
	})
	return worst
}

// Epsilon returns the per-action errors of m as an EpsilonFunc.
func (m Morphism) Epsilon(metric Metric) EpsilonFunc {
	return func(state domain.Label, action string) float64 {
		a, err := m.Source.Action(state, action)
		if err != nil {
			return math.Inf(1)
		}
		return m.Error(metric, a)
	}
}

// IsCompatible reports whether every source action scores within eps.
func (m Morphism) IsCompatible(metric Metric, eps EpsilonFunc) bool {
	ok := true
	m.Source.Each(func(s *domain.State, a *domain.Action) {
		if ok && m.Error(metric, a) > eps(s.Label, a.Label) {
			ok = false
		}
	})
	return ok
}
