package domain

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Measure maps target labels to non-negative weights.
// Weights are proportional: they need not sum to 1.
type Measure map[Label]float64

// Dirac returns the measure putting weight 1 on target.
func Dirac(target Label) Measure {
	return Measure{target: 1}
}

// Labels returns every target label, including zero-weight ones, sorted.
func (m Measure) Labels() []Label {
	out := make([]Label, 0, len(m))
	for l := range m {
		out = append(out, l)
	}
	SortLabels(out)
	return out
}

// Support returns the targets with positive weight, sorted.
func (m Measure) Support() []Label {
	out := make([]Label, 0, len(m))
	for l, w := range m {
		if w > 0 {
			out = append(out, l)
		}
	}
	SortLabels(out)
	return out
}

// weights returns the weights of labels, in the given order.
func (m Measure) weights(labels []Label) []float64 {
	ws := make([]float64, len(labels))
	for i, l := range labels {
		ws[i] = m[l]
	}
	return ws
}

// Total returns the sum of all weights.
func (m Measure) Total() float64 {
	return floats.Sum(m.weights(m.Labels()))
}

// Clone returns an independent copy.
func (m Measure) Clone() Measure {
	out := make(Measure, len(m))
	for l, w := range m {
		out[l] = w
	}
	return out
}

// Normalize returns a copy scaled to sum to 1.
// A measure with zero total is returned as an unscaled copy.
func (m Measure) Normalize() Measure {
	labels := m.Labels()
	ws := m.weights(labels)
	total := floats.Sum(ws)
	if total <= 0 {
		return m.Clone()
	}
	floats.Scale(1/total, ws)
	out := make(Measure, len(labels))
	for i, l := range labels {
		out[l] = ws[i]
	}
	return out
}

// Pushforward regroups the weights by the image of each target under f.
func (m Measure) Pushforward(f RelabelFunc) Measure {
	out := make(Measure, len(m))
	for _, l := range m.Labels() {
		out[f(l)] += m[l]
	}
	return out
}

// EqualWithin reports whether both measures agree within tol on the union
// of their targets. Missing targets count as zero.
func (m Measure) EqualWithin(other Measure, tol float64) bool {
	for l, w := range m {
		if math.Abs(w-other[l]) >= tol {
			return false
		}
	}
	for l, w := range other {
		if _, ok := m[l]; !ok && math.Abs(w) >= tol {
			return false
		}
	}
	return true
}

// Validate checks the measure invariant: no negative weight and at least one positive one.
func (m Measure) Validate() error {
	positive := false
	for _, l := range m.Labels() {
		w := m[l]
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("target %s weight %v: %w", l, w, ErrNegativeWeight)
		}
		if w > 0 {
			positive = true
		}
	}
	if !positive {
		return ErrEmptyMeasure
	}
	return nil
}

// Sample draws a target proportionally to its weight.
// Only positive-weight targets can be drawn.
func (m Measure) Sample(rng *rand.Rand) (Label, error) {
	support := m.Support()
	if len(support) == 0 {
		return "", ErrEmptyMeasure
	}
	if len(support) == 1 {
		return support[0], nil
	}
	cat := distuv.NewCategorical(m.weights(support), rng)
	return support[int(cat.Rand())], nil
}

// SortLabels sorts labels by their canonical text form.
func SortLabels(labels []Label) {
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
}
