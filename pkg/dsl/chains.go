package dsl

import (
	"fmt"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// Path returns the chain 0 .. n-1 with "prev" and "next" actions.
// The first state has no "prev", the last has no "next" and is the goal.
func Path(n int) *domain.Model {
	b := New(fmt.Sprintf("path%d", n))
	for i := 0; i < n; i++ {
		s := b.State(domain.Int(i))
		if i > 0 {
			s.Go("prev", domain.Int(i-1))
		}
		if i < n-1 {
			s.Go("next", domain.Int(i+1))
		}
	}
	if n > 0 {
		b.Goal(domain.Int(n - 1))
	}
	return b.MustBuild()
}

// Cycle returns the ring 0 .. n-1 where "prev" and "next" wrap around.
// It has no goal.
func Cycle(n int) *domain.Model {
	b := New(fmt.Sprintf("cycle%d", n))
	for i := 0; i < n; i++ {
		b.State(domain.Int(i)).
			Go("prev", domain.Int((i-1+n)%n)).
			Go("next", domain.Int((i+1)%n))
	}
	return b.MustBuild()
}

// PathOptimalPolicy returns the policy on Path(n) that always moves forward.
func PathOptimalPolicy(n int) (*domain.Policy, error) {
	m := Path(n)
	weights := make(map[domain.Label]map[string]float64, n)
	for _, s := range m.States() {
		row := make(map[string]float64)
		for _, a := range s.ActionLabels() {
			row[a] = 0
		}
		row["next"] = 1
		if _, ok := s.Action("next"); !ok {
			continue
		}
		weights[s.Label] = row
	}
	return domain.NewPolicy(m, weights)
}
