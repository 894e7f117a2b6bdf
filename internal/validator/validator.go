package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// Report lists the structural problems found in a model.
type Report struct {
	// Unreachable states cannot be reached from the start state
	// through positive-weight transitions.
	Unreachable []domain.Label
	// Deadlocks are non-goal states without actions.
	Deadlocks []domain.Label
}

// OK reports whether nothing was found.
func (r Report) OK() bool {
	return len(r.Unreachable) == 0 && len(r.Deadlocks) == 0
}

// Check crawls m from start and collects unreachable and deadlocked states,
// both in state order.
func Check(m *domain.Model, start domain.Label) (Report, error) {
	if _, ok := m.State(start); !ok {
		return Report{}, fmt.Errorf("start state %s: %w", start, domain.ErrStateNotFound)
	}

	visited := map[domain.Label]bool{start: true}
	queue := []domain.Label{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		s, _ := m.State(current)
		for _, a := range s.Actions() {
			for _, target := range a.Reachable() {
				if !visited[target] {
					visited[target] = true
					queue = append(queue, target)
				}
			}
		}
	}

	var report Report
	for _, s := range m.States() {
		if !visited[s.Label] {
			report.Unreachable = append(report.Unreachable, s.Label)
		}
		if len(s.Actions()) == 0 && !m.IsGoal(s.Label) {
			report.Deadlocks = append(report.Deadlocks, s.Label)
		}
	}
	return report, nil
}

// ValidateModel returns an error describing every problem Check finds.
func ValidateModel(m *domain.Model, start domain.Label) error {
	report, err := Check(m, start)
	if err != nil {
		return err
	}
	if report.OK() {
		return nil
	}

	var errs []string
	for _, l := range report.Unreachable {
		errs = append(errs, fmt.Sprintf("Unreachable state: '%s'", l))
	}
	for _, l := range report.Deadlocks {
		errs = append(errs, fmt.Sprintf("Non-goal state without actions: '%s'", l))
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
}
