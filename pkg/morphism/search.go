package morphism

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// Result is the best approximate morphism found by Search.
type Result struct {
	Target   *domain.Model
	Index    int // position of Target among the candidates
	Table    MapTable
	Morphism Morphism
	Epsilon  EpsilonFunc
	Error    float64 // worst-case action error, +Inf when no trial mapped every action
}

// Search scores random maps from source into each candidate and returns the
// best one found.
//
// Each trial draws, uniformly at random, a target state for every source state
// and a target action label for every source action label. A trial scores the
// maximum action error over the source; an action whose image does not exist
// scores +Inf. The lowest score wins, ties go to the earlier candidate and
// trial. Search fails only when candidates is empty.
func Search(source *domain.Model, candidates []*domain.Model, metric Metric, opts ...Option) (*Result, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}
	c := newConfig(opts)
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	sourceActions := actionLabels(source)
	var best *Result

	for i, target := range candidates {
		targetStates := target.Labels()
		targetActions := actionLabels(target)
		localBest := math.Inf(1)

		for trial := 0; trial < c.trials; trial++ {
			table, ok := randomTable(c.rng, source, sourceActions, targetStates, targetActions)
			score := math.Inf(1)
			if ok {
				score = table.Morphism(source, target).MaxError(metric)
			}
			c.metrics.SearchTrial()

			if best == nil || score < best.Error {
				mor := table.Morphism(source, target)
				best = &Result{Target: target, Index: i, Table: table, Morphism: mor, Error: score}
			}
			localBest = math.Min(localBest, score)
		}
		c.logger.Debug("search candidate scored", "candidate", i, "trials", c.trials, "best_error", localBest)
	}

	if best == nil {
		// No trials ran: fall back to the first candidate with the identity tables.
		table := Tabulate(source, IdentityState, IdentityAction)
		mor := table.Morphism(source, candidates[0])
		best = &Result{Target: candidates[0], Index: 0, Table: table, Morphism: mor, Error: mor.MaxError(metric)}
	}
	best.Epsilon = best.Morphism.Epsilon(metric)

	c.metrics.SearchBestError(best.Error)
	c.logger.Debug("search finished", "candidate", best.Index, "best_error", best.Error)
	return best, nil
}

// randomTable draws uniform maps. It reports false when the target has no
// states, or no actions while the source has some.
func randomTable(rng *rand.Rand, source *domain.Model, sourceActions []string, targetStates []domain.Label, targetActions []string) (MapTable, bool) {
	t := MapTable{
		States:  make(map[domain.Label]domain.Label, source.Len()),
		Actions: make(map[string]string, len(sourceActions)),
	}
	if len(targetStates) == 0 {
		return t, false
	}
	if len(targetActions) == 0 && len(sourceActions) > 0 {
		return t, false
	}
	for _, l := range source.Labels() {
		t.States[l] = targetStates[rng.IntN(len(targetStates))]
	}
	for _, a := range sourceActions {
		t.Actions[a] = targetActions[rng.IntN(len(targetActions))]
	}
	return t, true
}

// actionLabels returns the distinct action labels of m, sorted.
func actionLabels(m *domain.Model) []string {
	seen := make(map[string]struct{})
	m.Each(func(_ *domain.State, a *domain.Action) {
		seen[a.Label] = struct{}{}
	})
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
