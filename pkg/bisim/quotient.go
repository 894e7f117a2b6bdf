package bisim

import (
	"fmt"
	"strconv"

	"github.com/aretw0/ctmdp/pkg/domain"
)

// Quotient is the model over the blocks of a bisimulation partition.
// Quotient state i is labeled domain.Int(i) and stands for Partition.Block(i).
type Quotient struct {
	Model     *domain.Model
	Partition *Partition
	Source    *domain.Model
}

// BuildQuotient refines m and builds its quotient.
//
// Each block takes the actions of its representative. A quotient action sums
// the representative's weights by target block and copies its reward. When a
// block mixes rewards (possible unless WithRewardSensitive is given) the
// quotient carries the representative's reward.
func BuildQuotient(m *domain.Model, opts ...Option) (*Quotient, error) {
	c := newConfig(opts)
	p := Refine(m, opts...)

	q := &Quotient{Model: domain.NewModel(), Partition: p, Source: m}
	for i := range p.Blocks() {
		q.Model.AddState(domain.Int(i))
	}
	for i, b := range p.Blocks() {
		rep, _ := m.State(b.Representative())
		state, _ := q.Model.State(domain.Int(i))
		for _, a := range rep.Actions() {
			measure := make(domain.Measure, len(a.Measure))
			for _, t := range a.Measure.Labels() {
				j, ok := p.BlockOf(t)
				if !ok {
					return nil, fmt.Errorf("action %s at %s targets %s: %w", a.Label, rep.Label, t, domain.ErrUnresolvedTarget)
				}
				measure[domain.Int(j)] += a.Measure[t]
			}
			state.SetAction(a.Label, measure, a.Reward)
		}
		if m.IsGoal(rep.Label) {
			_ = q.Model.MarkGoal(domain.Int(i))
		}
	}

	c.metrics.StatesBuilt("quotient", q.Model.Len())
	c.logger.Debug("quotient built", "states", m.Len(), "blocks", p.Len())
	return q, nil
}

// Block returns the source states merged into quotient state l.
func (q *Quotient) Block(l domain.Label) (Block, bool) {
	i, err := strconv.Atoi(string(l))
	if err != nil || i < 0 || i >= q.Partition.Len() {
		return nil, false
	}
	return q.Partition.Block(i), true
}

// Projection maps each source state to its quotient state. Labels outside the
// source map to themselves.
func (q *Quotient) Projection() domain.RelabelFunc {
	return func(l domain.Label) domain.Label {
		if i, ok := q.Partition.BlockOf(l); ok {
			return domain.Int(i)
		}
		return l
	}
}
