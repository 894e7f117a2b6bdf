package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the collectors recorded by the operators.
type Metrics struct {
	statesBuilt      *prometheus.CounterVec
	refinementRounds prometheus.Counter
	blockSplits      prometheus.Counter
	searchTrials     prometheus.Counter
	searchBestError  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		statesBuilt: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctmdp_states_built_total",
				Help: "Total number of states materialized by an operator",
			},
			[]string{"operator"},
		),
		refinementRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctmdp_refinement_rounds_total",
			Help: "Total number of partition refinement rounds",
		}),
		blockSplits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctmdp_block_splits_total",
			Help: "Total number of new blocks created by refinement",
		}),
		searchTrials: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ctmdp_search_trials_total",
			Help: "Total number of random morphism trials scored",
		}),
		searchBestError: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ctmdp_search_best_error",
			Help: "Worst-case action error of the best morphism found by the last search",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.statesBuilt, m.refinementRounds, m.blockSplits, m.searchTrials, m.searchBestError)
	}
	return m
}

// StatesBuilt records n states produced by operator.
func (m *Metrics) StatesBuilt(operator string, n int) {
	if m == nil {
		return
	}
	m.statesBuilt.WithLabelValues(operator).Add(float64(n))
}

// RefinementRound records one refinement round that created splits new blocks.
func (m *Metrics) RefinementRound(splits int) {
	if m == nil {
		return
	}
	m.refinementRounds.Inc()
	m.blockSplits.Add(float64(splits))
}

// SearchTrial records one scored trial.
func (m *Metrics) SearchTrial() {
	if m == nil {
		return
	}
	m.searchTrials.Inc()
}

// SearchBestError records the outcome of a search.
func (m *Metrics) SearchBestError(err float64) {
	if m == nil {
		return
	}
	m.searchBestError.Set(err)
}
