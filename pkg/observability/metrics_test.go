package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.StatesBuilt("box", 9)
	m.StatesBuilt("box", 4)
	m.StatesBuilt("twisted", 3)
	m.RefinementRound(2)
	m.RefinementRound(0)
	m.SearchTrial()
	m.SearchBestError(0.25)

	assert.Equal(t, 13.0, testutil.ToFloat64(m.statesBuilt.WithLabelValues("box")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.statesBuilt.WithLabelValues("twisted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.refinementRounds))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.blockSplits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searchTrials))
	assert.Equal(t, 0.25, testutil.ToFloat64(m.searchBestError))

	n, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.StatesBuilt("box", 1)
		m.RefinementRound(1)
		m.SearchTrial()
		m.SearchBestError(1)
	})
}
