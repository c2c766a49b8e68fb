package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"urban-heatmap/internal/dataset"
)

func TestNewMetricsUsesFreshRegistries(t *testing.T) {
	// two instances must not collide on registration
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}

func TestRecordJoin(t *testing.T) {
	m := NewMetrics()
	m.RecordJoin(dataset.JoinStats{Joined: 42, TableOnly: 3, BoundaryOnly: 5})

	assert.Equal(t, 42.0, testutil.ToFloat64(m.CountriesJoined))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.JoinGaps.WithLabelValues("table")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.JoinGaps.WithLabelValues("boundary")))
}
