package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { MustRegister(reg) })

	SyncAttemptsTotal.WithLabelValues("inventory", ResultSuccess).Inc()
	SyncRecordsCached.WithLabelValues("inventory").Set(3)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "sync_attempts_total")
	assert.Contains(t, names, "sync_records_cached")
	assert.Equal(t, float64(3), testutil.ToFloat64(SyncRecordsCached.WithLabelValues("inventory")))

	// a second registration on the same registry is a programming error
	assert.Panics(t, func() { MustRegister(reg) })
}
