package infra

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"locking-gateway/middleware/locking/domain"
)

func TestPromStatsStore_RecordCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, err := NewPromStatsStore(reg)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Record(ctx, domain.AcquireEvent{Lock: "proxy", Granted: true, Waited: 5 * time.Millisecond}))
	require.NoError(t, s.Record(ctx, domain.AcquireEvent{Lock: "proxy", Granted: false, Waited: 50 * time.Millisecond}))
	require.NoError(t, s.Record(ctx, domain.AcquireEvent{Lock: "proxy", Granted: false, Waited: 50 * time.Millisecond}))

	require.Equal(t, float64(1), testutil.ToFloat64(s.granted.WithLabelValues("proxy")))
	require.Equal(t, float64(2), testutil.ToFloat64(s.denied.WithLabelValues("proxy")))
}

func TestPromStatsStore_DoubleRegisterFails(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewPromStatsStore(reg)
	require.NoError(t, err)

	_, err = NewPromStatsStore(reg)
	require.Error(t, err)
}
