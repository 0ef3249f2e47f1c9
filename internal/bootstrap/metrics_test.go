package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/airquery/internal/logger"
	"github.com/Domenick1991/airquery/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRouter_ExposesSyncMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("airquery_worker", reg)
	m.ObserveSync(3, nil)
	m.ObserveSync(1, errors.New("broker down"))

	w := get(newMetricsRouter(reg), "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "airquery_worker_bookings_synced_total 4")
	assert.Contains(t, w.Body.String(), "airquery_worker_sync_errors_total 1")
}

func TestRunMetrics_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunMetrics(ctx, "127.0.0.1:0", prometheus.NewRegistry(), logger.NewNop()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestRunMetrics_ListenError(t *testing.T) {
	err := RunMetrics(context.Background(), "invalid-address", prometheus.NewRegistry(), logger.NewNop())
	assert.ErrorContains(t, err, "metrics server")
}
