package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kirana-pos/internal/infrastructure/metrics"
)

func TestObserveCommit_CuentaPorResultado(t *testing.T) {
	m := metrics.New()
	m.ObserveCommit("ok", 20*time.Millisecond)
	m.ObserveCommit("ok", 10*time.Millisecond)
	m.ObserveCommit("conflict", time.Millisecond)

	n, err := testutil.GatherAndCount(m.Registry(), "kirana_billing_commits_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por outcome")
}

func TestHandler_ExponeMetricas(t *testing.T) {
	m := metrics.New()
	m.ObserveParse("matched")
	m.ObserveCartOp("add", "ok")
	m.SetActiveCarts(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `kirana_orders_parses_total{result="matched"} 1`)
	assert.Contains(t, string(body), `kirana_cart_operations_total{op="add",outcome="ok"} 1`)
	assert.Contains(t, string(body), "kirana_cart_active_sessions 3")
}
