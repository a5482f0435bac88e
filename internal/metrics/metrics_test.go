package metrics

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"novares-ledger-go/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	c := NewCollector("test")

	c.ObserveOperation("request_transfer", nil)
	c.ObserveOperation("request_transfer", nil)
	c.ObserveOperation("request_transfer", fmt.Errorf("wrapped: %w", models.ErrInsufficientFunds))
	c.ObserveOperation("request_transfer", errors.New("unclassified"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("request_transfer", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("request_transfer", "insufficient_funds")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("request_transfer", "internal")))
}

func TestSetLedgerSize(t *testing.T) {
	c := NewCollector("")

	c.SetLedgerSize(map[models.AccountStatus]int{models.StatusActive: 3, models.StatusPending: 1}, 2)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.accounts.WithLabelValues("active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.accounts.WithLabelValues("pending")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.pending))
}

func TestNilCollector(t *testing.T) {
	var c *Collector

	// Should not panic
	c.ObserveOperation("x", nil)
	c.ObserveSave(time.Millisecond, nil)
	c.SetLedgerSize(nil, 0)
	c.ObserveHTTP("GET", "/healthz", 200, time.Millisecond)
}

func TestHandler(t *testing.T) {
	c := NewCollector("test")
	c.ObserveHTTP("GET", "/healthz", 200, 10*time.Millisecond)
	c.ObserveSave(2*time.Millisecond, nil)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_http_requests_total{method="GET",path="/healthz",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), "test_persistence_save_duration_seconds")
}
