package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyEndpoint(t *testing.T) {
	t.Run("NotReadyByDefault", func(t *testing.T) {
		h := New()

		rec := httptest.NewRecorder()
		h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "not ready")
	})

	t.Run("ReadyAfterSetReady", func(t *testing.T) {
		h := New()
		h.SetReady(true)

		rec := httptest.NewRecorder()
		h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("DrainOnShutdown", func(t *testing.T) {
		h := New()
		h.SetReady(true)
		require.True(t, h.IsReady())

		h.SetReady(false)
		assert.False(t, h.IsReady())

		rec := httptest.NewRecorder()
		h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestLiveEndpoint(t *testing.T) {
	t.Run("HealthyWithoutChecks", func(t *testing.T) {
		h := New()

		rec := httptest.NewRecorder()
		h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("UnhealthyAfterFailureThreshold", func(t *testing.T) {
		h := New()
		h.AddLivenessCheck("always-fails", time.Second, func(context.Context) error {
			return errors.New("disk on fire")
		})

		// Drive the check directly past its failure threshold.
		c := h.livenessChecks[0]
		for i := 0; i < 3; i++ {
			c.run(context.Background())
		}

		rec := httptest.NewRecorder()
		h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "disk on fire")
	})

	t.Run("SingleFailureDoesNotFlap", func(t *testing.T) {
		h := New()
		calls := 0
		h.AddLivenessCheck("flaky", time.Second, func(context.Context) error {
			calls++
			if calls == 1 {
				return errors.New("transient")
			}
			return nil
		})

		c := h.livenessChecks[0]
		c.run(context.Background())

		rec := httptest.NewRecorder()
		h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		assert.Equal(t, http.StatusOK, rec.Code, "one failure stays below the threshold")
	})
}

func TestReadinessChecksGateIsReady(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("dep", time.Second, func(context.Context) error {
		return errors.New("dependency down")
	})

	c := h.readinessChecks[0]
	for i := 0; i < 3; i++ {
		c.run(context.Background())
	}

	assert.False(t, h.IsReady())
}

func TestStartStop(t *testing.T) {
	h := New()
	done := make(chan struct{}, 8)
	h.AddLivenessCheck("probe", time.Second, func(context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.Start(ctx, 10*time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("check never ran")
	}

	h.Stop()
	h.Stop() // repeated Stop is safe
}

func TestGoroutineCountCheck(t *testing.T) {
	require.NoError(t, GoroutineCountCheck(1_000_000)(context.Background()))

	err := GoroutineCountCheck(0)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds threshold")
}
