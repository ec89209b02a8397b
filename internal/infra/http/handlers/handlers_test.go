package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type captureProducer struct {
	leads []entity.Lead
	err   error
}

func (p *captureProducer) PublishLead(_ context.Context, lead entity.Lead) error {
	if p.err != nil {
		return p.err
	}
	p.leads = append(p.leads, lead)
	return nil
}

func newTestRouter(t *testing.T, producer entity.LeadProducer, checks map[string]Check) (http.Handler, *LeadHandler) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	leads := NewLeadHandler(producer, logger)
	leads.randomID = func() int { return 4242 }
	t.Cleanup(leads.Close)
	health := NewHealthHandler(checks, func() int { return 3 })
	return NewRouter(leads, health, logger), leads
}

func postLead(router http.Handler, body, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCaptureLeadEnqueues(t *testing.T) {
	producer := &captureProducer{}
	router, _ := newTestRouter(t, producer, nil)

	rec := postLead(router, `{"name":"  Ana  ","email":"ana@example.com"}`, "")

	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp CaptureLeadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 4242, resp.LeadID)

	require.Len(t, producer.leads, 1)
	assert.Equal(t, 4242, producer.leads[0].ID)
	assert.Equal(t, "Ana", producer.leads[0].Name)
	assert.Equal(t, "ana@example.com", producer.leads[0].Email)
}

func TestCaptureLeadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"invalid json", `{"name":`, "Invalid JSON"},
		{"missing name", `{"email":"a@b.c"}`, "Name is required"},
		{"blank name", `{"name":"   "}`, "Name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			producer := &captureProducer{}
			router, _ := newTestRouter(t, producer, nil)

			rec := postLead(router, tt.body, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp CaptureLeadResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			assert.Empty(t, producer.leads)
		})
	}
}

func TestCaptureLeadProducerFailure(t *testing.T) {
	router, _ := newTestRouter(t, &captureProducer{err: errors.New("queue: closed")}, nil)

	rec := postLead(router, `{"name":"Ana"}`, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCaptureLeadRateLimited(t *testing.T) {
	producer := &captureProducer{}
	router, _ := newTestRouter(t, producer, nil)

	for i := 0; i < 10; i++ {
		rec := postLead(router, `{"name":"Ana"}`, "203.0.113.7")
		require.Equal(t, http.StatusAccepted, rec.Code)
	}

	rec := postLead(router, `{"name":"Ana"}`, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = postLead(router, `{"name":"Ana"}`, "198.51.100.1")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Len(t, producer.leads, 11)
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("a"))
}

func TestCaptureLeadRejectsInvalidLead(t *testing.T) {
	producer := &captureProducer{}
	router, leads := newTestRouter(t, producer, nil)
	leads.randomID = func() int { return 0 }

	rec := postLead(router, `{"name":"Ana"}`, "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp CaptureLeadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, usecase.CodeInvalidLead, resp.Code)
	assert.Equal(t, "lead id must be positive", resp.Message)
	assert.Empty(t, producer.leads)
}

func TestRateLimiterStopEndsCleanup(t *testing.T) {
	rl := NewRateLimiter(10, time.Minute)

	rl.Stop()
	rl.Stop()

	select {
	case <-rl.stopped:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine still running after Stop")
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "192.0.2.10", getClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.1, 10.0.0.1")
	assert.Equal(t, "203.0.113.1", getClientIP(req))
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router, _ := newTestRouter(t, &captureProducer{}, map[string]Check{
			"lead_log": func(context.Context) error { return nil },
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, 3, resp.QueueDepth)
		assert.Equal(t, "healthy", resp.Dependencies["lead_log"])
	})

	t.Run("degraded", func(t *testing.T) {
		router, _ := newTestRouter(t, &captureProducer{}, map[string]Check{
			"lead_log": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "unhealthy: connection refused", resp.Dependencies["redis"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, &captureProducer{}, nil)
	postLead(router, `{"name":"Ana"}`, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "leads_enqueued_total")
}
