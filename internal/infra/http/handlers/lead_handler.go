package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/metrics"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type LeadHandler struct {
	producer    entity.LeadProducer
	rateLimiter *RateLimiter
	randomID    func() int
	logger      *zap.Logger
}

func NewLeadHandler(producer entity.LeadProducer, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		producer:    producer,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
		randomID: func() int {
			return entity.MinLeadID + rand.Intn(entity.MaxLeadID-entity.MinLeadID+1)
		},
		logger: logger,
	}
}

type CaptureLeadRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	LeadID  int    `json:"lead_id,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// CaptureLead enqueues a lead submitted from outside the simulator.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req CaptureLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{Message: "Invalid JSON"})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{Message: "Name is required"})
		return
	}

	lead, err := h.capture(r.Context(), req)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			writeJSON(w, http.StatusBadRequest, CaptureLeadResponse{Code: domainErr.Code, Message: domainErr.Message})
			return
		}
		h.logger.Error("failed to enqueue lead", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, CaptureLeadResponse{Message: "Failed to capture lead"})
		return
	}

	metrics.RecordLeadEnqueued("http")
	h.logger.Info("lead captured", zap.Int("lead_id", lead.ID), zap.String("name", lead.Name))

	writeJSON(w, http.StatusAccepted, CaptureLeadResponse{Success: true, LeadID: lead.ID})
}

func (h *LeadHandler) capture(ctx context.Context, req CaptureLeadRequest) (*entity.Lead, error) {
	lead, err := entity.NewLead(h.randomID(), strings.TrimSpace(req.Name), strings.TrimSpace(req.Email))
	if err != nil {
		return nil, usecase.InvalidLead(err)
	}
	if err := h.producer.PublishLead(ctx, *lead); err != nil {
		return nil, fmt.Errorf("enqueue lead %d: %w", lead.ID, err)
	}
	return lead, nil
}

// Close stops the rate limiter's background cleanup.
func (h *LeadHandler) Close() {
	h.rateLimiter.Stop()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	stopped  chan struct{}
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := rl.now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanup() {
	defer close(rl.stopped)

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := rl.now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
