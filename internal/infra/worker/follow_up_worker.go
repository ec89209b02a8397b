package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/metrics"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type QuietLeadFinder interface {
	QuietSince(now time.Time, threshold time.Duration) []usecase.Interaction
}

type FollowUpSender interface {
	Execute(ctx context.Context, lead entity.Lead, now time.Time) (bool, error)
}

// FollowUpWorker periodically reminds leads that have been quiet for at
// least threshold. Each lead is reminded at most once.
type FollowUpWorker struct {
	finder       QuietLeadFinder
	sender       FollowUpSender
	threshold    time.Duration
	tickInterval time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

func NewFollowUpWorker(finder QuietLeadFinder, sender FollowUpSender, threshold, tickInterval time.Duration, logger *zap.Logger) *FollowUpWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FollowUpWorker{
		finder:       finder,
		sender:       sender,
		threshold:    threshold,
		tickInterval: tickInterval,
		now:          time.Now,
		logger:       logger,
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	w.logger.Info("follow-up worker started",
		zap.Duration("threshold", w.threshold),
		zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("follow-up worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep sends every due reminder and returns how many went out.
func (w *FollowUpWorker) sweep(ctx context.Context) int {
	now := w.now()
	sent := 0
	for _, in := range w.finder.QuietSince(now, w.threshold) {
		if ctx.Err() != nil {
			return sent
		}
		ok, err := w.sender.Execute(ctx, in.Lead, now)
		if err != nil {
			w.logger.Error("follow-up failed", zap.Int("lead_id", in.Lead.ID), zap.Error(err))
			continue
		}
		if ok {
			metrics.RecordFollowUp()
			w.logger.Info("follow-up sent",
				zap.Int("lead_id", in.Lead.ID),
				zap.Duration("quiet_for", now.Sub(in.LastInteraction).Round(time.Second)))
			sent++
		}
	}
	if sent > 0 {
		w.logger.Info("follow-up sweep finished", zap.Int("sent", sent))
	}
	return sent
}
