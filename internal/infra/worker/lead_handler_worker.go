package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/infra/console"
	"github.com/xavierca1/lead-intake/internal/infra/metrics"
	"github.com/xavierca1/lead-intake/internal/infra/queue"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type LeadSource interface {
	Dequeue(ctx context.Context) (entity.Lead, error)
	Len() int
	Closed() bool
}

type Interviewer interface {
	Execute(ctx context.Context, lead entity.Lead) (*entity.LeadRecord, error)
}

// Display is the part of the agent console the handler reports progress on.
type Display interface {
	Banner(title, body string, tone usecase.Tone)
	Status(format string, args ...any)
	Notice(format string, args ...any)
}

// LeadHandlerWorker pulls leads off the queue one at a time and interviews
// them.
type LeadHandlerWorker struct {
	source      LeadSource
	interviewer Interviewer
	display     Display
	idleNotice  time.Duration
	logger      *zap.Logger

	handled int
}

func NewLeadHandlerWorker(source LeadSource, interviewer Interviewer, display Display, idleNotice time.Duration, logger *zap.Logger) *LeadHandlerWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandlerWorker{
		source:      source,
		interviewer: interviewer,
		display:     display,
		idleNotice:  idleNotice,
		logger:      logger,
	}
}

// Start runs until the queue is closed and drained or ctx ends. It returns
// early only when the terminal input is gone.
func (w *LeadHandlerWorker) Start(ctx context.Context) error {
	for {
		if w.source.Len() == 0 && !w.source.Closed() {
			w.display.Notice("Waiting for new leads to process...")
		}

		lead, err := w.next(ctx)
		if errors.Is(err, queue.ErrQueueClosed) || ctx.Err() != nil {
			w.logger.Info("lead handler finished", zap.Int("handled", w.handled))
			return nil
		}
		if err != nil {
			return fmt.Errorf("lead handler: dequeue: %w", err)
		}

		if err := w.handle(ctx, lead); err != nil {
			return err
		}
	}
}

// Handled returns how many leads were taken off the queue.
func (w *LeadHandlerWorker) Handled() int {
	return w.handled
}

func (w *LeadHandlerWorker) next(ctx context.Context) (entity.Lead, error) {
	if w.idleNotice <= 0 {
		return w.source.Dequeue(ctx)
	}
	for {
		waitCtx, cancel := context.WithTimeout(ctx, w.idleNotice)
		lead, err := w.source.Dequeue(waitCtx)
		cancel()
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			w.display.Notice("Waiting for new leads to process...")
			continue
		}
		return lead, err
	}
}

func (w *LeadHandlerWorker) handle(ctx context.Context, lead entity.Lead) error {
	w.handled++
	metrics.SetQueueDepth(w.source.Len())

	log := w.logger.With(
		zap.String("session_id", uuid.NewString()),
		zap.Int("lead_id", lead.ID),
	)
	log.Info("processing lead", zap.String("lead_name", lead.Name))

	w.display.Banner("Processing", fmt.Sprintf("Processing Lead: %d - %s", lead.ID, lead.Name), usecase.ToneInfo)

	record, err := w.interviewer.Execute(ctx, lead)
	if err != nil && ctx.Err() != nil {
		log.Info("interview interrupted by shutdown", zap.Error(err))
		return nil
	}
	if err != nil {
		metrics.RecordInterviewError()
		log.Error("interview failed", zap.Error(err))
		if errors.Is(err, console.ErrInputClosed) {
			return fmt.Errorf("lead handler: %w", err)
		}
		w.display.Banner("Lead Failed", fmt.Sprintf("Could not finish Lead: %d - %s (%v)", lead.ID, lead.Name, err), usecase.ToneError)
		return nil
	}

	metrics.RecordInterview(string(record.Status))
	w.display.Banner("Lead Completed", fmt.Sprintf("Completed Lead: %d - %s", lead.ID, lead.Name), usecase.ToneSuccess)
	w.display.Status("Leads left in queue: %d", w.source.Len())
	return nil
}
