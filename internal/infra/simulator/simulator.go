package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// Simulator fakes form submissions: each one waits a fixed delay and then
// publishes a randomly numbered lead.
type Simulator struct {
	Producer entity.LeadProducer
	Delay    time.Duration
	Logger   *zap.Logger
	// Announce, when set, is told about each lead as soon as it is drawn.
	Announce func(entity.Lead)

	randomID func() int
}

func New(producer entity.LeadProducer, delay time.Duration, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		Producer: producer,
		Delay:    delay,
		Logger:   logger,
		randomID: func() int {
			return entity.MinLeadID + rand.Intn(entity.MaxLeadID-entity.MinLeadID+1)
		},
	}
}

// TriggerLeads starts n concurrent submissions and waits for all of them.
// Arrival order is up to the scheduler.
func (s *Simulator) TriggerLeads(ctx context.Context, n int) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return s.submit(ctx)
		})
	}
	return g.Wait()
}

func (s *Simulator) submit(ctx context.Context) error {
	id := s.randomID()
	lead, err := entity.NewLead(id, "", "")
	if err != nil {
		return err
	}

	s.Logger.Info("new lead triggered", zap.Int("lead_id", lead.ID), zap.String("lead_name", lead.Name))
	if s.Announce != nil {
		s.Announce(*lead)
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if err := s.Producer.PublishLead(ctx, *lead); err != nil {
		return fmt.Errorf("simulator: publish lead %d: %w", lead.ID, err)
	}
	return nil
}
