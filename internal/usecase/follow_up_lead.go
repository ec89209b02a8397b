package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-intake/internal/entity"
)

const FollowUpMessage = "Just checking in to see if you're still interested. " +
	"Let me know when you're ready to continue."

type FollowUpLeadUseCase struct {
	Store     FollowUpStore
	Messenger Messenger
	Records   entity.LeadRecordRepository
	Tracker   InteractionRecorder
	Email     EmailService
	Logger    *zap.Logger
}

// NewFollowUpLeadUseCase wires the reminder flow. email may be nil when no
// mail transport is configured.
func NewFollowUpLeadUseCase(
	store FollowUpStore,
	messenger Messenger,
	records entity.LeadRecordRepository,
	tracker InteractionRecorder,
	email EmailService,
	logger *zap.Logger,
) *FollowUpLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FollowUpLeadUseCase{
		Store:     store,
		Messenger: messenger,
		Records:   records,
		Tracker:   tracker,
		Email:     email,
		Logger:    logger,
	}
}

// Execute reminds a quiet lead. It reports false without side effects when
// the lead was already followed up.
func (uc *FollowUpLeadUseCase) Execute(ctx context.Context, lead entity.Lead, now time.Time) (bool, error) {
	first, err := uc.Store.MarkSent(ctx, lead.ID, now)
	if err != nil {
		return false, technical(CodeMarkerFailed, "follow-up: mark lead", err)
	}
	if !first {
		return false, nil
	}

	log := uc.Logger.With(zap.Int("lead_id", lead.ID))

	uc.Messenger.Send(lead.ID, Message{
		Title: "Follow-Up",
		Body:  FollowUpMessage,
		Tone:  ToneFollowUp,
	})

	if uc.Email != nil && lead.Email != "" {
		// Email is best effort; the console reminder already went out.
		if err := uc.Email.SendFollowUp(lead.Email, lead.Name, FollowUpMessage); err != nil {
			log.Warn("follow-up email failed", zap.String("email", lead.Email), zap.Error(err))
		}
	}

	if err := uc.Records.Save(ctx, entity.NewStatusRecord(lead, entity.StatusFollowedUp)); err != nil {
		return true, technical(CodeFollowUp, "follow-up: save lead record", err)
	}

	uc.Tracker.Touch(lead, now)

	uc.Messenger.Send(lead.ID, Message{
		Title: "Follow-Up Sent",
		Body:  fmt.Sprintf("Follow-up sent for Lead %d", lead.ID),
		Tone:  ToneInfo,
	})
	log.Info("follow-up sent")
	return true, nil
}
