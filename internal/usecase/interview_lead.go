package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/lead-intake/internal/entity"
)

const (
	ConsentYes = "yes"
	ConsentNo  = "no"

	DefaultAge = "25"

	questionConsent  = "Lead Response (Yes/No):"
	questionAge      = "What's your age?"
	questionCountry  = "Which country are you from?"
	questionInterest = "What product or service are you interested in?"
)

type InterviewLeadUseCase struct {
	Prompter  Prompter
	Messenger Messenger
	Records   entity.LeadRecordRepository
	Tracker   InteractionRecorder
	Now       Clock
	Logger    *zap.Logger
}

func NewInterviewLeadUseCase(
	prompter Prompter,
	messenger Messenger,
	records entity.LeadRecordRepository,
	tracker InteractionRecorder,
	logger *zap.Logger,
) *InterviewLeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewLeadUseCase{
		Prompter:  prompter,
		Messenger: messenger,
		Records:   records,
		Tracker:   tracker,
		Now:       time.Now,
		Logger:    logger,
	}
}

// Execute runs the scripted conversation with one lead and appends the
// resulting record to the lead log.
func (uc *InterviewLeadUseCase) Execute(ctx context.Context, lead entity.Lead) (*entity.LeadRecord, error) {
	log := uc.Logger.With(zap.Int("lead_id", lead.ID), zap.String("lead_name", lead.Name))
	log.Info("interview started")

	uc.Messenger.Send(lead.ID, Message{
		Title: "Welcome",
		Body: fmt.Sprintf("Hey %s, thank you for filling out the form. "+
			"I'd like to gather some information from you. Is that okay?", lead.Name),
		Tone: ToneWelcome,
	})

	consent, err := uc.Prompter.Choose(ctx, lead.ID, questionConsent, []string{ConsentYes, ConsentNo})
	if err != nil {
		return nil, technical(CodePrompt, "interview: read consent", err)
	}

	var record *entity.LeadRecord
	if consent == ConsentYes {
		record, err = uc.collectDetails(ctx, lead)
		if err != nil {
			return nil, err
		}
	} else {
		record = entity.NewStatusRecord(lead, entity.StatusNoResponse)
	}

	if err := uc.Records.Save(ctx, record); err != nil {
		return nil, technical(CodePersist, "interview: save lead record", err)
	}

	if record.Status == entity.StatusSecured {
		uc.Messenger.Send(lead.ID, Message{
			Title: "Success",
			Body:  "Thank you for providing the information. Your status is now secured!",
			Tone:  ToneSuccess,
		})
	} else {
		uc.Messenger.Send(lead.ID, Message{
			Title: "Declined",
			Body:  "Alright, no problem. Have a great day!",
			Tone:  ToneDeclined,
		})
	}

	uc.Tracker.Touch(lead, uc.Now())
	log.Info("interview finished", zap.String("status", string(record.Status)))
	return record, nil
}

func (uc *InterviewLeadUseCase) collectDetails(ctx context.Context, lead entity.Lead) (*entity.LeadRecord, error) {
	uc.Messenger.Send(lead.ID, Message{
		Title: "Proceeding",
		Body:  "Great! Let's get started.",
		Tone:  ToneSuccess,
	})

	age, err := uc.Prompter.Ask(ctx, lead.ID, questionAge, DefaultAge)
	if err != nil {
		return nil, technical(CodePrompt, "interview: read age", err)
	}
	for ValidateAge(age) != nil {
		uc.Logger.Debug("age rejected", zap.Int("lead_id", lead.ID), zap.String("age", age))
		uc.Messenger.Send(lead.ID, Message{
			Title: "Error",
			Body:  "Please enter a valid number for your age.",
			Tone:  ToneError,
		})
		age, err = uc.Prompter.Ask(ctx, lead.ID, questionAge, "")
		if err != nil {
			return nil, technical(CodePrompt, "interview: read age", err)
		}
	}

	country, err := uc.Prompter.Ask(ctx, lead.ID, questionCountry, "")
	if err != nil {
		return nil, technical(CodePrompt, "interview: read country", err)
	}
	interest, err := uc.Prompter.Ask(ctx, lead.ID, questionInterest, "")
	if err != nil {
		return nil, technical(CodePrompt, "interview: read interest", err)
	}

	return entity.NewSecuredRecord(lead, age, country, interest), nil
}
