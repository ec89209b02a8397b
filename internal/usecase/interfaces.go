package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// Tone selects how a message is styled on the agent console.
type Tone string

const (
	ToneWelcome  Tone = "welcome"
	ToneInfo     Tone = "info"
	ToneSuccess  Tone = "success"
	ToneError    Tone = "error"
	ToneDeclined Tone = "declined"
	ToneFollowUp Tone = "follow_up"
)

type Message struct {
	Title string
	Body  string
	Tone  Tone
}

// Messenger delivers agent messages to a lead.
type Messenger interface {
	Send(leadID int, msg Message)
}

// Prompter collects answers from a lead. Only one prompt is active at a time.
type Prompter interface {
	Ask(ctx context.Context, leadID int, question, defaultAnswer string) (string, error)
	Choose(ctx context.Context, leadID int, question string, choices []string) (string, error)
}

// FollowUpStore remembers which leads already received a reminder.
type FollowUpStore interface {
	// MarkSent records the follow-up and reports whether this call was the
	// first one for the lead.
	MarkSent(ctx context.Context, leadID int, at time.Time) (bool, error)
}

// EmailService sends the follow-up reminder by email.
type EmailService interface {
	SendFollowUp(to, name, body string) error
}

type Clock func() time.Time

type InteractionRecorder interface {
	Touch(lead entity.Lead, at time.Time)
}

// StatusCounter counts persisted lead records by status.
type StatusCounter interface {
	CountByStatus(ctx context.Context, status entity.Status) (int, error)
}
