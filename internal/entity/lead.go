package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinLeadID = 1000
	MaxLeadID = 9999
)

type Lead struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewLead builds a lead for a form submission. Simulated leads are named
// after their id when no name is given.
func NewLead(id int, name, email string) (*Lead, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Lead_%d", id)
	}

	lead := &Lead{
		ID:          id,
		Name:        name,
		Email:       strings.TrimSpace(email),
		SubmittedAt: time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.ID <= 0 {
		return errors.New("lead id must be positive")
	}
	if l.Name == "" {
		return errors.New("lead name is required")
	}
	return nil
}

// LeadProducer places leads onto the intake queue.
type LeadProducer interface {
	PublishLead(ctx context.Context, lead Lead) error
}
