package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// LeadPayload is the wire form of a lead on the broker.
type LeadPayload struct {
	LeadID      int       `json:"lead_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewLeadPayload(lead entity.Lead) LeadPayload {
	return LeadPayload{
		LeadID:      lead.ID,
		Name:        lead.Name,
		Email:       lead.Email,
		SubmittedAt: lead.SubmittedAt,
	}
}

func (p LeadPayload) Lead() (entity.Lead, error) {
	lead := entity.Lead{
		ID:          p.LeadID,
		Name:        p.Name,
		Email:       p.Email,
		SubmittedAt: p.SubmittedAt,
	}
	if err := lead.Validate(); err != nil {
		return entity.Lead{}, err
	}
	return lead, nil
}

// Publisher is the subset of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLead(ctx context.Context, lead entity.Lead) error {
	body, err := json.Marshal(NewLeadPayload(lead))
	if err != nil {
		return fmt.Errorf("rabbitmq: encode lead %d: %w", lead.ID, err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish lead %d: %w", lead.ID, err)
	}
	return nil
}
