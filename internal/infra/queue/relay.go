package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// Acknowledger is the subset of amqp.Delivery the relay settles.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Relay consumes leads from the broker and forwards them to a local sink,
// normally the MemoryQueue the lead handler reads from.
type Relay struct {
	Channel *amqp.Channel
	Sink    entity.LeadProducer
	Logger  *zap.Logger
}

func NewRelay(ch *amqp.Channel, sink entity.LeadProducer, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{Channel: ch, Sink: sink, Logger: logger}
}

// Start consumes queueName until ctx ends or the delivery channel closes.
func (r *Relay) Start(ctx context.Context, queueName string) error {
	msgs, err := r.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq: register consumer: %w", err)
	}

	r.Logger.Info("relay consuming", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			r.handle(ctx, d.Body, &d)
		}
	}
}

func (r *Relay) handle(ctx context.Context, body []byte, ack Acknowledger) {
	var payload LeadPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		r.Logger.Warn("relay: malformed payload", zap.Error(err))
		_ = ack.Nack(false, false)
		return
	}

	lead, err := payload.Lead()
	if err != nil {
		r.Logger.Warn("relay: invalid lead", zap.Int("lead_id", payload.LeadID), zap.Error(err))
		_ = ack.Nack(false, false)
		return
	}

	if err := r.Sink.PublishLead(ctx, lead); err != nil {
		r.Logger.Error("relay: forward lead", zap.Int("lead_id", lead.ID), zap.Error(err))
		// Requeue so another consumer can take it.
		_ = ack.Nack(false, true)
		return
	}

	r.Logger.Info("relay: lead forwarded", zap.Int("lead_id", lead.ID))
	_ = ack.Ack(false)
}
