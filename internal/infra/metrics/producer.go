package metrics

import (
	"context"

	"github.com/xavierca1/lead-intake/internal/entity"
)

type countingProducer struct {
	next   entity.LeadProducer
	source string
}

// CountEnqueued wraps next so that every successful publish is counted
// under source.
func CountEnqueued(next entity.LeadProducer, source string) entity.LeadProducer {
	return &countingProducer{next: next, source: source}
}

func (p *countingProducer) PublishLead(ctx context.Context, lead entity.Lead) error {
	if err := p.next.PublishLead(ctx, lead); err != nil {
		return err
	}
	RecordLeadEnqueued(p.source)
	return nil
}
