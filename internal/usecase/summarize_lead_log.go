package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// LeadLogSummary holds per-status row counts of the lead log.
type LeadLogSummary struct {
	Secured    int
	NoResponse int
	FollowedUp int
}

func (s LeadLogSummary) String() string {
	return fmt.Sprintf("Lead log: %d %s, %d %s, %d %s",
		s.Secured, entity.StatusSecured,
		s.NoResponse, entity.StatusNoResponse,
		s.FollowedUp, entity.StatusFollowedUp)
}

func SummarizeLeadLog(ctx context.Context, counter StatusCounter) (LeadLogSummary, error) {
	var summary LeadLogSummary
	targets := []struct {
		status entity.Status
		dst    *int
	}{
		{entity.StatusSecured, &summary.Secured},
		{entity.StatusNoResponse, &summary.NoResponse},
		{entity.StatusFollowedUp, &summary.FollowedUp},
	}
	for _, t := range targets {
		n, err := counter.CountByStatus(ctx, t.status)
		if err != nil {
			return LeadLogSummary{}, technical(CodePersist, "summary: count "+string(t.status), err)
		}
		*t.dst = n
	}
	return summary, nil
}
