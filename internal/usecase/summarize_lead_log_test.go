package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

type staticCounter struct {
	counts map[entity.Status]int
	err    error
}

func (c staticCounter) CountByStatus(_ context.Context, status entity.Status) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	return c.counts[status], nil
}

func TestSummarizeLeadLog(t *testing.T) {
	counter := staticCounter{counts: map[entity.Status]int{
		entity.StatusSecured:    3,
		entity.StatusNoResponse: 1,
		entity.StatusFollowedUp: 2,
	}}

	summary, err := usecase.SummarizeLeadLog(context.Background(), counter)

	require.NoError(t, err)
	assert.Equal(t, usecase.LeadLogSummary{Secured: 3, NoResponse: 1, FollowedUp: 2}, summary)
	assert.Equal(t, "Lead log: 3 secured, 1 no_response, 2 followed_up", summary.String())
}

func TestSummarizeLeadLogCountFailure(t *testing.T) {
	_, err := usecase.SummarizeLeadLog(context.Background(), staticCounter{err: errors.New("permission denied")})

	assert.True(t, usecase.IsTechnicalError(err))
	assert.ErrorContains(t, err, "permission denied")
}
