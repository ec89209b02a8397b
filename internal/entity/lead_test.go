package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLead(t *testing.T) {
	t.Run("defaults name from id", func(t *testing.T) {
		lead, err := NewLead(4821, "  ", "")
		require.NoError(t, err)
		assert.Equal(t, "Lead_4821", lead.Name)
		assert.False(t, lead.SubmittedAt.IsZero())
	})

	t.Run("keeps given name and email", func(t *testing.T) {
		lead, err := NewLead(1234, " Sample Lead ", " lead@example.com ")
		require.NoError(t, err)
		assert.Equal(t, "Sample Lead", lead.Name)
		assert.Equal(t, "lead@example.com", lead.Email)
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		_, err := NewLead(0, "x", "")
		assert.Error(t, err)
	})
}

func TestLeadRecordRow(t *testing.T) {
	lead := Lead{ID: 1234, Name: "Sample Lead"}

	secured := NewSecuredRecord(lead, "25", "Brazil", "Insurance")
	assert.Equal(t, []string{"1234", "Sample Lead", "25", "Brazil", "Insurance", "secured"}, secured.Row())

	declined := NewStatusRecord(lead, StatusNoResponse)
	assert.Equal(t, []string{"1234", "Sample Lead", "", "", "", "no_response"}, declined.Row())
	assert.Len(t, declined.Row(), len(LeadRecordHeader))
}
