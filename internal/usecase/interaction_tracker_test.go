package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/lead-intake/internal/entity"
	"github.com/xavierca1/lead-intake/internal/usecase"
)

func TestInteractionTrackerQuietSince(t *testing.T) {
	base := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	tracker := usecase.NewInteractionTracker()
	tracker.Touch(entity.Lead{ID: 1001, Name: "a"}, base)
	tracker.Touch(entity.Lead{ID: 1002, Name: "b"}, base.Add(5*time.Second))

	assert.Empty(t, tracker.QuietSince(base.Add(9*time.Second), 10*time.Second))

	quiet := tracker.QuietSince(base.Add(10*time.Second), 10*time.Second)
	if assert.Len(t, quiet, 1) {
		assert.Equal(t, 1001, quiet[0].Lead.ID)
	}

	assert.Len(t, tracker.QuietSince(base.Add(time.Hour), 10*time.Second), 2)
}

func TestInteractionTrackerTouchOverwrites(t *testing.T) {
	base := time.Now()
	tracker := usecase.NewInteractionTracker()
	lead := entity.Lead{ID: 1003, Name: "c"}

	tracker.Touch(lead, base)
	tracker.Touch(lead, base.Add(time.Minute))

	in, ok := tracker.Get(1003)
	assert.True(t, ok)
	assert.Equal(t, base.Add(time.Minute), in.LastInteraction)
	assert.Equal(t, 1, tracker.Len())
}
