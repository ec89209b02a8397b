package usecase

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/xavierca1/lead-intake/internal/entity"
)

type Interaction struct {
	Lead            entity.Lead
	LastInteraction time.Time
}

// InteractionTracker holds the last-interaction instant of every lead the
// agent has talked to. It lives in memory only.
type InteractionTracker struct {
	mu    sync.Mutex
	leads map[int]Interaction
}

func NewInteractionTracker() *InteractionTracker {
	return &InteractionTracker{leads: make(map[int]Interaction)}
}

func (t *InteractionTracker) Touch(lead entity.Lead, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leads[lead.ID] = Interaction{Lead: lead, LastInteraction: at}
}

func (t *InteractionTracker) Get(leadID int) (Interaction, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	in, ok := t.leads[leadID]
	return in, ok
}

// QuietSince returns the leads whose last interaction is at least threshold
// before now, oldest first.
func (t *InteractionTracker) QuietSince(now time.Time, threshold time.Duration) []Interaction {
	t.mu.Lock()
	defer t.mu.Unlock()

	var quiet []Interaction
	for _, in := range t.leads {
		if now.Sub(in.LastInteraction) >= threshold {
			quiet = append(quiet, in)
		}
	}
	slices.SortFunc(quiet, func(a, b Interaction) int {
		if c := a.LastInteraction.Compare(b.LastInteraction); c != 0 {
			return c
		}
		return cmp.Compare(a.Lead.ID, b.Lead.ID)
	})
	return quiet
}

func (t *InteractionTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.leads)
}
