package client

import (
	"sync"
	"time"

	"github.com/acrennan/daybook/internal/client/draft"
	"github.com/bep/debounce"
	"github.com/pkg/errors"
)

// DefaultFlushDelay is the debounce window coalescing draft writes.
const DefaultFlushDelay = 500 * time.Millisecond

// A DraftStore persists draft card lists by day key.
type DraftStore interface {
	// ReadDrafts returns the stored drafts of one calendar day.
	// A day without drafts yields an empty list, not an error.
	ReadDrafts(dayKey string) ([]draft.Card, error)
	// WriteDrafts stores the drafts of one calendar day.
	WriteDrafts(dayKey string, cards []draft.Card) error
}

// A DraftCache buffers draft writes in front of a DraftStore.
// Puts are coalesced through a debounce window so that a burst of edits
// costs a single store write; Flush forces the write immediately.
type DraftCache struct {
	mu        sync.Mutex
	store     DraftStore
	pending   map[string][]draft.Card
	debounced func(f func())
}

// NewDraftCache returns a new cache over the given store.
// A non-positive delay falls back to DefaultFlushDelay.
func NewDraftCache(store DraftStore, delay time.Duration) *DraftCache {
	if delay <= 0 {
		delay = DefaultFlushDelay
	}
	return &DraftCache{
		store:     store,
		pending:   make(map[string][]draft.Card),
		debounced: debounce.New(delay),
	}
}

// Get returns the drafts of one day, preferring not-yet-flushed writes.
// The returned slice is the caller's own: mutating it does not touch
// the pending state until the next Put.
func (c *DraftCache) Get(dayKey string) ([]draft.Card, error) {
	c.mu.Lock()
	cards, ok := c.pending[dayKey]
	c.mu.Unlock()

	if ok {
		return append([]draft.Card(nil), cards...), nil
	}
	return c.store.ReadDrafts(dayKey)
}

// Put records the drafts of one day and schedules a debounced flush.
func (c *DraftCache) Put(dayKey string, cards []draft.Card) {
	c.mu.Lock()
	c.pending[dayKey] = cards
	c.mu.Unlock()

	c.debounced(func() {
		if err := c.Flush(); err != nil {
			NewLogger().Printf("draft flush failed: %s", err)
		}
	})
}

// Flush writes all pending drafts to the store. Days that could not be
// written stay pending.
func (c *DraftCache) Flush() error {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[string][]draft.Card)
	c.mu.Unlock()

	for dayKey, cards := range pending {
		if err := c.store.WriteDrafts(dayKey, cards); err != nil {
			c.mu.Lock()
			for k, v := range pending {
				if _, ok := c.pending[k]; !ok {
					c.pending[k] = v
				}
			}
			c.mu.Unlock()
			return errors.Wrapf(err, "could not flush drafts of %s", dayKey)
		}
		delete(pending, dayKey)
	}
	return nil
}
