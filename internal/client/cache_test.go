package client_test

import (
	"sync"
	"testing"
	"time"

	"github.com/acrennan/daybook/internal/client"
	"github.com/acrennan/daybook/internal/client/draft"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory DraftStore counting its writes.
type memoryStore struct {
	mu     sync.Mutex
	drafts map[string][]draft.Card
	writes int
	fail   bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{drafts: make(map[string][]draft.Card)}
}

func (s *memoryStore) ReadDrafts(dayKey string) ([]draft.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[dayKey], nil
}

func (s *memoryStore) WriteDrafts(dayKey string, cards []draft.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail {
		return errors.New("disk full")
	}
	s.drafts[dayKey] = cards
	s.writes++
	return nil
}

func (s *memoryStore) stats() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts), s.writes
}

func TestDraftCacheGetOverlaysPending(t *testing.T) {
	store := newMemoryStore()
	store.drafts["2024-05-01"] = []draft.Card{{LocalID: "stored", Order: 1}}

	cache := client.NewDraftCache(store, time.Hour)

	cards, err := cache.Get("2024-05-01")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "stored", cards[0].LocalID)

	cache.Put("2024-05-01", []draft.Card{{LocalID: "edited", Order: 1}})

	cards, err = cache.Get("2024-05-01")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "edited", cards[0].LocalID)

	// The store has not been written yet.
	_, writes := store.stats()
	assert.Zero(t, writes)
}

func TestDraftCacheGetReturnsOwnCopy(t *testing.T) {
	store := newMemoryStore()
	cache := client.NewDraftCache(store, time.Hour)

	cache.Put("2024-05-01", []draft.Card{{LocalID: "pending", Order: 1, Content: "original"}})

	cards, err := cache.Get("2024-05-01")
	require.NoError(t, err)
	cards[0].Content = "mutated in place"

	again, err := cache.Get("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Content)
}

func TestDraftCacheDebouncesWrites(t *testing.T) {
	store := newMemoryStore()
	cache := client.NewDraftCache(store, 20*time.Millisecond)

	for i := 0; i < 10; i++ {
		cache.Put("2024-05-01", []draft.Card{{LocalID: "burst", Order: 1, Content: "edit"}})
	}

	assert.Eventually(t, func() bool {
		_, writes := store.stats()
		return writes == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDraftCacheFlush(t *testing.T) {
	store := newMemoryStore()
	cache := client.NewDraftCache(store, time.Hour)

	cache.Put("2024-05-01", []draft.Card{{LocalID: "a", Order: 1}})
	cache.Put("2024-05-02", []draft.Card{{LocalID: "b", Order: 1}})

	require.NoError(t, cache.Flush())

	days, writes := store.stats()
	assert.Equal(t, 2, days)
	assert.Equal(t, 2, writes)

	// Nothing left pending.
	require.NoError(t, cache.Flush())
	_, writes = store.stats()
	assert.Equal(t, 2, writes)
}

func TestDraftCacheFlushFailureKeepsPending(t *testing.T) {
	store := newMemoryStore()
	cache := client.NewDraftCache(store, time.Hour)

	cache.Put("2024-05-01", []draft.Card{{LocalID: "a", Order: 1}})

	store.mu.Lock()
	store.fail = true
	store.mu.Unlock()
	assert.Error(t, cache.Flush())

	store.mu.Lock()
	store.fail = false
	store.mu.Unlock()
	require.NoError(t, cache.Flush())

	cards, err := cache.Get("2024-05-01")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "a", cards[0].LocalID)
}
