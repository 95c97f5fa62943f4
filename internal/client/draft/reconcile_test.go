package draft_test

import (
	"testing"

	"github.com/acrennan/daybook/internal/client/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileEmpty(t *testing.T) {
	cards := draft.Reconcile("2024-05-01", nil, nil)

	require.Len(t, cards, draft.MinCards)
	for i, card := range cards {
		assert.Equal(t, i+1, card.Order)
		assert.Equal(t, "2024-05-01", card.DateKey)
		assert.NotEmpty(t, card.LocalID)
		assert.Empty(t, card.CloudID)
		assert.False(t, card.Dirty)
		assert.Equal(t, []string{}, card.ImageURLs)
		assert.Equal(t, []string{}, card.VoiceURLs)
	}
}

func TestReconcileDraftWins(t *testing.T) {
	local := draft.NewCard("2024-05-01", 1)
	local.Content = "unsynced edit"
	local.Dirty = true

	remote := draft.NewCard("2024-05-01", 1)
	remote.CloudID = "cloud-1"
	remote.Content = "stale server copy"

	cards := draft.Reconcile("2024-05-01", []draft.Card{local}, []draft.Card{remote})

	require.Len(t, cards, draft.MinCards)
	assert.Equal(t, "unsynced edit", cards[0].Content)
	assert.True(t, cards[0].Dirty)
	// The server id sticks to the winning draft.
	assert.Equal(t, "cloud-1", cards[0].CloudID)
}

func TestReconcileCloudOnly(t *testing.T) {
	remote := draft.Card{
		CloudID: "cloud-2",
		Content: "persisted entry",
		Order:   2,
		Dirty:   true, // Bogus flag from a crashed session.
	}

	cards := draft.Reconcile("2024-05-01", nil, []draft.Card{remote})

	// Padding appends past the occupied slot, it never backfills below it.
	require.Len(t, cards, draft.MinCards)
	assert.Equal(t, 2, cards[0].Order)
	assert.Equal(t, "cloud-2", cards[0].CloudID)
	assert.Equal(t, "persisted entry", cards[0].Content)
	assert.NotEmpty(t, cards[0].LocalID)
	assert.False(t, cards[0].Dirty)
	assert.Equal(t, 3, cards[1].Order)
	assert.Empty(t, cards[1].CloudID)
	assert.Equal(t, 4, cards[2].Order)
	assert.Empty(t, cards[2].CloudID)
}

func TestReconcilePadsPastMaxOrder(t *testing.T) {
	local := draft.NewCard("2024-05-01", 7)
	local.Content = "late night note"

	cards := draft.Reconcile("2024-05-01", []draft.Card{local}, nil)

	require.Len(t, cards, draft.MinCards)
	assert.Equal(t, 7, cards[0].Order)
	assert.Equal(t, 8, cards[1].Order)
	assert.Equal(t, 9, cards[2].Order)
}

func TestReconcileIdempotence(t *testing.T) {
	remote := draft.Card{CloudID: "cloud-1", Content: "persisted", Order: 1}
	local := draft.NewCard("2024-05-01", 2)
	local.Content = "draft"
	local.Dirty = true

	once := draft.Reconcile("2024-05-01", []draft.Card{local}, []draft.Card{remote})
	twice := draft.Reconcile("2024-05-01", once, []draft.Card{remote})

	assert.Equal(t, once, twice)
}

func TestReconcileKeepsDayKey(t *testing.T) {
	stray := draft.NewCard("2024-04-30", 1)
	stray.Content = "filed under the wrong day"

	cards := draft.Reconcile("2024-05-01", []draft.Card{stray}, nil)
	for _, card := range cards {
		assert.Equal(t, "2024-05-01", card.DateKey)
	}
}
