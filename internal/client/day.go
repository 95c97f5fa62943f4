package client

import (
	"github.com/acrennan/daybook/internal/client/draft"
	"github.com/acrennan/daybook/pkg/libdaybook"
)

// A DayView combines the locally cached drafts of one calendar day with
// the server's authoritative list, through the draft reconciler.
type DayView struct {
	client     libdaybook.Client
	cache      *DraftCache
	collection string
}

// NewDayView returns a day view over the given collection.
func NewDayView(client libdaybook.Client, cache *DraftCache, collection string) *DayView {
	return &DayView{
		client:     client,
		cache:      cache,
		collection: collection,
	}
}

// Cards returns the reconciled card list of one day and caches it, so
// that a later reconciliation starts from this view.
func (v *DayView) Cards(dayKey string) ([]draft.Card, error) {
	drafts, err := v.cache.Get(dayKey)
	if err != nil {
		return nil, err
	}

	records, err := v.client.ListDay(v.collection, dayKey)
	if err != nil {
		return nil, err
	}

	cards := draft.Reconcile(dayKey, drafts, draft.FromRecords(records))
	v.cache.Put(dayKey, cards)
	return cards, nil
}

// Edit records a local modification of a card: the card turns dirty and
// the cached day view is updated, pending a later Save.
func (v *DayView) Edit(dayKey string, card draft.Card) (draft.Card, error) {
	card.Dirty = true
	err := v.remember(dayKey, card)
	return card, err
}

// Save persists a card through the upsert operation; on success the card
// holds its CloudID and turns clean.
func (v *DayView) Save(dayKey string, card draft.Card) (draft.Card, error) {
	record, err := v.client.UpsertRecord(v.collection, card.Params())
	if err != nil {
		return card, err
	}

	card.CloudID = record.ID
	card.Dirty = false
	err = v.remember(dayKey, card)
	return card, err
}

// Discard drops a card locally, and remotely when it was ever persisted.
func (v *DayView) Discard(dayKey string, card draft.Card) error {
	if card.CloudID != "" {
		if err := v.client.DeleteRecord(v.collection, card.CloudID); err != nil {
			return err
		}
	}

	cards, err := v.cache.Get(dayKey)
	if err != nil {
		return err
	}

	kept := make([]draft.Card, 0, len(cards))
	for _, c := range cards {
		if c.LocalID != card.LocalID {
			kept = append(kept, c)
		}
	}
	v.cache.Put(dayKey, kept)
	return nil
}

// remember replaces the card's slot in the cached day view.
func (v *DayView) remember(dayKey string, card draft.Card) error {
	cards, err := v.cache.Get(dayKey)
	if err != nil {
		return err
	}

	replaced := false
	for i, c := range cards {
		if c.Order == card.Order {
			cards[i] = card
			replaced = true
			break
		}
	}
	if !replaced {
		cards = append(cards, card)
	}

	v.cache.Put(dayKey, cards)
	return nil
}
