// Package draft holds the client-local representation of a day's record
// cards and the pure reconciliation of local drafts against the server's
// authoritative list.
package draft

import (
	"github.com/acrennan/daybook/pkg/libdaybook"
	"github.com/gofrs/uuid"
)

// A Card is the client-local, possibly-unsynced representation of a
// record. LocalID is stable across edits until the card is persisted;
// CloudID stays empty until the first successful save; Dirty flags
// local modifications not persisted yet.
type Card struct {
	LocalID   string               `json:"local_id"`
	CloudID   string               `json:"cloud_id,omitempty"`
	Content   string               `json:"content"`
	ImageURLs []string             `json:"image_urls"`
	VoiceURLs []string             `json:"voice_urls"`
	Location  *libdaybook.Location `json:"location,omitempty"`
	DateKey   string               `json:"date_key"`
	Order     int                  `json:"order"`
	Dirty     bool                 `json:"dirty"`
}

// NewCard returns a fresh empty card occupying the given day slot.
func NewCard(dayKey string, order int) Card {
	return Card{
		LocalID:   uuid.Must(uuid.NewV4()).String(),
		ImageURLs: []string{},
		VoiceURLs: []string{},
		DateKey:   dayKey,
		Order:     order,
	}
}

// FromRecord translates a persisted record into draft-card shape.
// The card gets a synthetic LocalID and is clean by construction.
func FromRecord(r *libdaybook.Record) Card {
	card := NewCard(r.DateKey, r.Order)
	card.CloudID = r.ID
	card.Content = r.Content
	if r.ImageURLs != nil {
		card.ImageURLs = r.ImageURLs
	}
	if r.VoiceURLs != nil {
		card.VoiceURLs = r.VoiceURLs
	}
	card.Location = r.Location
	return card
}

// FromRecords translates a list of persisted records into draft-card shape.
func FromRecords(records []*libdaybook.Record) []Card {
	cards := make([]Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, FromRecord(r))
	}
	return cards
}

// Params returns the upsert parameters persisting this card.
func (c Card) Params() libdaybook.RecordParams {
	order := c.Order
	return libdaybook.RecordParams{
		ID:        c.CloudID,
		Content:   c.Content,
		ImageURLs: c.ImageURLs,
		VoiceURLs: c.VoiceURLs,
		Location:  c.Location,
		DateKey:   c.DateKey,
		Order:     &order,
	}
}
