package draft

import "sort"

// MinCards is the minimum number of cards a reconciled day view holds.
const MinCards = 3

// Reconcile merges a locally cached draft list with the server's
// authoritative list for the same day, keyed by slot order. It is pure:
// no I/O, and identical inputs always produce the same ordered output.
//
// For a slot present on both sides the draft wins wholesale, since it
// represents unsynced edits newer than the persisted state; the CloudID
// is taken from whichever side has it. Slots present on a single side
// are carried over as they are, cloud records translated into draft-card
// shape. The result is then padded with fresh empty cards, on strictly
// increasing orders past the current maximum, until MinCards is reached.
func Reconcile(dayKey string, drafts, cloud []Card) []Card {
	local := make(map[int]Card, len(drafts))
	for _, card := range drafts {
		local[card.Order] = card
	}
	remote := make(map[int]Card, len(cloud))
	for _, card := range cloud {
		remote[card.Order] = card
	}

	orders := make([]int, 0, len(local)+len(remote))
	for order := range local {
		orders = append(orders, order)
	}
	for order := range remote {
		if _, ok := local[order]; !ok {
			orders = append(orders, order)
		}
	}
	sort.Ints(orders)

	cards := make([]Card, 0, len(orders))
	for _, order := range orders {
		draft, fromDraft := local[order]
		record, fromCloud := remote[order]

		var card Card
		switch {
		case fromDraft && fromCloud:
			card = draft
			if card.CloudID == "" {
				card.CloudID = record.CloudID
			}
		case fromDraft:
			card = draft
		default:
			card = record
			card.Dirty = false
		}

		cards = append(cards, normalize(card, dayKey, order))
	}

	max := 0
	if len(orders) > 0 {
		max = orders[len(orders)-1]
	}
	for len(cards) < MinCards {
		max++
		cards = append(cards, NewCard(dayKey, max))
	}

	return cards
}

// normalize defaults a card against the empty-card template and pins it
// to its slot.
func normalize(card Card, dayKey string, order int) Card {
	if card.LocalID == "" {
		card.LocalID = NewCard(dayKey, order).LocalID
	}
	if card.ImageURLs == nil {
		card.ImageURLs = []string{}
	}
	if card.VoiceURLs == nil {
		card.VoiceURLs = []string{}
	}
	card.DateKey = dayKey
	card.Order = order
	return card
}
