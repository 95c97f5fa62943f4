package client

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/acrennan/daybook/internal/client/draft"
	"github.com/pkg/errors"
)

// A FileStore is a DraftStore backed by a single JSON file mapping day
// keys to card lists.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a DraftStore persisting drafts at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// ReadDrafts returns the stored drafts of one calendar day.
func (s *FileStore) ReadDrafts(dayKey string) ([]draft.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, err := s.load()
	if err != nil {
		return nil, err
	}

	cards, ok := days[dayKey]
	if !ok {
		return []draft.Card{}, nil
	}
	return cards, nil
}

// WriteDrafts stores the drafts of one calendar day.
func (s *FileStore) WriteDrafts(dayKey string, cards []draft.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, err := s.load()
	if err != nil {
		return err
	}
	days[dayKey] = cards

	payload, err := json.Marshal(days)
	if err != nil {
		return errors.Wrap(err, "could not serialize drafts")
	}
	return errors.Wrap(os.WriteFile(s.path, payload, 0600), "could not store drafts")
}

func (s *FileStore) load() (map[string][]draft.Card, error) {
	days := make(map[string][]draft.Card)

	payload, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return days, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not read drafts file")
	}

	err = json.Unmarshal(payload, &days)
	return days, errors.Wrap(err, "could not parse drafts file")
}
