package database

import (
	"github.com/acrennan/daybook/internal/model"
	"github.com/pkg/errors"
)

// ErrInvalidCollection is returned when a collection name is not allow-listed.
var ErrInvalidCollection = errors.New("invalid collection name")

type (
	// A Client can interacts with the database.
	Client interface {
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsInvalidCollection returns true if err denotes a collection
		// name outside the allow-list.
		IsInvalidCollection(err error) bool

		RecordInteraction
	}

	// A RecordInteraction defines all the methods used to interact with
	// record(s) of an allow-listed collection. Every method is scoped by
	// owner; no call can return or mutate another owner's records.
	RecordInteraction interface {
		// SaveRecord inserts or updates the record in the given collection.
		// A record without ID gets a fresh UUID and its creation date;
		// the update date is refreshed on every save.
		SaveRecord(collection string, r *model.Record) error
		// FindRecord returns the record for the given owner and id.
		FindRecord(collection, owner, id string) (*model.Record, error)
		// FindRecordsByOwner returns a page of the owner's records ordered
		// by creation date descending. page starts at 1.
		FindRecordsByOwner(collection, owner string, page, limit int) ([]*model.Record, error)
		// FindRecordsByDateKey returns all the owner's records of one
		// calendar day, ordered by slot then creation date.
		FindRecordsByDateKey(collection, owner, dateKey string) ([]*model.Record, error)
		// FindRecordBySlot returns the record occupying (dateKey, order),
		// if any.
		FindRecordBySlot(collection, owner, dateKey string, order int) (*model.Record, error)
		// CountRecordsByOwner returns the total number of the owner's records.
		CountRecordsByOwner(collection, owner string) (int, error)
		// DeleteRecord deletes the record matching both id and owner.
		// It returns a not found error when nothing matches.
		DeleteRecord(collection, owner, id string) error
	}
)
