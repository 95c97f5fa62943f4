package database

import (
	"time"

	"github.com/acrennan/daybook/internal/model"
	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
)

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, collection := range model.Collections {
		if err := db.From(collection).Init(&model.Record{}); err != nil {
			return errors.Wrapf(err, "could not init %s index", collection)
		}
	}
	return nil
}

// StormReIndex reindex Storm database.
func StormReIndex(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	for _, collection := range model.Collections {
		if err := db.From(collection).ReIndex(&model.Record{}); err != nil {
			return errors.Wrapf(err, "could not ReIndex %s", collection)
		}
	}
	return nil
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsInvalidCollection returns true if err denotes a collection name outside the allow-list.
func (c *strm) IsInvalidCollection(err error) bool {
	return errors.Cause(err) == ErrInvalidCollection
}

// node returns the Storm node holding the given collection.
func (c *strm) node(collection string) (storm.Node, error) {
	if !model.ValidCollection(collection) {
		return nil, errors.Wrap(ErrInvalidCollection, collection)
	}
	return c.db.From(collection), nil
}

// SaveRecord inserts or updates the record in the given collection.
func (c *strm) SaveRecord(collection string, r *model.Record) error {
	node, err := c.node(collection)
	if err != nil {
		return err
	}

	t := time.Now().UTC()
	r.SetUpdatedAt(t)

	if r.GetID() == "" {
		r.SetID(uuid.Must(uuid.NewV4()).String())
		r.SetCreatedAt(t)
	}

	return errors.Wrap(node.Save(r), "could not save the record")
}

// FindRecord returns the record for the given owner and id.
func (c *strm) FindRecord(collection, owner, id string) (*model.Record, error) {
	node, err := c.node(collection)
	if err != nil {
		return nil, err
	}

	var record model.Record
	err = node.Select(q.Eq("ID", id), q.Eq("Owner", owner)).First(&record)
	return normalize(&record), errors.Wrap(err, "could not find record by owner")
}

// FindRecordsByOwner returns a page of the owner's records ordered by creation date descending.
func (c *strm) FindRecordsByOwner(collection, owner string, page, limit int) ([]*model.Record, error) {
	node, err := c.node(collection)
	if err != nil {
		return nil, err
	}

	records := make([]*model.Record, 0)
	err = node.Select(q.Eq("Owner", owner)).
		OrderBy("CreatedAt").Reverse().
		Skip((page - 1) * limit).Limit(limit).
		Find(&records)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find records by owner")
	}
	for _, record := range records {
		normalize(record)
	}
	return records, nil
}

// FindRecordsByDateKey returns all the owner's records of one calendar day,
// ordered by slot then creation date.
func (c *strm) FindRecordsByDateKey(collection, owner, dateKey string) ([]*model.Record, error) {
	node, err := c.node(collection)
	if err != nil {
		return nil, err
	}

	records := make([]*model.Record, 0)
	err = node.Select(q.Eq("Owner", owner), q.Eq("DateKey", dateKey)).
		OrderBy("Order", "CreatedAt").
		Find(&records)
	if err != nil && !c.IsNotFound(err) {
		return nil, errors.Wrap(err, "could not find records by date key")
	}
	for _, record := range records {
		normalize(record)
	}
	return records, nil
}

// FindRecordBySlot returns the record occupying (dateKey, order), if any.
func (c *strm) FindRecordBySlot(collection, owner, dateKey string, order int) (*model.Record, error) {
	node, err := c.node(collection)
	if err != nil {
		return nil, err
	}

	var record model.Record
	err = node.Select(q.Eq("Owner", owner), q.Eq("DateKey", dateKey), q.Eq("Order", order)).First(&record)
	return normalize(&record), errors.Wrap(err, "could not find record by slot")
}

// CountRecordsByOwner returns the total number of the owner's records.
func (c *strm) CountRecordsByOwner(collection, owner string) (int, error) {
	node, err := c.node(collection)
	if err != nil {
		return 0, err
	}

	count, err := node.Select(q.Eq("Owner", owner)).Count(&model.Record{})
	return count, errors.Wrap(err, "could not count records by owner")
}

// normalize pins the record's decoded timestamps back to UTC.
// The msgpack codec decodes time values in the server's local zone,
// which would make loaded timestamps compare unequal to the UTC values
// stamped by SaveRecord.
func normalize(r *model.Record) *model.Record {
	if r.CreatedAt != nil {
		t := r.CreatedAt.UTC()
		r.CreatedAt = &t
	}
	if r.UpdatedAt != nil {
		t := r.UpdatedAt.UTC()
		r.UpdatedAt = &t
	}
	return r
}

// DeleteRecord deletes the record matching both id and owner.
func (c *strm) DeleteRecord(collection, owner, id string) error {
	node, err := c.node(collection)
	if err != nil {
		return err
	}

	err = node.Select(q.Eq("ID", id), q.Eq("Owner", owner)).Delete(&model.Record{})
	return errors.Wrap(err, "could not delete record")
}
