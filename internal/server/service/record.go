package service

import (
	"math/rand"

	"github.com/acrennan/daybook/internal/database"
	"github.com/acrennan/daybook/internal/fault"
	"github.com/acrennan/daybook/internal/model"
)

// Pagination bounds applied to list operations.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// MaxMediaRefs caps the number of media references per record. The cap is
// enforced by truncation so that over-long client payloads are normalized
// instead of rejected.
const MaxMediaRefs = 3

// RecordParams are the caller-supplied fields of a record, used by the
// create and upsert operations.
type RecordParams struct {
	ID        string          `json:"id,omitempty"`
	Content   string          `json:"content"`
	ImageURLs []string        `json:"image_urls"`
	VoiceURLs []string        `json:"voice_urls"`
	Location  *model.Location `json:"location"`
	DateKey   string          `json:"date_key"`
	Order     *int            `json:"order"`
}

// A Records service translates typed application intents into repository
// calls, with input sanitization and pagination policy.
type Records struct {
	db database.Client
	// intn picks a uniformly random integer in [0, n). Extracted so
	// tests can pin the offset.
	intn func(n int) int
}

// NewRecords instantiates a new Records service.
func NewRecords(db database.Client) *Records {
	return &Records{
		db:   db,
		intn: rand.Intn,
	}
}

// Create stores a new sanitized record stamped with the given owner.
func (s *Records) Create(collection, owner string, params RecordParams) Result {
	record := &model.Record{Owner: owner}
	apply(record, params)

	if err := s.db.SaveRecord(collection, record); err != nil {
		return s.failure("could not create the record", err)
	}
	return success("record created", record)
}

// List returns one page of the owner's records, newest first.
// page is clamped to >= 1 and limit to [1, MaxLimit].
func (s *Records) List(collection, owner string, page, limit int) Result {
	page = max(1, page)
	limit = min(MaxLimit, max(1, limit))

	records, err := s.db.FindRecordsByOwner(collection, owner, page, limit)
	if err != nil {
		return s.failure("could not list the records", err)
	}

	res := success("ok", records)
	res.Page = page
	res.Limit = limit
	return res
}

// Detail returns a single record. A record that does not exist and a
// record owned by somebody else yield the same not found result.
func (s *Records) Detail(collection, owner, id string) Result {
	record, err := s.db.FindRecord(collection, owner, id)
	if err != nil {
		return s.failure("could not get the record", err)
	}
	return success("ok", record)
}

// Delete removes the owner's record. Zero affected records is a not
// found failure, not a silent success.
func (s *Records) Delete(collection, owner, id string) Result {
	if err := s.db.DeleteRecord(collection, owner, id); err != nil {
		return s.failure("could not delete the record", err)
	}
	return success("record deleted", nil)
}

// Random returns one of the owner's records picked uniformly at random.
// It counts then reads at a random offset, which is O(n) on the store:
// fine at personal-journal scale, not a pattern to reuse on large
// collections.
func (s *Records) Random(collection, owner string) Result {
	total, err := s.db.CountRecordsByOwner(collection, owner)
	if err != nil {
		return s.failure("could not pick a record", err)
	}
	if total == 0 {
		return failure(fault.NoRecords())
	}

	skip := s.intn(total)
	records, err := s.db.FindRecordsByOwner(collection, owner, skip+1, 1)
	if err != nil {
		return s.failure("could not pick a record", err)
	}
	if len(records) == 0 {
		return failure(fault.NotFound())
	}
	return success("ok", records[0])
}

// ListByDay returns all the owner's records of one calendar day, ordered
// by slot then creation date.
func (s *Records) ListByDay(collection, owner, dateKey string) Result {
	records, err := s.db.FindRecordsByDateKey(collection, owner, dateKey)
	if err != nil {
		return s.failure("could not list the day records", err)
	}
	return success("ok", records)
}

// Upsert saves a record through three mutually exclusive branches,
// evaluated in order:
//
//  1. params carry an id: update the record matching (owner, id).
//  2. a record occupies (owner, date_key, order): update it in place.
//     The slot acts as the record identity while the client does not
//     know the server id yet.
//  3. otherwise: insert a new record.
func (s *Records) Upsert(collection, owner string, params RecordParams) Result {
	if params.ID != "" {
		record, err := s.db.FindRecord(collection, owner, params.ID)
		if err != nil {
			return s.failure("could not update the record", err)
		}
		return s.save(collection, record, params, "record updated")
	}

	record, err := s.db.FindRecordBySlot(collection, owner, params.DateKey, orderOf(params))
	switch {
	case err == nil:
		return s.save(collection, record, params, "record updated")
	case s.db.IsNotFound(err):
		// Free slot, insert below.
	default:
		return s.failure("could not update the record", err)
	}

	record = &model.Record{Owner: owner}
	return s.save(collection, record, params, "record created")
}

func (s *Records) save(collection string, record *model.Record, params RecordParams, message string) Result {
	apply(record, params)
	if err := s.db.SaveRecord(collection, record); err != nil {
		return s.failure("could not save the record", err)
	}
	return success(message, record)
}

// failure normalizes a repository error into a Code -1 result.
func (s *Records) failure(message string, err error) Result {
	switch {
	case s.db.IsInvalidCollection(err):
		return failure(fault.InvalidCollection())
	case s.db.IsNotFound(err):
		return failure(fault.NotFound())
	default:
		return failure(fault.StoreUnavailable(message, err))
	}
}

// apply overwrites the record's caller-editable fields with the
// sanitized params. The location is only replaced when explicitly
// resupplied, except on a brand new record.
func apply(r *model.Record, p RecordParams) {
	r.Content = p.Content
	r.ImageURLs = sanitizeRefs(p.ImageURLs)
	r.VoiceURLs = sanitizeRefs(p.VoiceURLs)
	r.DateKey = p.DateKey
	r.Order = orderOf(p)

	if p.Location != nil || r.GetID() == "" {
		r.Location = p.Location
	}
}

func orderOf(p RecordParams) int {
	if p.Order == nil {
		return 1
	}
	return *p.Order
}

func sanitizeRefs(refs []string) []string {
	if refs == nil {
		return []string{}
	}
	if len(refs) > MaxMediaRefs {
		refs = refs[:MaxMediaRefs]
	}
	return refs
}
