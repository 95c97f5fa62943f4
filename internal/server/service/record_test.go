package service_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/acrennan/daybook/internal/database"
	"github.com/acrennan/daybook/internal/model"
	"github.com/acrennan/daybook/internal/server/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup() (records *service.Records, db database.Client, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "daybook.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err = database.StormOpen(filename)
	if err != nil {
		panic(err)
	}

	return service.NewRecords(db), db, func() {
		db.Close()
		os.RemoveAll(filename)
	}
}

func record(t *testing.T, res service.Result) *model.Record {
	t.Helper()
	require.Equal(t, service.CodeSuccess, res.Code, res.Message)
	r, ok := res.Data.(*model.Record)
	require.True(t, ok, "result data should hold a record")
	return r
}

func page(t *testing.T, res service.Result) []*model.Record {
	t.Helper()
	require.Equal(t, service.CodeSuccess, res.Code, res.Message)
	rs, ok := res.Data.([]*model.Record)
	require.True(t, ok, "result data should hold records")
	return rs
}

func TestRecordsCreateSanitizes(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	res := records.Create(model.CollectionHappiness, "alice", service.RecordParams{
		Content: "a good day",
	})
	r := record(t, res)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "alice", r.Owner)
	assert.Equal(t, []string{}, r.ImageURLs)
	assert.Equal(t, []string{}, r.VoiceURLs)
	assert.Nil(t, r.Location)
	assert.Equal(t, 1, r.Order)
	assert.NotNil(t, r.CreatedAt)
	assert.Equal(t, *r.CreatedAt, *r.UpdatedAt)
}

func TestRecordsCreateCapsMediaRefs(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	res := records.Create(model.CollectionHappiness, "alice", service.RecordParams{
		Content:   "too many pictures",
		ImageURLs: []string{"a", "b", "c", "d", "e"},
		VoiceURLs: []string{"v1", "v2", "v3", "v4"},
	})
	r := record(t, res)

	assert.Equal(t, []string{"a", "b", "c"}, r.ImageURLs)
	assert.Equal(t, []string{"v1", "v2", "v3"}, r.VoiceURLs)
}

func TestRecordsCreateInvalidCollection(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	res := records.Create("sales", "alice", service.RecordParams{Content: "nope"})
	assert.Equal(t, service.CodeFailure, res.Code)
	assert.Equal(t, "invalid collection name", res.Message)
}

func TestRecordsListClampsAndPaginates(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	for i := 1; i <= 25; i++ {
		record(t, records.Create(model.CollectionHappiness, "alice", service.RecordParams{
			Content: fmt.Sprintf("entry %02d", i),
		}))
	}

	res := records.List(model.CollectionHappiness, "alice", 0, 999)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, service.MaxLimit, res.Limit)

	res = records.List(model.CollectionHappiness, "alice", 2, 10)
	rs := page(t, res)
	require.Len(t, rs, 10)
	assert.Equal(t, "entry 15", rs[0].Content)
	assert.Equal(t, "entry 06", rs[9].Content)

	res = records.List(model.CollectionHappiness, "alice", 3, 10)
	assert.Len(t, page(t, res), 5)

	// An empty page is not an error.
	res = records.List(model.CollectionHappiness, "alice", 9, 10)
	assert.Empty(t, page(t, res))
}

func TestRecordsDetailDoesNotLeakAcrossOwners(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	r := record(t, records.Create(model.CollectionHappiness, "alice", service.RecordParams{
		Content: "private entry",
	}))

	res := records.Detail(model.CollectionHappiness, "bob", r.ID)
	assert.Equal(t, service.CodeFailure, res.Code)
	assert.Equal(t, "record not found", res.Message)

	// Same failure as a genuinely missing record.
	missing := records.Detail(model.CollectionHappiness, "bob", "no-such-id")
	assert.Equal(t, res.Message, missing.Message)
}

func TestRecordsDeleteNotFound(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	res := records.Delete(model.CollectionHappiness, "alice", "no-such-id")
	assert.Equal(t, service.CodeFailure, res.Code)
	assert.Equal(t, "record not found", res.Message)

	r := record(t, records.Create(model.CollectionHappiness, "alice", service.RecordParams{
		Content: "doomed",
	}))
	res = records.Delete(model.CollectionHappiness, "alice", r.ID)
	assert.Equal(t, service.CodeSuccess, res.Code)

	res = records.Delete(model.CollectionHappiness, "alice", r.ID)
	assert.Equal(t, service.CodeFailure, res.Code)
}

func TestRecordsRandom(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	res := records.Random(model.CollectionHappiness, "alice")
	assert.Equal(t, service.CodeFailure, res.Code)
	assert.Equal(t, "no records yet", res.Message)

	for i := 0; i < 5; i++ {
		record(t, records.Create(model.CollectionHappiness, "alice", service.RecordParams{
			Content: fmt.Sprintf("alice %d", i),
		}))
	}
	record(t, records.Create(model.CollectionHappiness, "bob", service.RecordParams{
		Content: "bob only",
	}))

	for i := 0; i < 20; i++ {
		r := record(t, records.Random(model.CollectionHappiness, "alice"))
		assert.Equal(t, "alice", r.Owner)
	}
}

func TestRecordsUpsertSlotResolution(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	order := 2
	first := record(t, records.Upsert(model.CollectionHappiness, "alice", service.RecordParams{
		Content: "a",
		DateKey: "2024-05-01",
		Order:   &order,
	}))
	assert.NotEmpty(t, first.ID)

	second := record(t, records.Upsert(model.CollectionHappiness, "alice", service.RecordParams{
		Content: "b",
		DateKey: "2024-05-01",
		Order:   &order,
	}))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "b", second.Content)

	day := page(t, records.ListByDay(model.CollectionHappiness, "alice", "2024-05-01"))
	require.Len(t, day, 1)
	assert.Equal(t, "b", day[0].Content)
}

func TestRecordsUpsertSlotIsOwnerScoped(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	order := 1
	alice := record(t, records.Upsert(model.CollectionHappiness, "alice", service.RecordParams{
		Content: "alice's card",
		DateKey: "2024-05-01",
		Order:   &order,
	}))
	bob := record(t, records.Upsert(model.CollectionHappiness, "bob", service.RecordParams{
		Content: "bob's card",
		DateKey: "2024-05-01",
		Order:   &order,
	}))

	assert.NotEqual(t, alice.ID, bob.ID)
}

func TestRecordsUpsertByIDIdempotence(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	order := 1
	params := service.RecordParams{
		Content:   "same entry",
		ImageURLs: []string{"img"},
		VoiceURLs: []string{"voice"},
		Location:  &model.Location{Lat: 48.85, Lng: 2.35},
		DateKey:   "2024-05-01",
		Order:     &order,
	}

	first := record(t, records.Upsert(model.CollectionHappiness, "alice", params))
	created := *first.CreatedAt
	updated := *first.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	params.ID = first.ID
	second := record(t, records.Upsert(model.CollectionHappiness, "alice", params))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "same entry", second.Content)
	assert.Equal(t, []string{"img"}, second.ImageURLs)
	assert.Equal(t, []string{"voice"}, second.VoiceURLs)
	assert.Equal(t, &model.Location{Lat: 48.85, Lng: 2.35}, second.Location)
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, created, *second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(updated))
}

func TestRecordsUpsertByIDNotFound(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	res := records.Upsert(model.CollectionHappiness, "alice", service.RecordParams{
		ID:      "no-such-id",
		Content: "orphan",
	})
	assert.Equal(t, service.CodeFailure, res.Code)
	assert.Equal(t, "record not found", res.Message)
}

func TestRecordsUpsertPreservesLocation(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	order := 1
	first := record(t, records.Upsert(model.CollectionHappiness, "alice", service.RecordParams{
		Content:  "located",
		Location: &model.Location{Lat: 1, Lng: 2},
		DateKey:  "2024-05-01",
		Order:    &order,
	}))

	// Location is kept when not resupplied...
	second := record(t, records.Upsert(model.CollectionHappiness, "alice", service.RecordParams{
		ID:      first.ID,
		Content: "still located",
		DateKey: "2024-05-01",
		Order:   &order,
	}))
	assert.Equal(t, &model.Location{Lat: 1, Lng: 2}, second.Location)

	// ...and replaced when it is.
	third := record(t, records.Upsert(model.CollectionHappiness, "alice", service.RecordParams{
		ID:       first.ID,
		Content:  "moved",
		Location: &model.Location{Lat: 3, Lng: 4},
		DateKey:  "2024-05-01",
		Order:    &order,
	}))
	assert.Equal(t, &model.Location{Lat: 3, Lng: 4}, third.Location)
}

func TestRecordsListByDayOrdering(t *testing.T) {
	records, _, cleanup := setup()
	defer cleanup()

	for _, order := range []int{3, 1, 2} {
		o := order
		record(t, records.Upsert(model.CollectionFortune, "alice", service.RecordParams{
			Content: fmt.Sprintf("slot %d", order),
			DateKey: "2024-05-01",
			Order:   &o,
		}))
	}

	day := page(t, records.ListByDay(model.CollectionFortune, "alice", "2024-05-01"))
	require.Len(t, day, 3)
	assert.Equal(t, "slot 1", day[0].Content)
	assert.Equal(t, "slot 2", day[1].Content)
	assert.Equal(t, "slot 3", day[2].Content)
}
