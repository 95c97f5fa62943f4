package model

const (
	// CollectionHappiness holds the daily happiness entries.
	CollectionHappiness = "happiness_records"
	// CollectionFortune holds the fortune/reflection entries.
	CollectionFortune = "fortune_records"
)

// Collections is the allow-list of record collections.
// Any other collection name must be rejected before touching storage.
var Collections = []string{CollectionHappiness, CollectionFortune}

// ValidCollection returns true if the given name is an allow-listed collection.
func ValidCollection(name string) bool {
	for _, collection := range Collections {
		if collection == name {
			return true
		}
	}
	return false
}

// A Location is a coordinate pair attached to a record.
type Location struct {
	Lat float64 `json:"lat" msgpack:"lat"`
	Lng float64 `json:"lng" msgpack:"lng"`
}

// A Record represents a single diary entry and the rendered API response.
// DateKey groups the records of one calendar day; Order is the record's
// ordinal slot within that day. (Owner, DateKey, Order) holds at most one
// record at any time.
type Record struct {
	Base `msgpack:",inline" storm:"inline"`

	Owner     string    `json:"owner"      msgpack:"owner"      storm:"index"`
	Content   string    `json:"content"    msgpack:"content"`
	ImageURLs []string  `json:"image_urls" msgpack:"image_urls"`
	VoiceURLs []string  `json:"voice_urls" msgpack:"voice_urls"`
	Location  *Location `json:"location"   msgpack:"location"`
	DateKey   string    `json:"date_key"   msgpack:"date_key"   storm:"index"`
	Order     int       `json:"order"      msgpack:"order"`
}
