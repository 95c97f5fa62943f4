package libdaybook

const (
	// CollectionHappiness holds the daily happiness entries.
	CollectionHappiness = "happiness_records"
	// CollectionFortune holds the fortune/reflection entries.
	CollectionFortune = "fortune_records"
)

type (
	// A Location is a coordinate pair attached to a record.
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}

	// A Record represents a rendered diary entry.
	Record struct {
		ID        string    `json:"id"`
		Owner     string    `json:"owner"`
		Content   string    `json:"content"`
		ImageURLs []string  `json:"image_urls"`
		VoiceURLs []string  `json:"voice_urls"`
		Location  *Location `json:"location"`
		DateKey   string    `json:"date_key"`
		Order     int       `json:"order"`
		CreatedAt string    `json:"created_at"`
		UpdatedAt string    `json:"updated_at"`
	}

	// RecordParams are the caller-supplied fields sent to the create and
	// upsert operations. A zero Order means "unspecified"; the server
	// defaults it to slot 1.
	RecordParams struct {
		ID        string    `json:"id,omitempty"`
		Content   string    `json:"content"`
		ImageURLs []string  `json:"image_urls"`
		VoiceURLs []string  `json:"voice_urls"`
		Location  *Location `json:"location,omitempty"`
		DateKey   string    `json:"date_key"`
		Order     *int      `json:"order,omitempty"`
	}
)
