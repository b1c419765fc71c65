package feed

// Event is one earthquake record from a USGS GeoJSON summary feed.
// It is a read-only snapshot: built once per poll, rendered, discarded.
type Event struct {
	ID         string
	TimeMillis int64 // epoch milliseconds, UTC
	Magnitude  float64
	Place      string
	Alert      string // PAGER code ("green".."red") or "" when absent
	DetailURL  string
	Tsunami    bool
	Longitude  float64
	Latitude   float64
	DepthKm    float64
}

// Snapshot is the parsed result of one feed fetch.
type Snapshot struct {
	Title  string
	Events []Event
}
