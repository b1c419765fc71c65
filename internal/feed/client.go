package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client fetches and decodes USGS GeoJSON summary feeds.
type Client struct {
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a feed client. The timeout covers the whole request,
// connect through body read.
func NewClient(timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		http:   &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "feed_client").Logger(),
	}
}

// geoJSON wire types. Only the fields quakemon displays are decoded.
type featureCollection struct {
	Metadata struct {
		Title string `json:"title"`
	} `json:"metadata"`
	Features []struct {
		ID         string `json:"id"`
		Properties struct {
			Mag     *float64 `json:"mag"`
			Place   string   `json:"place"`
			Time    int64    `json:"time"`
			URL     string   `json:"url"`
			Alert   *string  `json:"alert"`
			Tsunami int      `json:"tsunami"`
		} `json:"properties"`
		Geometry struct {
			// GeoJSON order: [longitude, latitude, depth-km]
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Fetch downloads one feed and converts it to a Snapshot.
func (c *Client) Fetch(ctx context.Context, url string) (Snapshot, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Snapshot{}, fmt.Errorf("feed returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return Snapshot{}, fmt.Errorf("decoding feed: %w", err)
	}

	snap := Snapshot{
		Title:  fc.Metadata.Title,
		Events: make([]Event, 0, len(fc.Features)),
	}
	for _, f := range fc.Features {
		ev := Event{
			ID:         f.ID,
			TimeMillis: f.Properties.Time,
			Place:      f.Properties.Place,
			DetailURL:  f.Properties.URL,
			Tsunami:    f.Properties.Tsunami != 0,
		}
		if f.Properties.Mag != nil {
			ev.Magnitude = *f.Properties.Mag
		}
		if f.Properties.Alert != nil {
			ev.Alert = *f.Properties.Alert
		}
		if len(f.Geometry.Coordinates) >= 3 {
			ev.Longitude = f.Geometry.Coordinates[0]
			ev.Latitude = f.Geometry.Coordinates[1]
			ev.DepthKm = f.Geometry.Coordinates[2]
		}
		snap.Events = append(snap.Events, ev)
	}

	c.logger.Debug().
		Str("url", url).
		Int("events", len(snap.Events)).
		Dur("elapsed", time.Since(start)).
		Msg("feed fetched")

	return snap, nil
}
