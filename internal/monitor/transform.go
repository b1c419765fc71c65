package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/ryan-steed-usa/usgs-quakemon/internal/feed"
)

// Transformer projects feed events into display rows under one Config.
// It is pure: the alarm decision itself lives in the poll loop.
type Transformer struct {
	cfg *Config
}

// NewTransformer creates a transformer bound to a resolved config.
func NewTransformer(cfg *Config) *Transformer {
	return &Transformer{cfg: cfg}
}

// Headers returns the table column headers for the current config.
func (t *Transformer) Headers() []string {
	h := []string{"TIME", "MAG", "PLACE", "PAGER", "TSUNAMI", "LINK"}
	if t.cfg.GeoLink {
		h = append(h, "GEO")
	}
	return h
}

// Row formats one event as table cells in header order.
func (t *Transformer) Row(ev feed.Event) []string {
	ts := time.UnixMilli(ev.TimeMillis)
	if t.cfg.LocalTime {
		ts = ts.Local()
	} else {
		ts = ts.UTC()
	}

	mag := colorize(
		fmt.Sprintf("%.2f", ev.Magnitude),
		ClassifyMagnitude(ev.Magnitude).Color(),
		t.cfg.Color,
	)

	pager := "-"
	if tier := ClassifyPager(ev.Alert); tier != PagerNone {
		pager = colorize(strings.ToUpper(tier.String()), tier.Color(), t.cfg.Color)
	}

	tsunami := "-"
	if ev.Tsunami {
		tsunami = colorize("YES", ansiBrightRed, t.cfg.Color)
	}

	row := []string{
		ts.Format(t.cfg.TimeFormat),
		mag,
		ev.Place,
		pager,
		tsunami,
		ev.DetailURL,
	}
	if t.cfg.GeoLink {
		row = append(row, geoURI(ev))
	}
	return row
}

// Qualifies reports whether the event meets an alarm trigger: magnitude
// at or above the configured threshold, or PAGER tier in the trigger set.
func (t *Transformer) Qualifies(ev feed.Event) bool {
	if t.cfg.AlarmMagnitude != 0 && ev.Magnitude >= t.cfg.AlarmMagnitude {
		return true
	}
	return t.cfg.PagerTriggers(ClassifyPager(ev.Alert))
}

// geoURI builds an RFC 5870 geo URI. USGS depth is km positive-down;
// the URI altitude is metres positive-up.
func geoURI(ev feed.Event) string {
	return fmt.Sprintf("geo:%g,%g,%g", ev.Latitude, ev.Longitude, -ev.DepthKm*1000)
}
