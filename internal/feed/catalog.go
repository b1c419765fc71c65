package feed

// ---------------------------------------------------------------------------
// catalog.go — the static unit × mode → feed selector table.
//
// USGS publishes one GeoJSON summary feed per (time window, threshold)
// pair. The catalog enumerates every combination up front so selector
// resolution is a map lookup, not string assembly at call sites.
// ---------------------------------------------------------------------------

import (
	"fmt"
	"sort"
	"strings"
)

// TimeUnit is the feed's time window.
type TimeUnit string

const (
	UnitHour  TimeUnit = "hour"
	UnitDay   TimeUnit = "day"
	UnitWeek  TimeUnit = "week"
	UnitMonth TimeUnit = "month"
)

// Mode is the feed's event-selection mode: a fixed magnitude floor, the
// editorially curated "significant" feed, or everything.
type Mode string

const (
	ModeMag45       Mode = "4.5"
	ModeMag25       Mode = "2.5"
	ModeMag10       Mode = "1.0"
	ModeSignificant Mode = "significant"
	ModeAll         Mode = "all"
)

// Units and Modes list every valid value, in display order.
var (
	Units = []TimeUnit{UnitHour, UnitDay, UnitWeek, UnitMonth}
	Modes = []Mode{ModeMag45, ModeMag25, ModeMag10, ModeSignificant, ModeAll}
)

const summaryBaseURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary"

// DefaultFeedID is used when no selector flag is supplied.
const DefaultFeedID = "significant_day"

type catalogEntry struct {
	id   string // selector key, e.g. "day45" or "significant_week"
	slug string // USGS summary file name, e.g. "4.5_day"
	warn bool   // selection expected to return a large result set
}

// catalog maps feed id → entry. Built once at init from Units × Modes.
var catalog = buildCatalog()

func buildCatalog() map[string]catalogEntry {
	m := make(map[string]catalogEntry, len(Units)*len(Modes))
	for _, unit := range Units {
		for _, mode := range Modes {
			e := catalogEntry{
				id:   FeedID(unit, mode),
				slug: feedSlug(unit, mode),
				warn: needsWarning(unit, mode),
			}
			if _, dup := m[e.id]; dup {
				panic(fmt.Sprintf("feed catalog: duplicate id %q", e.id))
			}
			m[e.id] = e
		}
	}
	return m
}

// FeedID returns the selector key for a (unit, mode) pair. Fixed-threshold
// modes use the compact "<unit><mag*10>" form ("day45"); significant and
// all use "<mode>_<unit>" ("significant_day").
func FeedID(unit TimeUnit, mode Mode) string {
	switch mode {
	case ModeMag45, ModeMag25, ModeMag10:
		return string(unit) + strings.ReplaceAll(string(mode), ".", "")
	default:
		return string(mode) + "_" + string(unit)
	}
}

// feedSlug returns the USGS summary file name for a (unit, mode) pair.
func feedSlug(unit TimeUnit, mode Mode) string {
	return string(mode) + "_" + string(unit)
}

// needsWarning reports whether a selection is expected to return a large
// result volume. Week and month windows always warn, as does the "all"
// mode for any window past an hour. For day feeds only the 1.0 threshold
// warns; 2.5 and 4.5 day queries do not.
func needsWarning(unit TimeUnit, mode Mode) bool {
	switch unit {
	case UnitWeek, UnitMonth:
		return true
	case UnitDay:
		return mode == ModeMag10 || mode == ModeAll
	default:
		return false
	}
}

// URL returns the full GeoJSON URL for a known feed id.
func URL(feedID string) (string, error) {
	e, ok := catalog[feedID]
	if !ok {
		return "", fmt.Errorf("unknown feed id %q", feedID)
	}
	return fmt.Sprintf("%s/%s.geojson", summaryBaseURL, e.slug), nil
}

// NeedsWarning reports whether the feed id's result volume warrants an
// interactive confirmation before the first fetch.
func NeedsWarning(feedID string) bool {
	e, ok := catalog[feedID]
	return ok && e.warn
}

// IDs returns every feed id in the catalog, sorted.
func IDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
