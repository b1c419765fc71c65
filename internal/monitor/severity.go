package monitor

import "strings"

// ---------------------------------------------------------------------------
// severity.go — magnitude and PAGER classification.
//
// Two independent ladders: magnitude bands color the MAG column, PAGER
// codes color the PAGER column. Both are static and defined at init.
// ---------------------------------------------------------------------------

// ANSI SGR codes used by the classifiers and the renderer.
const (
	ansiReset     = "\033[0m"
	ansiBoldRed   = "\033[1;91m"
	ansiBrightRed = "\033[91m"
	ansiRed       = "\033[31m"
	ansiBrightYel = "\033[93m"
	ansiYellow    = "\033[33m"
	ansiBrightCyn = "\033[96m"
	ansiCyan      = "\033[36m"
	ansiGreen     = "\033[32m"
	ansiDim       = "\033[90m"
	ansiBold      = "\033[1m"
)

// MagTier is a display tier for a magnitude value. Tier 0 is the most
// severe; TierNone means below every band (no color).
type MagTier int

// TierNone marks a magnitude below the lowest band.
const TierNone MagTier = -1

// magBands is the threshold ladder, highest bound first. The first band
// whose bound the magnitude meets (inclusive) wins.
var magBands = []struct {
	Bound float64
	Color string
}{
	{8.5, ansiBoldRed},
	{7.5, ansiBrightRed},
	{6.5, ansiRed},
	{5.5, ansiBrightYel},
	{4.5, ansiYellow},
	{3.5, ansiBrightCyn},
	{2.5, ansiCyan},
	{1.5, ansiGreen},
}

// ClassifyMagnitude maps a magnitude to its display tier.
func ClassifyMagnitude(mag float64) MagTier {
	for i, band := range magBands {
		if mag >= band.Bound {
			return MagTier(i)
		}
	}
	return TierNone
}

// Color returns the tier's ANSI code, or "" for TierNone.
func (t MagTier) Color() string {
	if t < 0 || int(t) >= len(magBands) {
		return ""
	}
	return magBands[t].Color
}

// PagerTier is a classified USGS PAGER alert code.
type PagerTier int

const (
	PagerNone PagerTier = iota
	PagerGreen
	PagerYellow
	PagerOrange
	PagerRed
)

// ClassifyPager matches a raw alert code case-insensitively against the
// four PAGER tiers. Anything else, including the empty string, is
// PagerNone and renders as a dash.
func ClassifyPager(code string) PagerTier {
	switch strings.ToLower(code) {
	case "red":
		return PagerRed
	case "orange":
		return PagerOrange
	case "yellow":
		return PagerYellow
	case "green":
		return PagerGreen
	default:
		return PagerNone
	}
}

func (p PagerTier) String() string {
	switch p {
	case PagerRed:
		return "red"
	case PagerOrange:
		return "orange"
	case PagerYellow:
		return "yellow"
	case PagerGreen:
		return "green"
	default:
		return "none"
	}
}

// Color returns the tier's ANSI code, or "" for PagerNone.
func (p PagerTier) Color() string {
	switch p {
	case PagerRed:
		return ansiBrightRed
	case PagerOrange:
		return ansiYellow
	case PagerYellow:
		return ansiBrightYel
	case PagerGreen:
		return ansiGreen
	default:
		return ""
	}
}

// colorize wraps s in an SGR code and a reset. A missing code or disabled
// color returns s unchanged.
func colorize(s, code string, enabled bool) string {
	if !enabled || code == "" {
		return s
	}
	return code + s + ansiReset
}
