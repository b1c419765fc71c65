package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMagnitude_BoundariesInclusive(t *testing.T) {
	tests := []struct {
		mag  float64
		tier MagTier
	}{
		{9.9, 0},
		{8.5, 0},
		{8.499999, 1},
		{7.5, 1},
		{6.5, 2},
		{5.5, 3},
		{4.5, 4},
		{3.5, 5},
		{2.5, 6},
		{1.5, 7},
		{1.499999, TierNone},
		{0, TierNone},
		{-1.2, TierNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.tier, ClassifyMagnitude(tt.mag), "magnitude %v", tt.mag)
	}
}

// Tier index never decreases as magnitude decreases.
func TestClassifyMagnitude_Monotonic(t *testing.T) {
	prev := ClassifyMagnitude(10.0)
	for mag := 10.0; mag >= -2.0; mag -= 0.1 {
		tier := ClassifyMagnitude(mag)
		if tier == TierNone {
			// Everything below the lowest band stays unclassified.
			assert.LessOrEqual(t, mag, 1.5+1e-9)
			continue
		}
		assert.GreaterOrEqual(t, tier, prev, "magnitude %v", mag)
		prev = tier
	}
}

func TestClassifyMagnitude_TierColors(t *testing.T) {
	assert.NotEmpty(t, ClassifyMagnitude(8.5).Color())
	assert.NotEmpty(t, ClassifyMagnitude(1.5).Color())
	assert.Empty(t, TierNone.Color())
}

func TestClassifyPager(t *testing.T) {
	tests := []struct {
		code string
		want PagerTier
	}{
		{"red", PagerRed},
		{"RED", PagerRed},
		{"Orange", PagerOrange},
		{"yellow", PagerYellow},
		{"GrEeN", PagerGreen},
		{"", PagerNone},
		{"purple", PagerNone},
		{"none", PagerNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyPager(tt.code), "code %q", tt.code)
	}
}

func TestPagerTier_Color(t *testing.T) {
	for _, tier := range []PagerTier{PagerRed, PagerOrange, PagerYellow, PagerGreen} {
		assert.NotEmpty(t, tier.Color(), tier.String())
	}
	assert.Empty(t, PagerNone.Color())
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mhi\033[0m", colorize("hi", ansiRed, true))
	assert.Equal(t, "hi", colorize("hi", ansiRed, false))
	assert.Equal(t, "hi", colorize("hi", "", true))
}
