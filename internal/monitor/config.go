package monitor

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeFormat is the table timestamp layout when none is configured.
const DefaultTimeFormat = "2006-01-02 15:04:05"

// MinTimeoutSeconds is the lowest accepted feed request timeout.
const MinTimeoutSeconds = 10

// MinRefreshSeconds is the lowest accepted refresh interval. USGS summary
// feeds regenerate every minute; polling faster is wasted traffic.
const MinRefreshSeconds = 60

// Config is the resolved, validated run configuration. It is built once
// at startup and treated as read-only afterwards; the only run-state that
// mutates during polling lives in Alarm and Gate.
type Config struct {
	FeedID  string
	FeedURL string

	RefreshSeconds int
	TimeoutSeconds int

	AlarmArgv          []string // empty = terminal bell
	AlarmMagnitude     float64  // 0 = no magnitude trigger
	alarmPagerTriggers map[PagerTier]bool

	Color      bool
	LocalTime  bool
	TimeFormat string
	GeoLink    bool
	Follow     bool
	RunOnce    bool

	// AcceptWarning pre-answers every large-result confirmation.
	AcceptWarning bool
}

// SetPagerTriggers records which PAGER tiers fire the alarm.
func (c *Config) SetPagerTriggers(tiers []PagerTier) {
	c.alarmPagerTriggers = make(map[PagerTier]bool, len(tiers))
	for _, t := range tiers {
		if t != PagerNone {
			c.alarmPagerTriggers[t] = true
		}
	}
}

// PagerTriggers reports whether the tier is in the alert trigger set.
func (c *Config) PagerTriggers(t PagerTier) bool {
	return c.alarmPagerTriggers[t]
}

// HasAlertTrigger reports whether any alarm condition is configured.
func (c *Config) HasAlertTrigger() bool {
	return c.AlarmMagnitude != 0 || len(c.alarmPagerTriggers) > 0
}

// Validate checks the cross-field invariants the flag layer cannot.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < MinTimeoutSeconds {
		return fmt.Errorf("timeout %ds is below the %ds minimum", c.TimeoutSeconds, MinTimeoutSeconds)
	}
	if err := validateTimeFormat(c.TimeFormat); err != nil {
		return err
	}
	return nil
}

// validateTimeFormat accepts a layout iff a reference time formatted with
// it parses back. Go layouts have no grammar to check directly; the
// round-trip rejects garbage like "%Y-%m-%d" and empty layouts.
func validateTimeFormat(layout string) error {
	if strings.TrimSpace(layout) == "" {
		return fmt.Errorf("time format must not be empty")
	}
	// Any probe time works as long as it is not the layout reference
	// time itself, so a real layout never formats to its own text.
	ref := time.Date(2021, time.August, 9, 17, 46, 31, 0, time.UTC)
	formatted := ref.Format(layout)
	if formatted == layout {
		// A layout with no reference components (e.g. strftime syntax)
		// formats to itself and would print a constant string.
		return fmt.Errorf("time format %q has no time components (see the time package reference layout %q)", layout, DefaultTimeFormat)
	}
	if _, err := time.Parse(layout, formatted); err != nil {
		return fmt.Errorf("time format %q is not a valid Go layout (see the time package reference layout %q)", layout, DefaultTimeFormat)
	}
	return nil
}

// ParsePagerTiers converts user-supplied tier names into PagerTiers.
// Names match case-insensitively; anything outside the four tiers is a
// configuration error.
func ParsePagerTiers(names []string) ([]PagerTier, error) {
	tiers := make([]PagerTier, 0, len(names))
	for _, name := range names {
		t := ClassifyPager(strings.TrimSpace(name))
		if t == PagerNone {
			return nil, fmt.Errorf("unknown pager tier %q (valid: green, yellow, orange, red)", name)
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}

// ---------------------------------------------------------------------------
// Optional YAML defaults file. Flags always win over file values.
// ---------------------------------------------------------------------------

// FileConfig mirrors the YAML defaults file.
type FileConfig struct {
	Refresh    string   `yaml:"refresh"`
	Timeout    int      `yaml:"timeout"`
	Alarm      string   `yaml:"alarm"`
	Magnitude  float64  `yaml:"magnitude"`
	Pager      []string `yaml:"pager"`
	LocalTime  bool     `yaml:"localtime"`
	TimeFormat string   `yaml:"time_format"`
	GeoLink    bool     `yaml:"geo_link"`
	Color      string   `yaml:"color"` // auto|always|never
	LogLevel   string   `yaml:"log_level"`
}

// DefaultFileConfig returns the built-in defaults.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Refresh:    "5m",
		Timeout:    30,
		TimeFormat: DefaultTimeFormat,
		Color:      "auto",
		LogLevel:   "warn",
	}
}

// LoadFileConfig reads a YAML defaults file over the built-in defaults.
// An empty path or a missing file yields the defaults unchanged.
func LoadFileConfig(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
