package main

// ---------------------------------------------------------------------------
// flags.go — CLI flag definitions and feed selector resolution
// ---------------------------------------------------------------------------

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ryan-steed-usa/usgs-quakemon/internal/feed"
)

// stringList collects repeated or comma-separated flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			*s = append(*s, p)
		}
	}
	return nil
}

type options struct {
	config        string
	alarm         string
	pager         stringList
	magnitude     float64
	follow        bool
	geoLink       bool
	localtime     bool
	refresh       string
	runOnce       bool
	timeout       int
	timeFormat    string
	colorOn       bool
	colorOff      bool
	acceptWarning bool
	logLevel      string
	listFeeds     bool
	showVersion   bool

	selectors []selector
	given     map[string]bool // flag names present on the command line
}

// selector binds one feed selector flag to its (unit, mode) pair.
type selector struct {
	name string
	unit feed.TimeUnit
	mode feed.Mode
	on   *bool
}

// selectorFlagName is e.g. "day-45", "week-significant", "month-all".
func selectorFlagName(unit feed.TimeUnit, mode feed.Mode) string {
	return string(unit) + "-" + strings.ReplaceAll(string(mode), ".", "")
}

// parseArgs parses the command line. Short and long spellings share one
// destination, so either counts as "given".
func parseArgs(args []string, output io.Writer) (*options, error) {
	o := &options{given: map[string]bool{}}

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { printUsage(output) }

	fs.StringVar(&o.alarm, "a", "", "alarm command")
	fs.StringVar(&o.alarm, "alarm", "", "alarm command")
	fs.Var(&o.pager, "p", "pager tiers")
	fs.Var(&o.pager, "pager", "pager tiers")
	fs.Float64Var(&o.magnitude, "m", 0, "alarm magnitude threshold")
	fs.Float64Var(&o.magnitude, "magnitude", 0, "alarm magnitude threshold")
	fs.BoolVar(&o.follow, "f", false, "follow mode")
	fs.BoolVar(&o.follow, "follow", false, "follow mode")
	fs.BoolVar(&o.geoLink, "g", false, "geo link column")
	fs.BoolVar(&o.geoLink, "geo-link", false, "geo link column")
	fs.BoolVar(&o.localtime, "l", false, "local time")
	fs.BoolVar(&o.localtime, "localtime", false, "local time")
	fs.StringVar(&o.refresh, "r", "", "refresh interval")
	fs.StringVar(&o.refresh, "refresh", "", "refresh interval")
	fs.BoolVar(&o.runOnce, "ro", false, "run once")
	fs.BoolVar(&o.runOnce, "run-once", false, "run once")
	fs.IntVar(&o.timeout, "t", 0, "request timeout seconds")
	fs.IntVar(&o.timeout, "timeout", 0, "request timeout seconds")
	fs.StringVar(&o.timeFormat, "time-format", "", "time layout")
	fs.BoolVar(&o.colorOn, "color", false, "force color")
	fs.BoolVar(&o.colorOff, "no-color", false, "disable color")
	fs.BoolVar(&o.acceptWarning, "accept-warning", false, "accept large-result warnings")
	fs.StringVar(&o.config, "config", "", "config file path")
	fs.StringVar(&o.logLevel, "log-level", "", "log level")
	fs.BoolVar(&o.listFeeds, "list-feeds", false, "list feed selectors")
	fs.BoolVar(&o.showVersion, "version", false, "print version")

	for _, unit := range feed.Units {
		for _, mode := range feed.Modes {
			sel := selector{
				name: selectorFlagName(unit, mode),
				unit: unit,
				mode: mode,
				on:   new(bool),
			}
			fs.BoolVar(sel.on, sel.name, false, "feed selector")
			o.selectors = append(o.selectors, sel)
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	fs.Visit(func(f *flag.Flag) { o.given[f.Name] = true })
	return o, nil
}

// has reports whether any of the flag spellings was given.
func (o *options) has(names ...string) bool {
	for _, n := range names {
		if o.given[n] {
			return true
		}
	}
	return false
}

// feedSelection resolves the selector flags to a feed id. No selector
// means the default feed; more than one is a configuration error.
func (o *options) feedSelection() (string, error) {
	id := feed.DefaultFeedID
	var picked []string
	for _, sel := range o.selectors {
		if *sel.on {
			picked = append(picked, "--"+sel.name)
			id = feed.FeedID(sel.unit, sel.mode)
		}
	}
	if len(picked) > 1 {
		return "", fmt.Errorf("feed selectors are mutually exclusive, got %s", strings.Join(picked, ", "))
	}
	return id, nil
}
