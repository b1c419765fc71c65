package main

// ---------------------------------------------------------------------------
// usage.go — version and usage printing
// ---------------------------------------------------------------------------

import (
	"fmt"
	"io"
	goruntime "runtime"
	"runtime/debug"

	"github.com/ryan-steed-usa/usgs-quakemon/internal/feed"
	"github.com/ryan-steed-usa/usgs-quakemon/internal/monitor"
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s v%s", prog, version)
	if commit != "dev" {
		fmt.Fprintf(w, " (%s)", commit[:min(7, len(commit))])
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprintf(w, " %s", bi.GoVersion)
	}
	fmt.Fprintf(w, " %s/%s\n", goruntime.GOOS, goruntime.GOARCH)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "%s — color-coded terminal monitor for USGS earthquake feeds\n\n", prog)
	fmt.Fprintf(w, "%s\n\n", bold("USAGE"))
	fmt.Fprintf(w, "  %s [flags] [feed selector]\n\n", prog)
	fmt.Fprintf(w, "%s\n\n", bold("FLAGS"))
	fmt.Fprintf(w, "  %-28s  %s\n", "-a, --alarm <cmd>", "Command to spawn when an alert fires (default: terminal bell)")
	fmt.Fprintf(w, "  %-28s  %s\n", "-p, --pager <tier,...>", "PAGER tiers that fire the alarm: green, yellow, orange, red")
	fmt.Fprintf(w, "  %-28s  %s\n", "-m, --magnitude <float>", "Magnitude at or above which the alarm fires")
	fmt.Fprintf(w, "  %-28s  %s\n", "-f, --follow", "Append-only output instead of full-screen redraw")
	fmt.Fprintf(w, "  %-28s  %s\n", "-g, --geo-link", "Append a geo: URI column")
	fmt.Fprintf(w, "  %-28s  %s\n", "-l, --localtime", "Show event times in local time instead of UTC")
	fmt.Fprintf(w, "  %-28s  %s\n", "-r, --refresh <dur>", fmt.Sprintf("Refresh interval, e.g. 90, 5m, 4h (min %ds, max 24h)", monitor.MinRefreshSeconds))
	fmt.Fprintf(w, "  %-28s  %s\n", "-ro, --run-once", "Fetch and render once, then exit")
	fmt.Fprintf(w, "  %-28s  %s\n", "-t, --timeout <int>", fmt.Sprintf("Feed request timeout in seconds (min %d)", monitor.MinTimeoutSeconds))
	fmt.Fprintf(w, "  %-28s  %s\n", "--time-format <layout>", "Go time layout for timestamps")
	fmt.Fprintf(w, "  %-28s  %s\n", "--color / --no-color", "Force or disable ANSI color (default: auto-detect)")
	fmt.Fprintf(w, "  %-28s  %s\n", "--accept-warning", "Pre-accept large-result warnings")
	fmt.Fprintf(w, "  %-28s  %s\n", "--config <path>", "YAML defaults file")
	fmt.Fprintf(w, "  %-28s  %s\n", "--log-level <level>", "debug, info, warn, or error (default: warn)")
	fmt.Fprintf(w, "  %-28s  %s\n", "--list-feeds", "Print the feed selector catalog and exit")
	fmt.Fprintf(w, "  %-28s  %s\n", "--version", "Print version and exit")
	fmt.Fprintf(w, "\n%s\n\n", bold("FEED SELECTORS"))
	fmt.Fprintf(w, "  One of --<unit>-<mode> with unit in {hour, day, week, month} and\n")
	fmt.Fprintf(w, "  mode in {45, 25, 10, significant, all}, e.g. --day-45 or\n")
	fmt.Fprintf(w, "  --week-significant. Mutually exclusive; default is --day-significant.\n")
	fmt.Fprintf(w, "  Week and month feeds, --day-all, and --day-10 prompt before fetching\n")
	fmt.Fprintf(w, "  large result sets unless --accept-warning is given.\n")
	fmt.Fprintf(w, "\n%s\n\n", bold("EXAMPLES"))
	fmt.Fprintf(w, "  %s\n", dim("# Watch significant quakes of the last day, refreshing every 5 minutes"))
	fmt.Fprintf(w, "  %s\n\n", prog)
	fmt.Fprintf(w, "  %s\n", dim("# Ring the bell for anything at or above magnitude 5"))
	fmt.Fprintf(w, "  %s --day-45 -m 5.0 -r 2m\n\n", prog)
	fmt.Fprintf(w, "  %s\n", dim("# Page the on-call for red/orange PAGER events"))
	fmt.Fprintf(w, "  %s --week-significant -p red,orange -a \"notify-send quake\"\n\n", prog)
	fmt.Fprintf(w, "  %s\n", dim("# One-shot table for scripts"))
	fmt.Fprintf(w, "  %s -ro --no-color --day-25\n\n", prog)
}

// printFeedCatalog renders the full selector table for --list-feeds.
func printFeedCatalog(w io.Writer) {
	tbl := monitor.NewTable(w, "FLAG", "FEED ID", "CONFIRMATION")
	for _, unit := range feed.Units {
		for _, mode := range feed.Modes {
			id := feed.FeedID(unit, mode)
			warn := "-"
			if feed.NeedsWarning(id) {
				warn = "large result warning"
			}
			tbl.AddRow("--"+selectorFlagName(unit, mode), id, warn)
		}
	}
	tbl.Render()
}
