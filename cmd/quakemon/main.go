package main

// ---------------------------------------------------------------------------
// main.go — quakemon entry point
//
// Flag parsing lives in flags.go, usage/version output in usage.go, and
// shared helpers in helpers.go. Everything behavioral is in
// internal/monitor and internal/feed; this file only wires them up.
// ---------------------------------------------------------------------------

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ryan-steed-usa/usgs-quakemon/internal/feed"
	"github.com/ryan-steed-usa/usgs-quakemon/internal/monitor"
)

const prog = "quakemon"

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	o, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		errorf("%v", err)
	}

	if o.showVersion {
		printVersion(os.Stdout)
		os.Exit(0)
	}
	if o.listFeeds {
		printFeedCatalog(os.Stdout)
		os.Exit(0)
	}

	fileCfg, err := monitor.LoadFileConfig(o.config)
	if err != nil {
		errorf("%v", err)
	}

	cfg, level, err := buildConfig(o, fileCfg)
	if err != nil {
		errorf("%v", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Str("run_id", uuid.New().String()).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gate := monitor.NewGate(cfg.AcceptWarning, os.Stdin, os.Stderr)
	if feed.NeedsWarning(cfg.FeedID) {
		msg := fmt.Sprintf("The %s feed can return a very large result set. Fetch it anyway?", cfg.FeedID)
		if !gate.Confirm(ctx, msg) {
			abort()
		}
	}

	fetcher := feed.NewClient(time.Duration(cfg.TimeoutSeconds)*time.Second, logger)
	alarm := monitor.NewAlarm(cfg.AlarmArgv, monitor.ExecSpawner{}, os.Stdout, logger)
	mon := monitor.New(cfg, fetcher, alarm, gate, clockwork.NewRealClock(), os.Stdout, logger)

	switch err := mon.Run(ctx); {
	case err == nil:
		if ctx.Err() != nil {
			fmt.Println()
		}
	case errors.Is(err, monitor.ErrAborted):
		abort()
	case errors.Is(err, monitor.ErrBrokenPipe):
		os.Stderr.Close()
		os.Exit(1)
	default:
		errorf("%v", err)
	}
}

// abort is the decline path of the warning gate.
func abort() {
	fmt.Fprintln(os.Stderr, "Aborting...")
	os.Exit(1)
}

// buildConfig resolves flags over file defaults into a validated Config.
func buildConfig(o *options, fileCfg monitor.FileConfig) (*monitor.Config, zerolog.Level, error) {
	cfg := &monitor.Config{
		LocalTime:     o.localtime || fileCfg.LocalTime,
		GeoLink:       o.geoLink || fileCfg.GeoLink,
		Follow:        o.follow,
		RunOnce:       o.runOnce,
		AcceptWarning: o.acceptWarning,
	}

	feedID, err := o.feedSelection()
	if err != nil {
		return nil, 0, err
	}
	cfg.FeedID = feedID
	if cfg.FeedURL, err = feed.URL(feedID); err != nil {
		return nil, 0, err
	}

	refresh := fileCfg.Refresh
	if o.has("r", "refresh") {
		refresh = o.refresh
	}
	if cfg.RefreshSeconds, err = monitor.ParseInterval(refresh, monitor.MinRefreshSeconds); err != nil {
		return nil, 0, fmt.Errorf("--refresh: %v", err)
	}

	cfg.TimeoutSeconds = fileCfg.Timeout
	if o.has("t", "timeout") {
		cfg.TimeoutSeconds = o.timeout
	}

	alarm := fileCfg.Alarm
	if o.has("a", "alarm") {
		alarm = o.alarm
	}
	cfg.AlarmArgv = strings.Fields(alarm)

	cfg.AlarmMagnitude = fileCfg.Magnitude
	if o.has("m", "magnitude") {
		cfg.AlarmMagnitude = o.magnitude
	}

	pagerNames := fileCfg.Pager
	if len(o.pager) > 0 {
		pagerNames = o.pager
	}
	tiers, err := monitor.ParsePagerTiers(pagerNames)
	if err != nil {
		return nil, 0, fmt.Errorf("--pager: %v", err)
	}
	cfg.SetPagerTriggers(tiers)

	cfg.TimeFormat = fileCfg.TimeFormat
	if o.has("time-format") {
		cfg.TimeFormat = o.timeFormat
	}

	switch {
	case o.colorOn && o.colorOff:
		return nil, 0, fmt.Errorf("--color and --no-color are mutually exclusive")
	case o.colorOn:
		cfg.Color = true
	case o.colorOff:
		cfg.Color = false
	default:
		switch fileCfg.Color {
		case "always":
			cfg.Color = true
		case "never":
			cfg.Color = false
		case "", "auto":
			cfg.Color = colorAuto()
		default:
			return nil, 0, fmt.Errorf("config color: %q is not one of auto, always, never", fileCfg.Color)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}

	levelName := fileCfg.LogLevel
	if o.has("log-level") {
		levelName = o.logLevel
	}
	level, err := parseLogLevel(levelName)
	if err != nil {
		return nil, 0, err
	}

	return cfg, level, nil
}

func parseLogLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "", "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("--log-level: %q is not one of debug, info, warn, error", name)
	}
}
