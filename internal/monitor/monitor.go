package monitor

// ---------------------------------------------------------------------------
// monitor.go — the fetch → transform → render → sleep loop.
//
// One logical thread: everything in a cycle runs sequentially. The only
// concurrency is the detached alarm process, which nobody waits on. The
// sleep between cycles is the sole suspension point and is interruptible
// through the context.
// ---------------------------------------------------------------------------

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ryan-steed-usa/usgs-quakemon/internal/feed"
)

// warnResultThreshold is the result count at which a fetch re-uses the
// large-result confirmation gate before rendering.
const warnResultThreshold = 50

// Fetcher downloads one feed snapshot. Implemented by feed.Client;
// tests substitute an in-memory fake.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (feed.Snapshot, error)
}

// Monitor drives the poll loop until the context is cancelled, the
// single run-once cycle completes, or a fatal error occurs.
type Monitor struct {
	cfg     *Config
	fetcher Fetcher
	alarm   *Alarm
	gate    *Gate
	clock   clockwork.Clock
	xform   *Transformer
	out     io.Writer
	logger  zerolog.Logger
	cycle   int
}

// New creates a monitor. out receives all table output; diagnostics go
// through the logger.
func New(cfg *Config, fetcher Fetcher, alarm *Alarm, gate *Gate, clock clockwork.Clock, out io.Writer, logger zerolog.Logger) *Monitor {
	return &Monitor{
		cfg:     cfg,
		fetcher: fetcher,
		alarm:   alarm,
		gate:    gate,
		clock:   clock,
		xform:   NewTransformer(cfg),
		out:     out,
		logger:  logger.With().Str("component", "monitor").Logger(),
	}
}

// Run executes poll cycles until cancellation. A nil return means a
// graceful stop (run-once finished or interrupt); fetch, alarm, abort,
// and broken-pipe failures return their error kind.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if err := m.runCycle(ctx); err != nil {
			if ctx.Err() != nil && !errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}
		if m.cfg.RunOnce {
			m.logger.Debug().Msg("run-once cycle complete")
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-m.clock.After(time.Duration(m.cfg.RefreshSeconds) * time.Second):
		}
	}
}

func (m *Monitor) runCycle(ctx context.Context) error {
	m.cycle++
	m.alarm.ResetCycle()

	start := m.clock.Now()
	snap, err := m.fetcher.Fetch(ctx, m.cfg.FeedURL)
	if err != nil {
		return fmt.Errorf("fetching %s feed: %w", m.cfg.FeedID, err)
	}

	if len(snap.Events) >= warnResultThreshold && !m.gate.Accepted() {
		msg := fmt.Sprintf("The feed returned %d events; rendering may flood the terminal. Continue?", len(snap.Events))
		if !m.gate.Confirm(ctx, msg) {
			return ErrAborted
		}
	}

	rows := make([][]string, 0, len(snap.Events))
	for _, ev := range snap.Events {
		if !m.alarm.Fired() && m.cfg.HasAlertTrigger() && m.xform.Qualifies(ev) {
			if err := m.alarm.Trigger(ev); err != nil {
				return err
			}
		}
		rows = append(rows, m.xform.Row(ev))
	}

	if err := m.render(snap.Title, rows); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			return fmt.Errorf("%w: %v", ErrBrokenPipe, err)
		}
		return fmt.Errorf("writing output: %w", err)
	}

	m.logger.Debug().
		Int("cycle", m.cycle).
		Int("events", len(snap.Events)).
		Bool("alarm_fired", m.alarm.Fired()).
		Dur("elapsed", m.clock.Since(start)).
		Msg("cycle complete")

	return nil
}

// render draws the cycle's output: a full clear-and-redraw table
// normally, append-only lines in follow mode.
func (m *Monitor) render(title string, rows [][]string) error {
	if m.cfg.Follow {
		return m.renderFollow(rows)
	}

	ew := &errWriter{w: m.out}

	// Clear and home before redrawing the whole screen.
	fmt.Fprint(ew, "\033[2J\033[H")

	header := colorize(title, ansiBold, m.cfg.Color)
	if !m.cfg.RunOnce {
		header += " " + colorize(fmt.Sprintf("(refreshing every %s)", FormatInterval(m.cfg.RefreshSeconds)), ansiDim, m.cfg.Color)
	}
	fmt.Fprintln(ew, header)
	fmt.Fprintln(ew, m.now().Format(m.cfg.TimeFormat))
	fmt.Fprintf(ew, "%d events\n\n", len(rows))
	if ew.err != nil {
		return ew.err
	}

	tbl := NewTable(m.out, m.xform.Headers()...)
	for _, row := range rows {
		tbl.AddRow(row...)
	}
	return tbl.Render()
}

// renderFollow appends one stamp line and one line per event, log-tail
// style, without touching what is already on screen.
func (m *Monitor) renderFollow(rows [][]string) error {
	ew := &errWriter{w: m.out}

	stamp := fmt.Sprintf("── %s · %d events", m.now().Format(m.cfg.TimeFormat), len(rows))
	fmt.Fprintln(ew, colorize(stamp, ansiDim, m.cfg.Color))
	for _, row := range rows {
		line := ""
		for i, cell := range row {
			if i > 0 {
				line += "  "
			}
			line += cell
		}
		fmt.Fprintln(ew, line)
	}
	return ew.err
}

func (m *Monitor) now() time.Time {
	if m.cfg.LocalTime {
		return m.clock.Now().Local()
	}
	return m.clock.Now().UTC()
}
