package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryan-steed-usa/usgs-quakemon/internal/feed"
)

// fakeFetcher serves a fixed snapshot (or error) for every poll.
type fakeFetcher struct {
	snap  feed.Snapshot
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (feed.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return feed.Snapshot{}, f.err
	}
	return f.snap, nil
}

func monitorConfig() *Config {
	cfg := validConfig()
	cfg.FeedURL = "https://example.test/feed.geojson"
	return cfg
}

func quake(mag float64) feed.Event {
	return feed.Event{
		TimeMillis: time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC).UnixMilli(),
		Magnitude:  mag,
		Place:      "somewhere",
	}
}

func openGate() *Gate {
	return NewGate(true, strings.NewReader(""), io.Discard)
}

func TestMonitor_RunOnceRendersOneTable(t *testing.T) {
	f := &fakeFetcher{snap: feed.Snapshot{
		Title:  "USGS Significant Earthquakes, Past Day",
		Events: []feed.Event{quake(5.2), quake(2.1)},
	}}
	cfg := monitorConfig()
	cfg.RunOnce = true

	var out bytes.Buffer
	alarm := NewAlarm(nil, &fakeSpawner{}, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, openGate(), clockwork.NewFakeClock(), &out, zerolog.Nop())

	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, 1, f.calls)
	got := out.String()
	assert.Contains(t, got, "USGS Significant Earthquakes, Past Day")
	assert.Contains(t, got, "2 events")
	assert.Contains(t, got, "5.20")
	assert.NotContains(t, got, "refreshing every", "run-once header has no refresh suffix")
}

func TestMonitor_HeaderShowsRefreshInterval(t *testing.T) {
	f := &fakeFetcher{snap: feed.Snapshot{Title: "Feed", Events: []feed.Event{quake(3.0)}}}
	cfg := monitorConfig()
	clock := clockwork.NewFakeClock()

	var out bytes.Buffer
	alarm := NewAlarm(nil, &fakeSpawner{}, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, openGate(), clock, &out, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	cancel()
	require.NoError(t, <-done)

	assert.Contains(t, out.String(), "(refreshing every 5m 0s)")
	assert.Contains(t, out.String(), "\033[2J", "full redraw clears the screen")
}

func TestMonitor_FollowModeAppends(t *testing.T) {
	f := &fakeFetcher{snap: feed.Snapshot{Title: "Feed", Events: []feed.Event{quake(4.0)}}}
	cfg := monitorConfig()
	cfg.Follow = true
	clock := clockwork.NewFakeClock()

	var out bytes.Buffer
	alarm := NewAlarm(nil, &fakeSpawner{}, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, openGate(), clock, &out, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Duration(cfg.RefreshSeconds) * time.Second)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	cancel()
	require.NoError(t, <-done)

	got := out.String()
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, 2, strings.Count(got, "1 events"), "one stamp line per cycle")
	assert.NotContains(t, got, "\033[2J", "follow mode never clears the screen")
	assert.NotContains(t, got, "\033[9", "color disabled emits no SGR codes")
}

func TestMonitor_AlarmOncePerCycleThenReArmed(t *testing.T) {
	// Three qualifying events per fetch; exactly one firing per cycle.
	f := &fakeFetcher{snap: feed.Snapshot{
		Title:  "Feed",
		Events: []feed.Event{quake(6.0), quake(6.5), quake(7.0)},
	}}
	cfg := monitorConfig()
	cfg.Follow = true
	cfg.AlarmMagnitude = 5.0
	clock := clockwork.NewFakeClock()

	sp := &fakeSpawner{}
	alarm := NewAlarm([]string{"alert-cmd"}, sp, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, openGate(), clock, io.Discard, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.Len(t, sp.calls, 1, "first cycle fires exactly once")

	clock.Advance(time.Duration(cfg.RefreshSeconds) * time.Second)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.Len(t, sp.calls, 2, "next cycle re-arms the alarm")

	cancel()
	require.NoError(t, <-done)
}

func TestMonitor_NoAlarmBelowThreshold(t *testing.T) {
	f := &fakeFetcher{snap: feed.Snapshot{Title: "Feed", Events: []feed.Event{quake(4.9)}}}
	cfg := monitorConfig()
	cfg.RunOnce = true
	cfg.AlarmMagnitude = 5.0

	sp := &fakeSpawner{}
	alarm := NewAlarm([]string{"alert-cmd"}, sp, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, openGate(), clockwork.NewFakeClock(), io.Discard, zerolog.Nop())

	require.NoError(t, m.Run(context.Background()))
	assert.Empty(t, sp.calls)
}

func TestMonitor_LargeResultGateDeclined(t *testing.T) {
	events := make([]feed.Event, 51)
	for i := range events {
		events[i] = quake(1.0)
	}
	f := &fakeFetcher{snap: feed.Snapshot{Title: "Feed", Events: events}}
	cfg := monitorConfig()
	cfg.RunOnce = true

	var out, prompt bytes.Buffer
	gate := NewGate(false, strings.NewReader("n\n"), &prompt)
	alarm := NewAlarm(nil, &fakeSpawner{}, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, gate, clockwork.NewFakeClock(), &out, zerolog.Nop())

	err := m.Run(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
	assert.Contains(t, prompt.String(), "51 events")
	assert.Empty(t, out.String(), "prompt must precede any table output")
}

func TestMonitor_LargeResultGateAcceptedOnce(t *testing.T) {
	events := make([]feed.Event, 60)
	for i := range events {
		events[i] = quake(1.0)
	}
	f := &fakeFetcher{snap: feed.Snapshot{Title: "Feed", Events: events}}
	cfg := monitorConfig()
	cfg.Follow = true
	clock := clockwork.NewFakeClock()

	var prompt bytes.Buffer
	// Reader holds a single "y"; a second prompt would read EOF and decline.
	gate := NewGate(false, strings.NewReader("y\n"), &prompt)
	alarm := NewAlarm(nil, &fakeSpawner{}, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, gate, clock, io.Discard, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Duration(cfg.RefreshSeconds) * time.Second)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, 2, f.calls)
	assert.Equal(t, 1, strings.Count(prompt.String(), "[y/N]"), "acceptance suppresses later prompts")
}

func TestMonitor_FetchFailureIsFatal(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	cfg := monitorConfig()
	cfg.RunOnce = true

	alarm := NewAlarm(nil, &fakeSpawner{}, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, openGate(), clockwork.NewFakeClock(), io.Discard, zerolog.Nop())

	err := m.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMonitor_AlarmFailureIsFatal(t *testing.T) {
	f := &fakeFetcher{snap: feed.Snapshot{Title: "Feed", Events: []feed.Event{quake(6.0)}}}
	cfg := monitorConfig()
	cfg.RunOnce = true
	cfg.AlarmMagnitude = 5.0

	sp := &fakeSpawner{err: errors.New("spawn failed")}
	alarm := NewAlarm([]string{"alert-cmd"}, sp, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, openGate(), clockwork.NewFakeClock(), io.Discard, zerolog.Nop())

	assert.ErrorIs(t, m.Run(context.Background()), ErrAlarmSpawn)
}

func TestMonitor_CancelDuringSleepStopsCleanly(t *testing.T) {
	f := &fakeFetcher{snap: feed.Snapshot{Title: "Feed"}}
	cfg := monitorConfig()
	cfg.Follow = true
	clock := clockwork.NewFakeClock()

	alarm := NewAlarm(nil, &fakeSpawner{}, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, openGate(), clock, io.Discard, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	cancel()
	require.NoError(t, <-done, "interrupt during sleep is a graceful stop")
	assert.Equal(t, 1, f.calls)
}

func TestMonitor_BrokenPipeDuringRender(t *testing.T) {
	f := &fakeFetcher{snap: feed.Snapshot{Title: "Feed", Events: []feed.Event{quake(3.0)}}}
	cfg := monitorConfig()
	cfg.RunOnce = true

	alarm := NewAlarm(nil, &fakeSpawner{}, io.Discard, zerolog.Nop())
	m := New(cfg, f, alarm, openGate(), clockwork.NewFakeClock(), failingWriter{err: syscall.EPIPE}, zerolog.Nop())

	assert.ErrorIs(t, m.Run(context.Background()), ErrBrokenPipe)
}
