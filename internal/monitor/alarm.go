package monitor

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/ryan-steed-usa/usgs-quakemon/internal/feed"
)

// Spawner starts an external process without waiting for it.
type Spawner interface {
	Start(argv []string) error
}

// ExecSpawner runs commands via os/exec, detached from the poll loop.
type ExecSpawner struct{}

// Start launches argv and reaps it in the background. The caller never
// learns how the command exited, only whether it could start.
func (ExecSpawner) Start(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// Alarm fires the configured alarm command (or the terminal bell) and
// owns the per-cycle "already alerted" flag. Trigger is a no-op once the
// flag is set; ResetCycle re-arms it at the top of each poll.
type Alarm struct {
	argv    []string
	spawner Spawner
	bell    io.Writer
	logger  zerolog.Logger
	fired   bool
}

// NewAlarm creates an alarm dispatcher. An empty argv means the bell
// control character is written to bell instead of spawning a process.
func NewAlarm(argv []string, spawner Spawner, bell io.Writer, logger zerolog.Logger) *Alarm {
	return &Alarm{
		argv:    argv,
		spawner: spawner,
		bell:    bell,
		logger:  logger.With().Str("component", "alarm").Logger(),
	}
}

// ResetCycle re-arms the alarm for a new poll cycle.
func (a *Alarm) ResetCycle() {
	a.fired = false
}

// Fired reports whether the alarm already fired this cycle.
func (a *Alarm) Fired() bool {
	return a.fired
}

// Trigger fires the alarm for a qualifying event. The first qualifying
// event of a cycle fires; later ones are ignored. Spawn failures are
// fatal: they surface as ErrAlarmNotFound or ErrAlarmSpawn and the caller
// terminates the run.
func (a *Alarm) Trigger(ev feed.Event) error {
	if a.fired {
		return nil
	}
	a.fired = true

	if len(a.argv) == 0 {
		fmt.Fprint(a.bell, "\a")
		a.logger.Info().
			Float64("magnitude", ev.Magnitude).
			Str("place", ev.Place).
			Msg("terminal bell rung")
		return nil
	}

	if err := a.spawner.Start(a.argv); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrAlarmNotFound, a.argv[0])
		}
		return fmt.Errorf("%w: %q: %v", ErrAlarmSpawn, a.argv[0], err)
	}

	a.logger.Info().
		Str("command", a.argv[0]).
		Float64("magnitude", ev.Magnitude).
		Str("place", ev.Place).
		Msg("alarm command spawned")
	return nil
}
