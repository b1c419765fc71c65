package monitor

import "errors"

// Closed error kinds, one small set per component. Callers classify with
// errors.Is; every kind here is fatal for the run.
var (
	// Interval parsing.
	ErrIntervalFormat = errors.New("invalid interval format")
	ErrIntervalUnit   = errors.New("invalid interval unit")
	ErrIntervalMin    = errors.New("interval below minimum")
	ErrIntervalMax    = errors.New("interval above maximum")

	// Alarm dispatch. Alarm failures are never swallowed: a silently
	// failing alarm defeats the point of running a monitor.
	ErrAlarmNotFound = errors.New("alarm command not found")
	ErrAlarmSpawn    = errors.New("alarm command failed to start")

	// ErrAborted means the user declined a large-result confirmation.
	ErrAborted = errors.New("aborted by user")

	// ErrBrokenPipe means stdout went away mid-render.
	ErrBrokenPipe = errors.New("output pipe closed")
)
