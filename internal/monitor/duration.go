package monitor

import (
	"fmt"
	"strconv"
)

// MaxIntervalSeconds caps refresh intervals at 24 hours.
const MaxIntervalSeconds = 86400

// ParseInterval parses a human refresh interval into whole seconds.
//
// The input must be at least two characters. A trailing digit means the
// value is already in seconds; otherwise the last character is the unit
// (s, m, or h) and the rest is a floating-point magnitude. Fractions
// truncate: "1.5m" is 90 seconds, "90.9" is 90.
func ParseInterval(input string, minSeconds int) (int, error) {
	if len(input) < 2 {
		return 0, fmt.Errorf("%w: %q is too short, want e.g. \"90\", \"5m\" or \"4h\"", ErrIntervalFormat, input)
	}

	mult := 1.0
	num := input
	last := input[len(input)-1]
	if last < '0' || last > '9' {
		switch last {
		case 's':
			mult = 1
		case 'm':
			mult = 60
		case 'h':
			mult = 3600
		default:
			return 0, fmt.Errorf("%w: %q (valid units: s, m, h)", ErrIntervalUnit, string(last))
		}
		num = input[:len(input)-1]
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrIntervalFormat, num)
	}

	seconds := int(value * mult)
	if seconds < minSeconds {
		return 0, fmt.Errorf("%w: %ds < %ds", ErrIntervalMin, seconds, minSeconds)
	}
	if seconds > MaxIntervalSeconds {
		return 0, fmt.Errorf("%w: %ds > %ds (24h)", ErrIntervalMax, seconds, MaxIntervalSeconds)
	}
	return seconds, nil
}

// FormatInterval renders whole seconds as "4h 30m 10s", dropping leading
// zero components. Used for the "refreshing every …" header suffix.
func FormatInterval(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
