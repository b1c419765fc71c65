package main

// ---------------------------------------------------------------------------
// helpers.go — TTY detection, color, error helpers
// ---------------------------------------------------------------------------

import (
	"fmt"
	"os"
)

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// colorAuto decides whether stdout should receive color when neither
// --color nor --no-color was given.
func colorAuto() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY(os.Stdout)
}

func ansi(code, s string) string {
	if !colorAuto() {
		return s
	}
	return code + s + "\033[0m"
}

func red(s string) string  { return ansi("\033[91m", s) }
func dim(s string) string  { return ansi("\033[90m", s) }
func bold(s string) string { return ansi("\033[1m", s) }

// errorf prints a single prefixed diagnostic to stderr and exits 1.
func errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, prog+": "+red("error: ")+format+"\n", args...)
	os.Exit(1)
}
