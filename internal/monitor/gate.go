package monitor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Gate is the reusable large-result confirmation. Once the user accepts
// one warning the gate stays open for the rest of the run, so a month
// feed that also returns 50+ events prompts at most once.
type Gate struct {
	accepted bool
	in       *bufio.Reader
	out      io.Writer
}

// NewGate creates a gate. accepted=true (the --accept-warning flag)
// suppresses every prompt.
func NewGate(accepted bool, in io.Reader, out io.Writer) *Gate {
	return &Gate{
		accepted: accepted,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Accepted reports whether warnings have been accepted for this run.
func (g *Gate) Accepted() bool {
	return g.accepted
}

// Confirm prompts with message and reads one line from the input stream.
// Only "y" or "yes" (any case) accepts; acceptance is remembered. A
// cancelled context while waiting for input counts as a decline.
func (g *Gate) Confirm(ctx context.Context, message string) bool {
	if g.accepted {
		return true
	}

	fmt.Fprintf(g.out, "%s [y/N] ", message)

	lineCh := make(chan string, 1)
	go func() {
		line, _ := g.in.ReadString('\n')
		lineCh <- line
	}()

	var line string
	select {
	case <-ctx.Done():
		return false
	case line = <-lineCh:
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		g.accepted = true
		return true
	default:
		return false
	}
}
