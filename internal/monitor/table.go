package monitor

// ---------------------------------------------------------------------------
// table.go — auto-sized table rendering with box-drawing borders.
//
// Column widths are computed from the visible width of each cell, so
// SGR-colored magnitudes do not skew alignment. Write errors are kept
// and surfaced once so a closed stdout pipe is detected mid-render.
// ---------------------------------------------------------------------------

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

var sgrRe = regexp.MustCompile("\x1b\\[[0-9;]*m")

// visibleWidth is the cell width in runes with SGR sequences stripped,
// so colored magnitudes and non-ASCII place names pad correctly.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(sgrRe.ReplaceAllString(s, ""))
}

// Table renders aligned, bordered tables to a writer.
type Table struct {
	headers []string
	rows    [][]string
	w       *errWriter
}

// NewTable creates a table with the given column headers.
func NewTable(w io.Writer, headers ...string) *Table {
	return &Table{headers: headers, w: &errWriter{w: w}}
}

// AddRow appends a row. Values are matched positionally to headers;
// short rows are padded, long ones truncated.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Render writes the table. The first write error sticks and is returned.
func (t *Table) Render() error {
	if len(t.headers) == 0 {
		return nil
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	rule := func(left, join, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < len(widths)-1 {
				b.WriteString(join)
			}
		}
		b.WriteString(right)
		return b.String()
	}

	printRow := func(cells []string) {
		fmt.Fprint(t.w, "│")
		for i, cell := range cells {
			pad := widths[i] - visibleWidth(cell)
			fmt.Fprintf(t.w, " %s%s │", cell, strings.Repeat(" ", pad))
		}
		fmt.Fprintln(t.w)
	}

	fmt.Fprintln(t.w, rule("┌", "┬", "┐"))
	printRow(t.headers)
	fmt.Fprintln(t.w, rule("├", "┼", "┤"))
	for _, row := range t.rows {
		printRow(row)
	}
	fmt.Fprintln(t.w, rule("└", "┴", "┘"))

	return t.w.err
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
