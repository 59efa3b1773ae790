package cmd

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// maxColumnWidth caps a table column in display columns
const maxColumnWidth = 40

// table renders rows as left-aligned, space separated columns.
// Widths are measured in display columns so CJK and emoji line up.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) error {
	widths := make([]int, len(t.headers))
	measure := func(cells []string) {
		for i := range widths {
			if i < len(cells) {
				if cw := runewidth.StringWidth(cells[i]); cw > widths[i] {
					widths[i] = cw
				}
			}
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(widths)-1 {
				sb.WriteString(runewidth.Truncate(cell, width, "..."))
				break
			}
			sb.WriteString(padToWidth(cell, width))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}

	writeRow(t.headers)
	for _, row := range t.rows {
		writeRow(row)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit prints v as JSON when --json is set and the table otherwise
func emit(w io.Writer, v any, t *table) error {
	if jsonOutput {
		return printJSON(w, v)
	}
	return t.render(w)
}

// count formats a number with thousands separators
func count(n int) string {
	return humanize.Comma(int64(n))
}

// when formats a play time relative to now, or "now" for the epoch that
// marks a missing timestamp
func when(t time.Time) string {
	if t.Unix() <= 0 {
		return "now"
	}
	return humanize.Time(t)
}

// rank formats a listing position
func rank(i int) string {
	return humanize.Comma(int64(i + 1))
}
