// Package report renders the end-of-run summary table.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lepinkainen/artistpulse/internal/collect"
	"github.com/lepinkainen/artistpulse/internal/sink"
)

var columns = []string{"Artist", "Pop", "Followers", "Tracks", "Posts", "Videos", "Views", "Status"}

type styles struct {
	container lipgloss.Style
	header    lipgloss.Style
	cell      lipgloss.Style
	failed    lipgloss.Style
	notFound  lipgloss.Style
}

func newStyles() styles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	return styles{
		container: lipgloss.NewStyle().
			Border(asciiBorder).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		notFound: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

// Rows returns the plain-text summary cells, one row per record.
func Rows(records []collect.ArtistRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		status := "ok"
		switch {
		case r.FailedSource != "":
			status = "failed: " + r.FailedSource
		case !r.Catalog.Found():
			status = "not in catalog"
		}
		rows = append(rows, []string{
			r.Artist,
			strconv.Itoa(r.Catalog.Popularity),
			humanCount(int64(r.Catalog.Followers)),
			strconv.Itoa(len(r.Catalog.TopTracks)),
			strconv.Itoa(len(r.Discussion)),
			strconv.Itoa(len(r.Video)),
			humanCount(sink.TotalViews(r.Video)),
			status,
		})
	}
	return rows
}

// Render draws the summary table for records.
func Render(records []collect.ArtistRecord) string {
	st := newStyles()
	rows := Rows(records)

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = lipgloss.Width(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var lines []string
	lines = append(lines, renderRow(columns, widths, func(int) lipgloss.Style { return st.header }))
	for _, row := range rows {
		style := st.cell
		switch {
		case strings.HasPrefix(row[len(row)-1], "failed"):
			style = st.failed
		case row[len(row)-1] != "ok":
			style = st.notFound
		}
		lines = append(lines, renderRow(row, widths, func(int) lipgloss.Style { return style }))
	}

	failed := len(collect.Failed(records))
	footer := fmt.Sprintf("%d artists collected", len(records))
	if failed > 0 {
		footer += fmt.Sprintf(", %d failed", failed)
	}
	lines = append(lines, "", st.notFound.Render(footer))

	return st.container.Render(strings.Join(lines, "\n"))
}

// Print writes the rendered summary and a trailing newline to w.
func Print(w io.Writer, records []collect.ArtistRecord) error {
	_, err := fmt.Fprintln(w, Render(records))
	return err
}

func renderRow(cells []string, widths []int, style func(int) lipgloss.Style) string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		s := style(i).Width(widths[i])
		if i > 0 && i < len(cells)-1 {
			s = s.Align(lipgloss.Right)
		}
		out[i] = s.Render(cell)
	}
	return strings.Join(out, "  ")
}

// humanCount abbreviates large counts: 1234 -> 1.2K, 90000000 -> 90.0M.
func humanCount(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1e3)
	default:
		return strconv.FormatInt(n, 10)
	}
}
