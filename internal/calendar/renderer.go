package calendar

import (
	"strings"

	"github.com/shinji-kodama/fcal/internal/model"
)

const (
	// DefaultMonthsPerRow is how many grids share one horizontal group.
	DefaultMonthsPerRow = 3

	// gridSeparator sits between adjacent grids in a group.
	gridSeparator = "  "
)

// Options controls how a span is rendered.
type Options struct {
	// WeekStart is the weekday of the leftmost column.
	WeekStart model.WeekStart

	// Highlight enables the today marker. It is the resolved color mode:
	// true only when styling may be written to the output.
	Highlight bool

	// Today is the date to mark when Highlight is set.
	Today model.Date

	// Style decorates today's cell. Nil means ReverseVideo.
	Style Style

	// MonthsPerRow caps the grids per horizontal group.
	// Zero means DefaultMonthsPerRow.
	MonthsPerRow int
}

// Renderer turns a DateSpan into aligned text lines.
type Renderer struct {
	opts Options
}

// NewRenderer creates a Renderer, filling in defaults for zero options.
func NewRenderer(opts Options) *Renderer {
	if opts.MonthsPerRow <= 0 {
		opts.MonthsPerRow = DefaultMonthsPerRow
	}
	if opts.Style == nil {
		opts.Style = ReverseVideo
	}
	return &Renderer{opts: opts}
}

// Grids builds the grid of every month in span, in order.
func (r *Renderer) Grids(span model.DateSpan) []Grid {
	months := span.Months()
	grids := make([]Grid, 0, len(months))
	for _, m := range months {
		grids = append(grids, BuildGrid(m, r.opts.WeekStart))
	}
	return grids
}

// Render returns the lines for span. Months are grouped MonthsPerRow at a
// time; the last group may hold fewer grids and stays left-aligned. One
// all-space line, as wide as the group above it, separates groups.
func (r *Renderer) Render(span model.DateSpan) []string {
	grids := r.Grids(span)

	var out []string
	for start := 0; start < len(grids); start += r.opts.MonthsPerRow {
		end := min(start+r.opts.MonthsPerRow, len(grids))
		if start > 0 {
			out = append(out, strings.Repeat(" ", groupWidth(r.opts.MonthsPerRow)))
		}
		out = append(out, r.renderGroup(grids[start:end])...)
	}
	return out
}

// String renders span as a single newline-terminated block of text.
func (r *Renderer) String(span model.DateSpan) string {
	var b strings.Builder
	for _, line := range r.Render(span) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// renderGroup joins grids horizontally, padding shorter grids with blank
// rows to the height of the tallest.
func (r *Renderer) renderGroup(group []Grid) []string {
	columns := make([][]string, len(group))
	height := 0
	for i, g := range group {
		lines := g.Lines()
		if r.opts.Highlight && g.Month == r.opts.Today.CalendarMonth() {
			lines = highlight(lines, g, r.opts.Today.Day, r.opts.Style)
		}
		columns[i] = lines
		height = max(height, len(lines))
	}

	blank := strings.Repeat(" ", GridWidth)
	out := make([]string, height)
	row := make([]string, len(group))
	for i := 0; i < height; i++ {
		for k, lines := range columns {
			if i < len(lines) {
				row[k] = lines[i]
			} else {
				row[k] = blank
			}
		}
		out[i] = strings.Join(row, gridSeparator)
	}
	return out
}

// groupWidth is the line width of a group of k grids.
func groupWidth(k int) int {
	return GridWidth*k + len(gridSeparator)*(k-1)
}
