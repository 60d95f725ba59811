package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/shinji-kodama/fcal/internal/model"
)

const (
	// daysPerWeek is the number of columns in a grid.
	daysPerWeek = 7

	// cellWidth is the width of one day cell ("29", " 1", or blank).
	cellWidth = 2

	// GridWidth is the width of every grid line:
	// 7 cells of 2 characters plus 6 single-space separators.
	GridWidth = daysPerWeek*cellWidth + daysPerWeek - 1

	// headerLines is the number of lines above the week rows
	// (month header and weekday abbreviations).
	headerLines = 2
)

// blankCell fills grid positions that hold no day.
var blankCell = strings.Repeat(" ", cellWidth)

// Grid is the laid-out content of one month. Weeks holds day numbers by
// row and column, with 0 for cells outside the month.
type Grid struct {
	Month     model.CalendarMonth
	WeekStart model.WeekStart
	Weeks     [][]int
}

// BuildGrid lays out month m in rows of seven, with column 0 being
// weekStart.
func BuildGrid(m model.CalendarMonth, weekStart model.WeekStart) Grid {
	offset := columnOf(m.FirstWeekday(), weekStart)
	days := m.DaysIn()

	rows := (offset + days + daysPerWeek - 1) / daysPerWeek
	weeks := make([][]int, rows)
	for r := range weeks {
		weeks[r] = make([]int, daysPerWeek)
	}
	for day := 1; day <= days; day++ {
		pos := offset + day - 1
		weeks[pos/daysPerWeek][pos%daysPerWeek] = day
	}

	return Grid{Month: m, WeekStart: weekStart, Weeks: weeks}
}

// columnOf returns the grid column of weekday d when weekStart is column 0.
func columnOf(d time.Weekday, weekStart model.WeekStart) int {
	return (int(d) - int(weekStart) + daysPerWeek) % daysPerWeek
}

// Header returns the month name and year centered over the grid.
func (g Grid) Header() string {
	return center(g.Month.String(), GridWidth)
}

// WeekdayRow returns the two-letter weekday abbreviations in column order.
func (g Grid) WeekdayRow() string {
	names := make([]string, daysPerWeek)
	for i := range names {
		d := time.Weekday((int(g.WeekStart) + i) % daysPerWeek)
		names[i] = d.String()[:cellWidth]
	}
	return strings.Join(names, " ")
}

// Lines returns the header, weekday row and one line per week, each
// exactly GridWidth characters wide.
func (g Grid) Lines() []string {
	lines := make([]string, 0, headerLines+len(g.Weeks))
	lines = append(lines, g.Header(), g.WeekdayRow())
	for _, week := range g.Weeks {
		cells := make([]string, daysPerWeek)
		for i, day := range week {
			cells[i] = formatCell(day)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

// Locate returns the line index and character offset of day within the
// output of Lines.
func (g Grid) Locate(day int) (line, offset int, ok bool) {
	for r, week := range g.Weeks {
		for c, d := range week {
			if d == day && day != 0 {
				return headerLines + r, c * (cellWidth + 1), true
			}
		}
	}
	return 0, 0, false
}

func formatCell(day int) string {
	if day == 0 {
		return blankCell
	}
	return fmt.Sprintf("%2d", day)
}

// center pads s with spaces to width, putting any odd space on the right.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
