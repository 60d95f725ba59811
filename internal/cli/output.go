package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shinji-kodama/fcal/internal/calendar"
	"github.com/shinji-kodama/fcal/internal/model"
)

// printCalendar writes the rendered span in text or JSON format,
// depending on the global --json flag.
func printCalendar(w io.Writer, r *calendar.Renderer, span model.DateSpan, ws model.WeekStart) error {
	if IsJSONOutput() {
		return printCalendarJSON(w, r, span, ws)
	}
	return printCalendarText(w, r, span)
}

// printCalendarText writes the month grids line by line.
func printCalendarText(w io.Writer, r *calendar.Renderer, span model.DateSpan) error {
	if _, err := io.WriteString(w, r.String(span)); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

// calendarJSON is the JSON output structure for the resolved span.
type calendarJSON struct {
	Anchor         model.CalendarMonth `json:"anchor"`
	MonthsBefore   int                 `json:"monthsBefore"`
	MonthsAfter    int                 `json:"monthsAfter"`
	FirstDayOfWeek string              `json:"firstDayOfWeek"`
	Months         []monthJSON         `json:"months"`
}

// monthJSON describes one month. Weeks holds day numbers in column order
// starting at firstDayOfWeek, with 0 for cells outside the month.
type monthJSON struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Name  string  `json:"name"`
	Days  int     `json:"days"`
	Weeks [][]int `json:"weeks"`
}

// printCalendarJSON writes the span and its month grids as structured JSON.
func printCalendarJSON(w io.Writer, r *calendar.Renderer, span model.DateSpan, ws model.WeekStart) error {
	result := calendarJSON{
		Anchor:         span.Anchor,
		MonthsBefore:   span.MonthsBefore,
		MonthsAfter:    span.MonthsAfter,
		FirstDayOfWeek: ws.String(),
		Months:         make([]monthJSON, 0, span.Len()),
	}

	for _, g := range r.Grids(span) {
		result.Months = append(result.Months, monthJSON{
			Year:  g.Month.Year,
			Month: g.Month.Month,
			Name:  g.Month.Name(),
			Days:  g.Month.DaysIn(),
			Weeks: g.Weeks,
		})
	}

	// MarshalIndent produces human-readable JSON with 2-space indentation.
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
