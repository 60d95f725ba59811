// Package model defines the domain types for the fcal CLI.
//
// Every type here is an immutable value. Nothing outlives the single
// resolve-then-render pass of one invocation.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinYear and MaxYear bound the years the calendar can display.
	// They match the range that time.Date handles as four-digit years.
	MinYear = 1
	MaxYear = 9999
)

// CalendarMonth identifies a single month of the proleptic Gregorian calendar.
// Invariant: Month is in [1, 12].
type CalendarMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewCalendarMonth validates year and month and returns the CalendarMonth.
func NewCalendarMonth(year, month int) (CalendarMonth, error) {
	if month < 1 || month > 12 {
		return CalendarMonth{}, fmt.Errorf("%w: %d (valid: 1-12)", ErrOutOfRangeMonth, month)
	}
	if year < MinYear || year > MaxYear {
		return CalendarMonth{}, fmt.Errorf("%w: %d (valid: %d-%d)", ErrOutOfRangeYear, year, MinYear, MaxYear)
	}
	return CalendarMonth{Year: year, Month: month}, nil
}

// AddMonths returns the month n months after m (n may be negative).
func (m CalendarMonth) AddMonths(n int) CalendarMonth {
	idx := m.Year*12 + (m.Month - 1) + n
	return CalendarMonth{Year: floorDiv(idx, 12), Month: floorMod(idx, 12) + 1}
}

// Name returns the English month name, e.g. "April".
func (m CalendarMonth) Name() string {
	return time.Month(m.Month).String()
}

// String returns the month as "April 2024", the form used in grid headers.
func (m CalendarMonth) String() string {
	return m.Name() + " " + strconv.Itoa(m.Year)
}

// DaysIn returns the number of days in the month, honouring the Gregorian
// leap-year rule for February.
func (m CalendarMonth) DaysIn() int {
	if m.Month == 2 && IsLeapYear(m.Year) {
		return 29
	}
	return daysInMonth[m.Month-1]
}

// FirstWeekday returns the weekday of the first day of the month.
// time.Date uses the proleptic Gregorian calendar for every year.
func (m CalendarMonth) FirstWeekday() time.Weekday {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC).Weekday()
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// Date is a calendar day. It is used to mark "today" in rendered grids.
type Date struct {
	Year  int
	Month int
	Day   int
}

// DateOf converts a time.Time to a Date in the time's own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// CalendarMonth returns the month containing d.
func (d Date) CalendarMonth() CalendarMonth {
	return CalendarMonth{Year: d.Year, Month: d.Month}
}

// DateSpan describes which months to render: the anchor month plus a number
// of months before and after it. The total rendered month count is
// MonthsBefore + 1 + MonthsAfter.
type DateSpan struct {
	Anchor       CalendarMonth `json:"anchor"`
	MonthsBefore int           `json:"monthsBefore"`
	MonthsAfter  int           `json:"monthsAfter"`
}

// Len returns the number of months covered by the span.
func (s DateSpan) Len() int {
	return s.MonthsBefore + 1 + s.MonthsAfter
}

// First returns the earliest month in the span.
func (s DateSpan) First() CalendarMonth {
	return s.Anchor.AddMonths(-s.MonthsBefore)
}

// Months lists every month of the span in chronological order.
func (s DateSpan) Months() []CalendarMonth {
	months := make([]CalendarMonth, 0, s.Len())
	first := s.First()
	for i := 0; i < s.Len(); i++ {
		months = append(months, first.AddMonths(i))
	}
	return months
}

// WeekStart is the weekday shown in the leftmost grid column.
// Sunday and Monday are the usual values; any weekday is accepted.
type WeekStart time.Weekday

const (
	// WeekStartSunday puts Sunday in the first column (US convention).
	WeekStartSunday = WeekStart(time.Sunday)

	// WeekStartMonday puts Monday in the first column (ISO 8601).
	// It is the fallback when no preference can be determined.
	WeekStartMonday = WeekStart(time.Monday)
)

// DefaultWeekStart is used when neither flag, config nor OS supply a value.
const DefaultWeekStart = WeekStartMonday

// String returns the full weekday name, e.g. "Monday".
func (w WeekStart) String() string {
	return time.Weekday(w).String()
}

// Weekday returns w as a time.Weekday.
func (w WeekStart) Weekday() time.Weekday {
	return time.Weekday(w)
}

// IsValid checks whether w names one of the seven weekdays.
func (w WeekStart) IsValid() bool {
	return w >= WeekStart(time.Sunday) && w <= WeekStart(time.Saturday)
}

// ParseWeekStart converts a user-supplied weekday into a WeekStart.
// It accepts full names ("Sunday"), two-letter abbreviations ("Su"),
// or numbers from 1 (Sunday) to 7 (Saturday), case-insensitively.
func ParseWeekStart(s string) (WeekStart, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || v == name[:2] || v == strconv.Itoa(int(d)+1) {
			return WeekStart(d), nil
		}
	}
	return 0, fmt.Errorf("invalid day: %q (use a weekday name, its two-letter abbreviation, or a number from 1 (Sunday) to 7 (Saturday))", s)
}

// ColorMode controls whether highlight styling is applied to the output.
type ColorMode string

const (
	// ColorAlways applies styling regardless of the output destination.
	ColorAlways ColorMode = "always"

	// ColorAuto applies styling only when stdout is an interactive terminal.
	ColorAuto ColorMode = "auto"

	// ColorNever never applies styling.
	ColorNever ColorMode = "never"
)

// String returns the string representation of ColorMode.
func (c ColorMode) String() string {
	return string(c)
}

// IsValid checks whether the ColorMode value is one of the predefined modes.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAlways, ColorAuto, ColorNever:
		return true
	default:
		return false
	}
}

// ParseColorMode converts a string to a ColorMode.
// Returns an error if the string does not match any valid mode.
func ParseColorMode(s string) (ColorMode, error) {
	mode := ColorMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid color mode: %q (valid: always, auto, never)", s)
	}
	return mode, nil
}

// Error kinds produced while resolving input. They are detected before any
// rendering begins and are wrapped with details via fmt.Errorf("%w").
var (
	// ErrInvalidExpression means a date token matched no supported grammar.
	ErrInvalidExpression = errors.New("invalid date expression")

	// ErrConflictingInput means a date token was combined with -y/-m, or
	// -A/-B were combined with a token whose span is fixed.
	ErrConflictingInput = errors.New("conflicting input")

	// ErrOutOfRangeMonth means an explicit month is outside 1-12.
	ErrOutOfRangeMonth = errors.New("month out of range")

	// ErrOutOfRangeYear means a year is outside MinYear-MaxYear.
	ErrOutOfRangeYear = errors.New("year out of range")

	// ErrOutOfRangeSpan means a months-before/after count is negative.
	ErrOutOfRangeSpan = errors.New("month count out of range")
)

// ExitCode defines standard CLI exit codes.
// These codes allow scripts to programmatically determine the outcome
// of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidExpression indicates the date token could not be parsed.
	ExitInvalidExpression ExitCode = 2

	// ExitConflictingInput indicates mutually exclusive inputs were combined.
	ExitConflictingInput ExitCode = 3

	// ExitOutOfRange indicates a month, year or month count is out of range.
	ExitOutOfRange ExitCode = 4

	// ExitConfigError indicates the configuration file could not be used.
	ExitConfigError ExitCode = 5
)

// ExitCodeFor maps an error onto the exit code for its kind.
func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidExpression):
		return ExitInvalidExpression
	case errors.Is(err, ErrConflictingInput):
		return ExitConflictingInput
	case errors.Is(err, ErrOutOfRangeMonth),
		errors.Is(err, ErrOutOfRangeYear),
		errors.Is(err, ErrOutOfRangeSpan):
		return ExitOutOfRange
	default:
		return ExitGeneralError
	}
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
