package datexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shinji-kodama/fcal/internal/model"
)

const (
	// DefaultFiscalYearStartMonth is July: fiscal year 2024 runs from
	// July 2023 through June 2024.
	DefaultFiscalYearStartMonth = 7

	// monthsPerQuarter is the fixed length of calendar and fiscal quarters.
	monthsPerQuarter = 3

	// monthsPerYear is the length of a calendar or fiscal year view.
	monthsPerYear = 12

	// maxSpanMonths bounds -B/-A: no wider span fits between MinYear and
	// MaxYear.
	maxSpanMonths = (model.MaxYear - model.MinYear + 1) * monthsPerYear
)

// Token grammars, matched against the lower-cased, trimmed token.
var (
	yearRegex          = regexp.MustCompile(`^(\d{2}|\d{4})$`)
	quarterRegex       = regexp.MustCompile(`^q([1-4])$`)
	fiscalYearRegex    = regexp.MustCompile(`^fy(\d{2}|\d{4})?$`)
	fiscalQuarterRegex = regexp.MustCompile(`^fy(\d{2}|\d{4})?q([1-4])$`)
)

// Input carries everything the resolver needs from one invocation.
// Pointer fields are nil when the corresponding flag was not given, which
// lets the resolver tell "-A 0" apart from no -A at all.
type Input struct {
	// Expression is the positional date token. Empty means none was given.
	Expression string

	// Year and Month are the explicit -y/-m flag values.
	Year  *int
	Month *int

	// MonthsBefore and MonthsAfter are the -B/-A flag values.
	MonthsBefore *int
	MonthsAfter  *int

	// Today is the month the invocation runs in. It supplies the current
	// year, century and fiscal year for tokens that omit them.
	Today model.CalendarMonth
}

// Resolver converts Input into a DateSpan under a fixed fiscal-year policy.
type Resolver struct {
	// fiscalStart is the calendar month (1-12) in which a fiscal year begins.
	fiscalStart int
}

// NewResolver creates a Resolver whose fiscal year starts in fiscalStartMonth.
func NewResolver(fiscalStartMonth int) (*Resolver, error) {
	if fiscalStartMonth < 1 || fiscalStartMonth > 12 {
		return nil, fmt.Errorf("fiscal year start month %d out of range (1-12)", fiscalStartMonth)
	}
	return &Resolver{fiscalStart: fiscalStartMonth}, nil
}

// Resolve resolves in with the default July fiscal year.
func Resolve(in Input) (model.DateSpan, error) {
	return (&Resolver{fiscalStart: DefaultFiscalYearStartMonth}).Resolve(in)
}

// Resolve validates in and returns the span of months to display.
//
// Errors wrap one of the model.Err* kinds:
//   - ErrConflictingInput when a token is combined with -y/-m/-A/-B.
//   - ErrInvalidExpression when the token matches no grammar.
//   - ErrOutOfRangeMonth / ErrOutOfRangeYear for values outside the calendar,
//     including spans whose first or last month falls outside years 1-9999.
//   - ErrOutOfRangeSpan for negative or oversized before/after counts.
func (r *Resolver) Resolve(in Input) (model.DateSpan, error) {
	span, err := r.resolve(in)
	if err != nil {
		return model.DateSpan{}, err
	}
	if err := checkBounds(span); err != nil {
		return model.DateSpan{}, err
	}
	return span, nil
}

func (r *Resolver) resolve(in Input) (model.DateSpan, error) {
	before, after, err := spanCounts(in)
	if err != nil {
		return model.DateSpan{}, err
	}

	expr := strings.TrimSpace(in.Expression)
	if expr != "" {
		if in.Year != nil || in.Month != nil {
			return model.DateSpan{}, fmt.Errorf("%w: date expression %q cannot be combined with --year or --month",
				model.ErrConflictingInput, expr)
		}
		return r.resolveExpression(expr, in)
	}

	switch {
	case in.Month != nil:
		year := in.Today.Year
		if in.Year != nil {
			year = *in.Year
		}
		anchor, err := model.NewCalendarMonth(year, *in.Month)
		if err != nil {
			return model.DateSpan{}, err
		}
		return model.DateSpan{Anchor: anchor, MonthsBefore: before, MonthsAfter: after}, nil

	case in.Year != nil:
		anchor, err := model.NewCalendarMonth(*in.Year, 1)
		if err != nil {
			return model.DateSpan{}, err
		}
		return yearSpan(anchor, before, after), nil

	default:
		return model.DateSpan{Anchor: in.Today, MonthsBefore: before, MonthsAfter: after}, nil
	}
}

// resolveExpression applies the token grammars in priority order.
// Every token fixes the months shown, so -A/-B cannot apply.
func (r *Resolver) resolveExpression(expr string, in Input) (model.DateSpan, error) {
	token := strings.ToLower(expr)

	var span model.DateSpan
	switch {
	case yearRegex.MatchString(token):
		year := expandYear(yearRegex.FindStringSubmatch(token)[1], in.Today)
		span = yearSpan(model.CalendarMonth{Year: year, Month: 1}, 0, 0)

	case quarterRegex.MatchString(token):
		q := quarterNumber(quarterRegex.FindStringSubmatch(token)[1])
		span = model.DateSpan{
			Anchor:      model.CalendarMonth{Year: in.Today.Year, Month: monthsPerQuarter*(q-1) + 1},
			MonthsAfter: monthsPerQuarter - 1,
		}

	case fiscalYearRegex.MatchString(token):
		fy := r.fiscalYear(fiscalYearRegex.FindStringSubmatch(token)[1], in.Today)
		span = model.DateSpan{Anchor: r.FiscalYearStart(fy), MonthsAfter: monthsPerYear - 1}

	case fiscalQuarterRegex.MatchString(token):
		m := fiscalQuarterRegex.FindStringSubmatch(token)
		fy := r.fiscalYear(m[1], in.Today)
		q := quarterNumber(m[2])
		span = model.DateSpan{
			Anchor:      r.FiscalYearStart(fy).AddMonths(monthsPerQuarter * (q - 1)),
			MonthsAfter: monthsPerQuarter - 1,
		}

	default:
		return model.DateSpan{}, fmt.Errorf("%w: %q (expected YYYY, YY, Q1-Q4, FY[YY[YY]] or FY[YY[YY]]Q1-Q4)",
			model.ErrInvalidExpression, expr)
	}

	if in.MonthsBefore != nil || in.MonthsAfter != nil {
		return model.DateSpan{}, fmt.Errorf("%w: %q already fixes the months shown; --months-before/--months-after cannot be used with it",
			model.ErrConflictingInput, expr)
	}
	if _, err := model.NewCalendarMonth(span.Anchor.Year, span.Anchor.Month); err != nil {
		return model.DateSpan{}, err
	}
	return span, nil
}

// FiscalYearStart returns the first month of fiscal year fy. A fiscal year
// is labelled by the calendar year it ends in, so unless fiscal years start
// in January the first month falls in fy-1.
func (r *Resolver) FiscalYearStart(fy int) model.CalendarMonth {
	if r.fiscalStart == 1 {
		return model.CalendarMonth{Year: fy, Month: 1}
	}
	return model.CalendarMonth{Year: fy - 1, Month: r.fiscalStart}
}

// CurrentFiscalYear returns the label of the fiscal year containing today.
func (r *Resolver) CurrentFiscalYear(today model.CalendarMonth) int {
	if r.fiscalStart == 1 || today.Month < r.fiscalStart {
		return today.Year
	}
	return today.Year + 1
}

// fiscalYear expands an optional year group from a fiscal token.
func (r *Resolver) fiscalYear(digits string, today model.CalendarMonth) int {
	if digits == "" {
		return r.CurrentFiscalYear(today)
	}
	return expandYear(digits, today)
}

// expandYear turns a 2- or 4-digit year into a full year. Two-digit years
// are placed in today's century, with no pivoting near century boundaries.
func expandYear(digits string, today model.CalendarMonth) int {
	// The regexes only admit digits, so Atoi cannot fail.
	n, _ := strconv.Atoi(digits)
	if len(digits) == 2 {
		return today.Year/100*100 + n
	}
	return n
}

func quarterNumber(digit string) int {
	q, _ := strconv.Atoi(digit)
	return q
}

// yearSpan builds a twelve-month view starting at anchor, widened by the
// -B/-A counts.
func yearSpan(anchor model.CalendarMonth, before, after int) model.DateSpan {
	return model.DateSpan{
		Anchor:       anchor,
		MonthsBefore: before,
		MonthsAfter:  monthsPerYear - 1 + after,
	}
}

// spanCounts returns the -B/-A values, defaulting to zero.
func spanCounts(in Input) (before, after int, err error) {
	if in.MonthsBefore != nil {
		before = *in.MonthsBefore
	}
	if in.MonthsAfter != nil {
		after = *in.MonthsAfter
	}
	if before < 0 || after < 0 {
		return 0, 0, fmt.Errorf("%w: --months-before and --months-after must be zero or greater (got %d, %d)",
			model.ErrOutOfRangeSpan, before, after)
	}
	if before > maxSpanMonths || after > maxSpanMonths {
		return 0, 0, fmt.Errorf("%w: --months-before and --months-after must be at most %d (got %d, %d)",
			model.ErrOutOfRangeSpan, maxSpanMonths, before, after)
	}
	return before, after, nil
}

// checkBounds reports an error when the span starts before MinYear or ends
// after MaxYear. Counts are already capped by spanCounts, so the month
// arithmetic cannot overflow.
func checkBounds(span model.DateSpan) error {
	first := span.First()
	last := span.Anchor.AddMonths(span.MonthsAfter)
	if first.Year < model.MinYear || last.Year > model.MaxYear {
		return fmt.Errorf("%w: %s through %s falls outside years %d-%d",
			model.ErrOutOfRangeYear, first, last, model.MinYear, model.MaxYear)
	}
	return nil
}
