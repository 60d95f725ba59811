package datexpr

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/fcal/internal/model"
)

func intPtr(n int) *int { return &n }

var april2024 = model.CalendarMonth{Year: 2024, Month: 4}

// TestResolve_Tokens covers every token grammar against a fixed "today".
func TestResolve_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		today model.CalendarMonth
		want  model.DateSpan
	}{
		{
			name:  "four-digit year",
			expr:  "2024",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 1}, MonthsAfter: 11},
		},
		{
			name:  "two-digit year uses current century",
			expr:  "99",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2099, Month: 1}, MonthsAfter: 11},
		},
		{
			name:  "quarter two",
			expr:  "Q2",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 4}, MonthsAfter: 2},
		},
		{
			name:  "lower-case quarter",
			expr:  "q4",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 10}, MonthsAfter: 2},
		},
		{
			name:  "fiscal year four digits",
			expr:  "FY2024",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2023, Month: 7}, MonthsAfter: 11},
		},
		{
			name:  "fiscal year two digits",
			expr:  "fy25",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 7}, MonthsAfter: 11},
		},
		{
			name:  "current fiscal year before July",
			expr:  "FY",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2023, Month: 7}, MonthsAfter: 11},
		},
		{
			name:  "current fiscal year from July",
			expr:  "FY",
			today: model.CalendarMonth{Year: 2024, Month: 7},
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 7}, MonthsAfter: 11},
		},
		{
			name:  "fiscal quarter one is July",
			expr:  "FY24Q1",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2023, Month: 7}, MonthsAfter: 2},
		},
		{
			name:  "fiscal quarter two is October",
			expr:  "FY24Q2",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2023, Month: 10}, MonthsAfter: 2},
		},
		{
			name:  "fiscal quarter three is January",
			expr:  "fy2024q3",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 1}, MonthsAfter: 2},
		},
		{
			name:  "fiscal quarter four is April",
			expr:  "FY2024Q4",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 4}, MonthsAfter: 2},
		},
		{
			name:  "fiscal quarter of current fiscal year",
			expr:  "FYQ1",
			today: model.CalendarMonth{Year: 2024, Month: 9},
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 7}, MonthsAfter: 2},
		},
		{
			name:  "surrounding whitespace is ignored",
			expr:  "  q1 ",
			today: april2024,
			want:  model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 1}, MonthsAfter: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := Resolve(Input{Expression: tt.expr, Today: tt.today})
			require.NoError(t, err)
			assert.Equal(t, tt.want, span)
		})
	}
}

// TestResolve_FiscalYearProperty checks that FY<Y> always anchors at July of
// Y-1 and spans twelve months.
func TestResolve_FiscalYearProperty(t *testing.T) {
	for y := 1000; y <= 9999; y += 37 {
		span, err := Resolve(Input{Expression: fmt.Sprintf("FY%d", y), Today: april2024})
		require.NoError(t, err)
		require.Equal(t, model.CalendarMonth{Year: y - 1, Month: 7}, span.Anchor, "FY%d", y)
		require.Equal(t, 12, span.Len(), "FY%d", y)
	}
}

// TestResolve_QuarterProperty checks the first month of every quarter.
func TestResolve_QuarterProperty(t *testing.T) {
	for q := 1; q <= 4; q++ {
		span, err := Resolve(Input{Expression: fmt.Sprintf("Q%d", q), Today: april2024})
		require.NoError(t, err)
		assert.Equal(t, 3*(q-1)+1, span.Anchor.Month)
		assert.Equal(t, 2024, span.Anchor.Year)
		assert.Equal(t, 3, span.Len())
	}
}

// TestResolve_Flags covers the no-token paths.
func TestResolve_Flags(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want model.DateSpan
	}{
		{
			name: "nothing given is today",
			in:   Input{Today: april2024},
			want: model.DateSpan{Anchor: april2024},
		},
		{
			name: "today with before and after",
			in:   Input{Today: april2024, MonthsBefore: intPtr(1), MonthsAfter: intPtr(2)},
			want: model.DateSpan{Anchor: april2024, MonthsBefore: 1, MonthsAfter: 2},
		},
		{
			name: "year and month",
			in:   Input{Today: april2024, Year: intPtr(1999), Month: intPtr(12)},
			want: model.DateSpan{Anchor: model.CalendarMonth{Year: 1999, Month: 12}},
		},
		{
			name: "month alone uses current year",
			in:   Input{Today: april2024, Month: intPtr(2), MonthsAfter: intPtr(1)},
			want: model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 2}, MonthsAfter: 1},
		},
		{
			name: "year alone is a year view",
			in:   Input{Today: april2024, Year: intPtr(2030)},
			want: model.DateSpan{Anchor: model.CalendarMonth{Year: 2030, Month: 1}, MonthsAfter: 11},
		},
		{
			name: "year alone with before and after",
			in:   Input{Today: april2024, Year: intPtr(2024), MonthsBefore: intPtr(1), MonthsAfter: intPtr(1)},
			want: model.DateSpan{Anchor: model.CalendarMonth{Year: 2024, Month: 1}, MonthsBefore: 1, MonthsAfter: 12},
		},
		{
			name: "span reaching the first and last supported years",
			in:   Input{Today: april2024, Year: intPtr(1), Month: intPtr(1), MonthsAfter: intPtr(9999*12 - 1)},
			want: model.DateSpan{Anchor: model.CalendarMonth{Year: 1, Month: 1}, MonthsAfter: 9999*12 - 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := Resolve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, span)
		})
	}
}

// TestResolve_Errors verifies each error kind is reported for the right
// input.
func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{"unknown token", Input{Expression: "tomorrow"}, model.ErrInvalidExpression},
		{"quarter five", Input{Expression: "Q5"}, model.ErrInvalidExpression},
		{"three-digit year", Input{Expression: "202"}, model.ErrInvalidExpression},
		{"fiscal quarter zero", Input{Expression: "FY24Q0"}, model.ErrInvalidExpression},
		{"trailing junk", Input{Expression: "FY2024Q1x"}, model.ErrInvalidExpression},
		{"token with year and month", Input{Expression: "Q1", Year: intPtr(2024), Month: intPtr(3)}, model.ErrConflictingInput},
		{"token with year", Input{Expression: "2024", Year: intPtr(2024)}, model.ErrConflictingInput},
		{"quarter with after", Input{Expression: "Q1", MonthsAfter: intPtr(2)}, model.ErrConflictingInput},
		{"fiscal year with zero before", Input{Expression: "FY24", MonthsBefore: intPtr(0)}, model.ErrConflictingInput},
		{"fiscal quarter with before", Input{Expression: "FY24Q2", MonthsBefore: intPtr(1)}, model.ErrConflictingInput},
		{"month thirteen", Input{Month: intPtr(13)}, model.ErrOutOfRangeMonth},
		{"month zero", Input{Year: intPtr(2024), Month: intPtr(0)}, model.ErrOutOfRangeMonth},
		{"year zero", Input{Year: intPtr(0)}, model.ErrOutOfRangeYear},
		{"year token zero", Input{Expression: "0000"}, model.ErrOutOfRangeYear},
		{"fiscal year before year one", Input{Expression: "FY0001"}, model.ErrOutOfRangeYear},
		{"negative after", Input{MonthsAfter: intPtr(-1)}, model.ErrOutOfRangeSpan},
		{"bare year token with after", Input{Expression: "2024", MonthsAfter: intPtr(3)}, model.ErrConflictingInput},
		{"bare year token with zero before", Input{Expression: "24", MonthsBefore: intPtr(0)}, model.ErrConflictingInput},
		{"huge after", Input{MonthsAfter: intPtr(math.MaxInt)}, model.ErrOutOfRangeSpan},
		{"huge before", Input{MonthsBefore: intPtr(math.MaxInt)}, model.ErrOutOfRangeSpan},
		{"huge after on a year view", Input{Year: intPtr(2024), MonthsAfter: intPtr(math.MaxInt)}, model.ErrOutOfRangeSpan},
		{"before reaches year zero", Input{Year: intPtr(2), Month: intPtr(1), MonthsBefore: intPtr(30)}, model.ErrOutOfRangeYear},
		{"after passes year 9999", Input{Year: intPtr(9999), Month: intPtr(11), MonthsAfter: intPtr(2)}, model.ErrOutOfRangeYear},
		{"year view past year 9999", Input{Year: intPtr(9999), MonthsAfter: intPtr(1)}, model.ErrOutOfRangeYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Today = april2024
			_, err := Resolve(tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestResolver_FiscalYearStartMonth checks non-default fiscal calendars.
func TestResolver_FiscalYearStartMonth(t *testing.T) {
	t.Run("april start", func(t *testing.T) {
		r, err := NewResolver(4)
		require.NoError(t, err)

		span, err := r.Resolve(Input{Expression: "FY2025", Today: april2024})
		require.NoError(t, err)
		assert.Equal(t, model.CalendarMonth{Year: 2024, Month: 4}, span.Anchor)

		span, err = r.Resolve(Input{Expression: "FY2025Q4", Today: april2024})
		require.NoError(t, err)
		assert.Equal(t, model.CalendarMonth{Year: 2025, Month: 1}, span.Anchor)

		assert.Equal(t, 2025, r.CurrentFiscalYear(april2024))
		assert.Equal(t, 2024, r.CurrentFiscalYear(model.CalendarMonth{Year: 2024, Month: 3}))
	})

	t.Run("january start matches calendar year", func(t *testing.T) {
		r, err := NewResolver(1)
		require.NoError(t, err)

		span, err := r.Resolve(Input{Expression: "FY2024Q2", Today: april2024})
		require.NoError(t, err)
		assert.Equal(t, model.CalendarMonth{Year: 2024, Month: 4}, span.Anchor)
		assert.Equal(t, 2024, r.CurrentFiscalYear(model.CalendarMonth{Year: 2024, Month: 12}))
	})

	t.Run("invalid start month", func(t *testing.T) {
		_, err := NewResolver(0)
		assert.Error(t, err)
		_, err = NewResolver(13)
		assert.Error(t, err)
	})
}
