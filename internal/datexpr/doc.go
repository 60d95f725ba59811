// Package datexpr turns the date input of an fcal invocation into a
// model.DateSpan.
//
// The input is either a free-form token or explicit year/month flags,
// optionally widened by months-before/after counts. Supported tokens,
// case-insensitive and tried in this order:
//
//	2024, 24      calendar year (January-December)
//	Q2            calendar quarter of the current year
//	FY2024, FY24  fiscal year, labelled by the calendar year it ends in
//	FY, FYQ3      fiscal year / quarter of the current fiscal year
//	FY24Q3        fiscal quarter of the given fiscal year
//
// Two-digit years always land in the current century.
package datexpr
