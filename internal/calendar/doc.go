// Package calendar renders month grids as fixed-width text.
//
// Each month is a 20-column block: a centered "Month Year" header, a row of
// two-letter weekday abbreviations starting at the configured week start,
// and one row per calendar week with days right-aligned in two-character
// cells separated by single spaces.
//
// Multiple months are laid out side by side, up to MonthsPerRow per group,
// joined by two spaces. Shorter grids in a group are padded with blank rows
// so every line of the group has the same width.
//
// Highlighting today's date is a separate pass over the laid-out lines, so
// the layout never depends on whether the terminal supports styling.
package calendar
