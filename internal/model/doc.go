// Package model defines the value types shared by the fcal CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (CalendarMonth, DateSpan, WeekStart, ColorMode) are built once
// per invocation from parsed input and consumed immediately by the renderer.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
