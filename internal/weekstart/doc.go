// Package weekstart determines the operating system's preferred first day
// of the week.
//
// The lookup sits behind the WeekStartPreferenceProvider interface so the
// resolver and renderer never touch platform APIs. Providers report
// whether they found a preference; Preferred walks them in order and falls
// back to Monday.
//
// Two sources are supported:
//   - the POSIX locale environment (LC_ALL, LC_TIME, LANG), whose territory
//     is mapped to its customary first weekday
//   - on macOS, the AppleFirstWeekday user default
package weekstart
