package weekstart

import (
	"github.com/shinji-kodama/fcal/internal/model"
)

// WeekStartPreferenceProvider reports a first-day-of-week preference.
// ok is false when the provider has no opinion (unset, unreadable, or not
// supported on this platform).
type WeekStartPreferenceProvider interface {
	WeekStart() (ws model.WeekStart, ok bool)
}

// ProviderFunc adapts a plain function to WeekStartPreferenceProvider.
type ProviderFunc func() (model.WeekStart, bool)

// WeekStart calls f.
func (f ProviderFunc) WeekStart() (model.WeekStart, bool) {
	return f()
}

// Chain asks each provider in order and returns the first answer.
type Chain []WeekStartPreferenceProvider

// WeekStart returns the first preference reported by the chain.
func (c Chain) WeekStart() (model.WeekStart, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if ws, ok := p.WeekStart(); ok && ws.IsValid() {
			return ws, true
		}
	}
	return 0, false
}

// Preferred returns p's preference, or model.DefaultWeekStart when p is nil
// or has none.
func Preferred(p WeekStartPreferenceProvider) model.WeekStart {
	if p == nil {
		return model.DefaultWeekStart
	}
	if ws, ok := p.WeekStart(); ok && ws.IsValid() {
		return ws
	}
	return model.DefaultWeekStart
}
