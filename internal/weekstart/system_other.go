//go:build !darwin

package weekstart

// System returns the platform preference chain, which on this platform is
// the locale environment alone.
func System() WeekStartPreferenceProvider {
	return Chain{LocaleProvider{}}
}
