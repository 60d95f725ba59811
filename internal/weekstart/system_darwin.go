//go:build darwin

package weekstart

// System returns the platform preference chain: the macOS user default
// first, then the locale environment.
func System() WeekStartPreferenceProvider {
	return Chain{AppleProvider{}, LocaleProvider{}}
}
