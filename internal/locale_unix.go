//go:build !windows && !darwin

package internal

// platformLocale has nothing beyond the environment to consult on Unix-like systems
func platformLocale() string {
	return ""
}
