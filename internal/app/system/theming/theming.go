// Package theming resolves a user's theme preference to an active theme and
// exposes the per-theme design token tables consumed by mobile clients.
//
// Resolution rules:
//   - mode "system" follows the OS color scheme (dark → dark, else light)
//   - any explicit mode (including "dark_blue") passes through unchanged
//
// Token tables are fixed at compile time; there is no runtime mutation. The
// active theme is derived on every request, never stored.
package theming

import (
	"fmt"
	"strings"
)

// Mode is a user's stored theme preference.
type Mode string

const (
	ModeLight    Mode = "light"
	ModeDark     Mode = "dark"
	ModeDarkBlue Mode = "dark_blue"
	ModeSystem   Mode = "system"
)

// DefaultMode is used when a user has never chosen a theme.
const DefaultMode = ModeSystem

// ActiveTheme is a resolved theme. It is always one of the three concrete
// themes; "system" never appears here.
type ActiveTheme string

const (
	ThemeLight    ActiveTheme = "light"
	ThemeDark     ActiveTheme = "dark"
	ThemeDarkBlue ActiveTheme = "dark_blue"
)

// Scheme is the OS-reported color scheme sent by the client.
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// ParseMode validates a stored or submitted mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	case ModeDarkBlue:
		return ModeDarkBlue, nil
	case ModeSystem:
		return ModeSystem, nil
	}
	return "", fmt.Errorf("unknown theme mode %q", s)
}

// ParseScheme normalizes an OS color scheme value. Anything that is not
// "dark" is treated as light, so clients that omit the scheme get a sane
// result.
func ParseScheme(s string) Scheme {
	if strings.EqualFold(strings.TrimSpace(s), string(SchemeDark)) {
		return SchemeDark
	}
	return SchemeLight
}

// Resolve maps a stored mode and the OS scheme to the theme to render.
// It is total over its inputs: unrecognized modes fall back to DefaultMode.
func Resolve(mode Mode, scheme Scheme) ActiveTheme {
	switch mode {
	case ModeLight:
		return ThemeLight
	case ModeDark:
		return ThemeDark
	case ModeDarkBlue:
		return ThemeDarkBlue
	}
	// ModeSystem and anything unrecognized follow the OS scheme.
	if scheme == SchemeDark {
		return ThemeDark
	}
	return ThemeLight
}
