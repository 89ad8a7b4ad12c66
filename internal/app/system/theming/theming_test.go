package theming_test

import (
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/theming"
)

func TestResolve_ExplicitModesPassThrough(t *testing.T) {
	schemes := []theming.Scheme{theming.SchemeLight, theming.SchemeDark}

	cases := []struct {
		mode theming.Mode
		want theming.ActiveTheme
	}{
		{theming.ModeLight, theming.ThemeLight},
		{theming.ModeDark, theming.ThemeDark},
		{theming.ModeDarkBlue, theming.ThemeDarkBlue},
	}

	for _, c := range cases {
		for _, s := range schemes {
			got := theming.Resolve(c.mode, s)
			if got != c.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", c.mode, s, got, c.want)
			}
		}
	}
}

func TestResolve_SystemFollowsScheme(t *testing.T) {
	if got := theming.Resolve(theming.ModeSystem, theming.SchemeDark); got != theming.ThemeDark {
		t.Errorf("system + dark scheme: got %q, want dark", got)
	}
	if got := theming.Resolve(theming.ModeSystem, theming.SchemeLight); got != theming.ThemeLight {
		t.Errorf("system + light scheme: got %q, want light", got)
	}
}

func TestResolve_UnknownModeFallsBackToSystem(t *testing.T) {
	if got := theming.Resolve(theming.Mode("sepia"), theming.SchemeDark); got != theming.ThemeDark {
		t.Errorf("unknown mode + dark scheme: got %q, want dark", got)
	}
	if got := theming.Resolve(theming.Mode(""), theming.SchemeLight); got != theming.ThemeLight {
		t.Errorf("unknown mode + light scheme: got %q, want light", got)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    theming.Mode
		wantErr bool
	}{
		{"light", theming.ModeLight, false},
		{"dark", theming.ModeDark, false},
		{"dark_blue", theming.ModeDarkBlue, false},
		{"system", theming.ModeSystem, false},
		{"  Dark  ", theming.ModeDark, false},
		{"SYSTEM", theming.ModeSystem, false},
		{"midnight", "", true},
		{"", "", true},
	}

	for _, c := range cases {
		got, err := theming.ParseMode(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error, got %q", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseMode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseScheme_DefaultsToLight(t *testing.T) {
	if got := theming.ParseScheme("dark"); got != theming.SchemeDark {
		t.Errorf("ParseScheme(dark) = %q", got)
	}
	for _, in := range []string{"", "light", "no-preference", "DARKISH"} {
		if got := theming.ParseScheme(in); got != theming.SchemeLight {
			t.Errorf("ParseScheme(%q) = %q, want light", in, got)
		}
	}
}

func TestTokens_EveryThemeHasDistinctTables(t *testing.T) {
	themes := []theming.ActiveTheme{theming.ThemeLight, theming.ThemeDark, theming.ThemeDarkBlue}

	seen := map[string]theming.ActiveTheme{}
	for _, th := range themes {
		ts := theming.Tokens(th)
		if ts.Theme != th {
			t.Errorf("Tokens(%q).Theme = %q", th, ts.Theme)
		}
		if ts.Colors.Background == "" || ts.Status.Overdue == "" || ts.Roles.Manager == "" {
			t.Errorf("Tokens(%q) has empty token values", th)
		}
		if prev, dup := seen[ts.Colors.Background]; dup {
			t.Errorf("themes %q and %q share background %q", prev, th, ts.Colors.Background)
		}
		seen[ts.Colors.Background] = th
	}
}

func TestTokens_UnknownThemeGetsLight(t *testing.T) {
	ts := theming.Tokens(theming.ActiveTheme("unknown"))
	if ts.Theme != theming.ThemeLight {
		t.Errorf("Tokens(unknown).Theme = %q, want light", ts.Theme)
	}
}
