package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dexdash/internal/alert"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemesColorEveryBand(t *testing.T) {
	bands := []alert.Band{
		alert.BandUnder70, alert.BandUnder80, alert.BandInRange,
		alert.BandOver160, alert.BandOver180, alert.BandOver250, alert.BandOver300,
	}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, b := range bands {
			if th.Bands[b] == "" {
				t.Errorf("theme %s has no color for band %s", name, b)
			}
		}
		if th.Bands[alert.BandInRange] == th.Bands[alert.BandUnder70] {
			t.Errorf("theme %s: in-range and low share a color", name)
		}
	}
}

func TestHelpStylesSitOnSurface(t *testing.T) {
	th := GetTheme("Kanagawa")
	s := helpStyles(th)
	if got := s.ShortKey.GetForeground(); got != lipgloss.Color(th.Warning) {
		t.Fatalf("ShortKey foreground = %v, want %v", got, th.Warning)
	}
	if got := s.ShortDesc.GetBackground(); got != lipgloss.Color(th.Surface) {
		t.Fatalf("ShortDesc background = %v, want %v", got, th.Surface)
	}
	if got := th.Styles().Footer.GetBackground(); got != lipgloss.Color(th.Surface) {
		t.Fatalf("Footer background = %v, want %v", got, th.Surface)
	}
}
