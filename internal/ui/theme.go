package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dexdash/internal/alert"
)

// Theme is a dashboard palette. Bands colors glucose values by range.
type Theme struct {
	Name string

	Background string // help overlay backdrop, badge text
	Surface    string // header and footer bars
	Border     string // history table rule

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	Bands map[alert.Band]string
}

// Styles holds the lipgloss styles the dashboard renders with.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style

	bands      map[alert.Band]string
	background string
	muted      string
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	bar := lipgloss.NewStyle().
		Background(lipgloss.Color(t.Surface)).
		Padding(0, 1)

	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: bar.Foreground(lipgloss.Color(t.Text)),
		Footer: bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:   fg(t.Warning).Bold(true),

		bands:      t.Bands,
		background: t.Background,
		muted:      t.Muted,
	}
}

func (s Styles) bandColor(mgdl int) lipgloss.Color {
	if c := s.bands[alert.BandFor(mgdl)]; c != "" {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(s.muted)
}

// BandStyle returns a foreground style for a glucose value.
func (s Styles) BandStyle(mgdl int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.bandColor(mgdl))
}

// BandBadge returns an inverted badge style for a glucose value.
func (s Styles) BandBadge(mgdl int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(s.bandColor(mgdl)).
		Bold(true).
		Padding(0, 2)
}

// WithBackground returns a copy of Styles whose text styles paint bgColor, so
// segments rendered inside a bar do not punch holes in it.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

// helpStyles colors the bubbles/help footer to sit on the footer bar.
func helpStyles(t Theme) help.Styles {
	s := help.New().Styles
	bg := lipgloss.Color(t.Surface)
	s.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)).Background(bg)
	s.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Background(bg)
	s.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)).Background(bg)
	s.Ellipsis = s.ShortSeparator
	return s
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// bands builds a band palette. Lows and the highest highs share the alarm
// colors; the two shoulders either side of the target range are warnings.
func bands(low, caution, good, elevated, high, severe string) map[alert.Band]string {
	return map[alert.Band]string{
		alert.BandUnder70: low,
		alert.BandUnder80: caution,
		alert.BandInRange: good,
		alert.BandOver160: elevated,
		alert.BandOver180: caution,
		alert.BandOver250: high,
		alert.BandOver300: severe,
	}
}

func nightfoxTheme() Theme {
	// https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:       "Nightfox",
		Background: "#131a24",
		Surface:    "#192330",
		Border:     "#39506d",
		Text:       "#cdcecf",
		Muted:      "#738091",
		Faint:      "#71839b",
		Accent:     "#719cd6",
		Success:    "#81b29a",
		Warning:    "#dbc074",
		Danger:     "#c94f6d",
		Info:       "#63cdcf",
		Bands:      bands("#c94f6d", "#f4a261", "#81b29a", "#dbc074", "#c94f6d", "#9d79d6"),
	}
}

func kanagawaTheme() Theme {
	// https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:       "Kanagawa",
		Background: "#16161D",
		Surface:    "#1F1F28",
		Border:     "#54546D",
		Text:       "#DCD7BA",
		Muted:      "#C8C093",
		Faint:      "#727169",
		Accent:     "#7E9CD8",
		Success:    "#98BB6C",
		Warning:    "#E6C384",
		Danger:     "#E46876",
		Info:       "#7FB4CA",
		Bands:      bands("#E46876", "#FFA066", "#98BB6C", "#E6C384", "#E46876", "#957FB8"),
	}
}

func slateTheme() Theme {
	// Tailwind slate/sky: https://tailwindcss.com/docs/colors
	return Theme{
		Name:       "Slate",
		Background: "#020617",
		Surface:    "#0f172a",
		Border:     "#334155",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#38bdf8",
		Success:    "#22c55e",
		Warning:    "#f59e0b",
		Danger:     "#ef4444",
		Info:       "#06b6d4",
		Bands:      bands("#dc2626", "#f97316", "#22c55e", "#f59e0b", "#dc2626", "#a855f7"),
	}
}
