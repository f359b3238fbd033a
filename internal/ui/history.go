package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dexdash/internal/share"
)

var historyColumns = []table.Column{
	{Title: "Time", Width: 6},
	{Title: "mg/dL", Width: 6},
	{Title: "mmol/L", Width: 7},
	{Title: "", Width: 2},
	{Title: "Trend", Width: 18},
}

func newHistoryTable(theme Theme) table.Model {
	t := table.New(
		table.WithColumns(historyColumns),
		table.WithFocused(false),
		table.WithHeight(MinHistoryRows),
	)
	t.SetStyles(historyStyles(theme))
	return t
}

func historyStyles(theme Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(theme.Muted)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(theme.Text))
	// The table never takes focus, so the cursor row is drawn like the rest.
	s.Selected = lipgloss.NewStyle()
	return s
}

func historyRows(readings []share.GlucoseReading) []table.Row {
	rows := make([]table.Row, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, table.Row{
			formatClock(r.Time),
			fmt.Sprintf("%d", r.MgDL),
			fmt.Sprintf("%.1f", r.MmolL),
			r.TrendArrow,
			r.TrendDescription,
		})
	}
	return rows
}

// historyHeight is the number of table rows that fit below the fixed lines.
func (m Model) historyHeight() int {
	// header, blank, current, strip, sparkline, alert line, blank,
	// table header (2), status, help
	const fixed = 11
	return m.height - fixed
}

func (m *Model) resizeHistory() {
	h := m.historyHeight()
	if h < MinHistoryRows {
		return
	}
	m.history.SetHeight(h)
	m.history.SetWidth(m.width)
}
