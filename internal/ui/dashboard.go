package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dexdash/internal/share"
)

// renderHeader renders the top bar: name, region, theme and last update.
func (m Model) renderHeader(now time.Time) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("dexdash", styles.Logo)}
	if m.region != "" {
		parts = append(parts, bg.Render(strings.ToUpper(m.region), styles.MutedText))
	}
	parts = append(parts, bg.Render("updated "+formatAge(now, m.snapshot.LastSuccess), styles.MutedText))
	if m.snapshot.IsOffline() {
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
	}
	parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCurrent renders the newest reading: value, arrow, description, mmol/L
// and change since the previous reading.
func (m Model) renderCurrent(now time.Time) string {
	styles := m.theme.Styles()

	latest, ok := m.snapshot.Latest()
	if !ok {
		msg := "Waiting for first reading..."
		if m.snapshot.NoData {
			msg = "No readings in the current window"
		}
		return "  " + styles.MutedText.Render(msg)
	}

	band := styles.BandStyle(latest.MgDL).Bold(true)
	parts := []string{
		styles.BandBadge(latest.MgDL).Render(fmt.Sprintf("%d", latest.MgDL)),
		styles.MutedText.Render("mg/dL"),
		band.Render(ternary(latest.TrendArrow == "", "?", latest.TrendArrow)),
	}
	if m.width == 0 || m.width >= LayoutCompactWidth {
		if latest.TrendDescription != "" {
			parts = append(parts, styles.Text.Render(latest.TrendDescription))
		}
		parts = append(parts, styles.InfoText.Render(fmt.Sprintf("%.1f mmol/L", latest.MmolL)))
	}
	if delta := formatDelta(m.snapshot.Readings); delta != "" {
		parts = append(parts, styles.MutedText.Render("("+delta+")"))
	}

	line := "  " + strings.Join(parts, "  ")

	age := formatClock(latest.Time) + " · " + formatAge(now, latest.Time)
	if !latest.Time.IsZero() && now.Sub(latest.Time) > StaleAfter {
		line += "  " + styles.WarningText.Render("stale "+age)
	} else {
		line += "  " + styles.FaintText.Render(age)
	}
	return line
}

// renderStrip renders the recent-readings dots, oldest on the left.
func (m Model) renderStrip() string {
	styles := m.theme.Styles()
	values := stripValues(m.snapshot.Readings, StripLength)

	dots := make([]string, 0, StripLength)
	for i := len(values); i < StripLength; i++ {
		dots = append(dots, styles.FaintText.Render("○"))
	}
	for _, v := range values {
		dots = append(dots, styles.BandStyle(v).Render("●"))
	}
	return "  " + strings.Join(dots, " ")
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// renderSparkline renders the recent trend as block characters colored by
// range, oldest on the left.
func (m Model) renderSparkline() string {
	styles := m.theme.Styles()
	values := stripValues(m.snapshot.Readings, SparklineLength)
	if len(values) == 0 {
		return "  " + styles.FaintText.Render(strings.Repeat(string(sparkBlocks[0]), SparklineLength))
	}

	var b strings.Builder
	for i, level := range sparkLevels(values, len(sparkBlocks)) {
		b.WriteString(styles.BandStyle(values[i]).Render(string(sparkBlocks[level])))
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return "  " + b.String() + "  " + styles.FaintText.Render(fmt.Sprintf("%d-%d", lo, hi))
}

// renderAlertLine renders thresholds and alert state.
func (m Model) renderAlertLine() string {
	styles := m.theme.Styles()
	st := m.snapshot.Alert

	high := st.High
	if high == 0 {
		high = m.highTarget
	}
	parts := []string{
		styles.MutedText.Render(fmt.Sprintf("high %d", high)),
	}
	if st.Low > 0 {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("low %d", st.Low)))
	}
	parts = append(parts, styles.MutedText.Render(fmt.Sprintf("alerts %d", st.Alerts)))
	if st.OutOfRange {
		parts = append(parts, styles.DangerText.Render("OUT OF RANGE"))
	}
	if st.Muted {
		parts = append(parts, styles.WarningText.Render(fmt.Sprintf("muted (%d left)", st.MuteRemaining)))
	}
	return "  " + strings.Join(parts, styles.FaintText.Render(" · "))
}

// renderStatus renders the last error, a no-data notice, or a transient
// message from a key action.
func (m Model) renderStatus(now time.Time) string {
	styles := m.theme.Styles()
	line := lipgloss.NewStyle().Width(m.width)

	if m.flash != "" && now.Before(m.flashUntil) {
		return line.Render(" " + styles.AccentText.Render(m.flash))
	}

	snap := m.snapshot
	switch {
	case snap.LastError != nil:
		msg := describeError(snap.LastError)
		if snap.ConsecutiveFailures > 1 {
			msg = fmt.Sprintf("%s (%d failed polls, retrying)", msg, snap.ConsecutiveFailures)
		}
		return line.Render(" " + styles.DangerText.Render(msg))
	case snap.NoData:
		return line.Render(" " + styles.WarningText.Render("Provider returned no readings"))
	case snap.LastUpdated.IsZero():
		return line.Render(" " + styles.MutedText.Render("Connecting..."))
	default:
		return line.Render(" " + styles.SuccessText.Render("ok"))
	}
}

// describeError turns client errors into a short status message.
func describeError(err error) string {
	reason, ok := share.ReasonOf(err)
	if !ok {
		return err.Error()
	}
	switch reason {
	case share.ReasonAccountNotFound, share.ReasonPasswordInvalid, share.ReasonAccountUnknown:
		return "Login failed: check username and password"
	case share.ReasonMaxAttempts:
		return "Account locked: too many login attempts"
	case share.ReasonUsernameEmpty, share.ReasonPasswordEmpty:
		return "Missing credentials"
	case share.ReasonTransport:
		return "Provider unreachable"
	case share.ReasonThrottled:
		return "Login attempts paused"
	default:
		return err.Error()
	}
}
