// Package ui provides the terminal dashboard for dexdash.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea model. It never talks to the provider: it
// reads state.Store snapshots on a one-second tick and drives the
// alert.Monitor in response to keys. The poller owns all network I/O.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key handling, and Run
//   - dashboard.go: header, current reading, dot strip, alert and status lines
//   - history.go: bubbles/table history of the readings window
//   - keys.go: key bindings (bubbles/key) and help footer entries
//   - help.go: full-screen help overlay
//   - theme.go: palettes and lipgloss styles, including glucose band colors
//
// # Layout
//
//	dexdash  US  updated 12s ago  Nightfox
//
//	  145  mg/dL  →  steady  8.0 mmol/L  (-5)  14:32 · 2m ago
//	  ● ● ● ● ● ● ● ● ● ●
//	  high 180 · low 76 · alerts 0
//
//	  Time    mg/dL   mmol/L     Trend
//	  ...
//	 ok
//	 m mute • a test alert • T theme • h help • e quit
//
// Values are colored by band (see alert.BandFor). The strip shows the ten
// newest readings, oldest on the left; missing slots are hollow.
//
// # Alerts
//
// The bell rings when the snapshot's alert count increases, and on "a".
// "m" toggles the monitor's mute. "1", "2" and "3" set the high target to
// 160, 180 and 200 mg/dL. Theme and high target are saved to prefs.
package ui
