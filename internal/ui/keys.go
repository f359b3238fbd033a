package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the dashboard.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Alerts
	Mute      key.Binding
	TestAlert key.Binding

	// High target
	Target160 key.Binding
	Target180 key.Binding
	Target200 key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Mute/unmute alerts"),
		),
		TestAlert: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Test alert"),
		),

		Target160: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "High target 160"),
		),
		Target180: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "High target 180"),
		),
		Target200: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "High target 200"),
		),
	}
}

// targets pairs each high-target binding with its threshold in mg/dL.
func (k keyMap) targets() []struct {
	binding key.Binding
	mgdl    int
} {
	return []struct {
		binding key.Binding
		mgdl    int
	}{
		{k.Target160, 160},
		{k.Target180, 180},
		{k.Target200, 200},
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mute, k.TestAlert, k.CycleTheme, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Mute, k.TestAlert},
		{k.Target160, k.Target180, k.Target200},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
