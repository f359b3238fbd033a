package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/dexdash/internal/alert"
	"github.com/five82/dexdash/internal/prefs"
	"github.com/five82/dexdash/internal/state"
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Store       *state.Store
	Monitor     *alert.Monitor
	Prefs       prefs.Prefs
	PrefsPath   string
	Region      string
	RefreshTick time.Duration // zero uses DefaultUIInterval
	Bell        io.Writer     // nil uses os.Stdout
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	monitor     *alert.Monitor
	prefsPath   string
	region      string
	refreshTick time.Duration
	bell        io.Writer

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	history  table.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	flash      string
	flashUntil time.Time

	// Data state
	snapshot   state.Snapshot
	lastAlerts uint64
	highTarget int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.RefreshTick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	bell := opts.Bell
	if bell == nil {
		bell = os.Stdout
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	highTarget := opts.Prefs.HighTarget
	if highTarget == 0 {
		highTarget = prefs.Defaults().HighTarget
	}

	theme := GetTheme(opts.Prefs.Theme)
	h := help.New()
	h.Styles = helpStyles(theme)
	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		monitor:     opts.Monitor,
		prefsPath:   prefsPath,
		region:      opts.Region,
		refreshTick: tick,
		bell:        bell,
		theme:       theme,
		keys:        DefaultKeyMap(),
		help:        h,
		history:     newHistoryTable(theme),
		highTarget:  highTarget,
	}
	if m.monitor != nil {
		m.monitor.SetHigh(highTarget)
		m.snapshot.Alert = m.monitor.State()
		m.lastAlerts = m.snapshot.Alert.Alerts
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refreshTick)}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizeHistory()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		return m.handleSnapshot(state.Snapshot(msg))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help, except quit.
	if m.showHelp && !key.Matches(msg, m.keys.Quit) {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.history.SetStyles(historyStyles(m.theme))
		m.help.Styles = helpStyles(m.theme)
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Mute):
		m.toggleMute()
		return m, nil

	case key.Matches(msg, m.keys.TestAlert):
		m.setFlash("Test alert")
		return m, bellCmd(m.bell)
	}

	for _, t := range m.keys.targets() {
		if key.Matches(msg, t.binding) {
			m.setHighTarget(t.mgdl)
			return m, nil
		}
	}

	return m, nil
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.refreshTick))
	return m, tea.Batch(cmds...)
}

// handleSnapshot stores a fresh snapshot and rings the bell when the monitor
// has sounded since the last one.
func (m Model) handleSnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	m.snapshot = snap
	m.history.SetRows(historyRows(snap.Readings))

	if snap.Alert.Alerts > m.lastAlerts {
		m.lastAlerts = snap.Alert.Alerts
		return m, bellCmd(m.bell)
	}
	m.lastAlerts = snap.Alert.Alerts
	return m, nil
}

func (m *Model) toggleMute() {
	if m.monitor == nil {
		return
	}
	if m.monitor.State().Muted {
		m.monitor.Unmute()
		m.setFlash("Alerts unmuted")
	} else {
		m.monitor.Mute()
		m.setFlash(fmt.Sprintf("Alerts muted for %d polls", alert.DefaultMuteCycles))
	}
	m.publishAlert()
}

func (m *Model) setHighTarget(mgdl int) {
	m.highTarget = mgdl
	if m.monitor != nil {
		m.monitor.SetHigh(mgdl)
		m.publishAlert()
	}
	m.setFlash(fmt.Sprintf("High target %d mg/dL", mgdl))
	m.savePrefs()
}

// publishAlert pushes monitor state to the store so the status API sees UI
// changes before the next poll.
func (m *Model) publishAlert() {
	st := m.monitor.State()
	m.snapshot.Alert = st
	if m.store != nil {
		m.store.SetAlert(st)
	}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, HighTarget: m.highTarget}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.setFlash("Could not save preferences: " + err.Error())
	}
}

func (m *Model) setFlash(text string) {
	m.flash = text
	m.flashUntil = time.Now().Add(5 * time.Second)
}

// renderMain renders the dashboard.
func (m Model) renderMain() string {
	now := time.Now()
	var b strings.Builder

	b.WriteString(m.renderHeader(now))
	b.WriteString("\n\n")
	b.WriteString(m.renderCurrent(now))
	b.WriteString("\n")
	b.WriteString(m.renderStrip())
	b.WriteString("\n")
	b.WriteString(m.renderSparkline())
	b.WriteString("\n")
	b.WriteString(m.renderAlertLine())
	b.WriteString("\n\n")
	if m.historyHeight() >= MinHistoryRows {
		b.WriteString(m.history.View())
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus(now))
	b.WriteString("\n")
	b.WriteString(m.theme.Styles().Footer.Width(m.width).Render(m.help.View(m.keys)))

	return b.String()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func bellCmd(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		_, _ = io.WriteString(w, "\a")
		return nil
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the context
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
