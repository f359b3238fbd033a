// Package alert decides when an out-of-range glucose value should sound an
// alert and classifies values into display bands.
package alert

import "sync"

const (
	// DefaultRepeatCycles is how many further out-of-range poll cycles pass
	// before an alert sounds again.
	DefaultRepeatCycles = 60
	// DefaultMuteCycles is how many poll cycles a mute lasts.
	DefaultMuteCycles = 100
)

// State is a point-in-time view of a Monitor.
type State struct {
	High          int
	Low           int
	Muted         bool
	MuteRemaining int
	OutOfRange    bool
	Alerts        uint64 // total alerts sounded; increases by one per alert
}

// Monitor tracks per-cycle alert state. An out-of-range value sounds
// immediately, then again after DefaultRepeatCycles further out-of-range
// cycles. Returning to range re-arms it. Muting suppresses the sound but not
// the cycle counting, and expires after DefaultMuteCycles calls to Tick.
type Monitor struct {
	mu sync.Mutex

	high         int
	low          int
	repeatCycles int
	muteCycles   int

	counter    int
	muted      bool
	mutedFor   int
	outOfRange bool
	alerts     uint64
}

// NewMonitor returns a Monitor alerting at or above high and below low.
func NewMonitor(high, low int) *Monitor {
	return &Monitor{
		high:         high,
		low:          low,
		repeatCycles: DefaultRepeatCycles,
		muteCycles:   DefaultMuteCycles,
		counter:      DefaultRepeatCycles,
	}
}

// Tick counts one poll cycle against an active mute. Call it once per cycle,
// before Observe, whether or not the cycle produced a reading.
func (m *Monitor) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.muted {
		return
	}
	m.mutedFor++
	if m.mutedFor >= m.muteCycles {
		m.muted = false
		m.mutedFor = 0
	}
}

// Observe records one poll cycle's newest value and reports whether an alert
// should sound now.
func (m *Monitor) Observe(mgdl int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	sound := false
	m.outOfRange = mgdl >= m.high || mgdl < m.low
	if m.outOfRange {
		if m.counter >= m.repeatCycles {
			sound = !m.muted
			m.counter = 0
		} else {
			m.counter++
		}
	} else {
		m.counter = m.repeatCycles
	}

	if sound {
		m.alerts++
	}
	return sound
}

// Mute silences alerts for the next DefaultMuteCycles cycles.
func (m *Monitor) Mute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = true
	m.mutedFor = 0
}

// Unmute cancels an active mute.
func (m *Monitor) Unmute() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = false
	m.mutedFor = 0
}

// SetHigh changes the high threshold.
func (m *Monitor) SetHigh(high int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.high = high
}

// State returns a copy of the monitor's state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	remaining := 0
	if m.muted {
		remaining = m.muteCycles - m.mutedFor
	}
	return State{
		High:          m.high,
		Low:           m.low,
		Muted:         m.muted,
		MuteRemaining: remaining,
		OutOfRange:    m.outOfRange,
		Alerts:        m.alerts,
	}
}
