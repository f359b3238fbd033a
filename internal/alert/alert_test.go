package alert

import "testing"

func TestMonitor_SoundsImmediatelyThenRepeats(t *testing.T) {
	m := NewMonitor(180, 76)

	if !m.Observe(200) {
		t.Fatalf("first out-of-range cycle should sound")
	}
	for i := 1; i <= DefaultRepeatCycles; i++ {
		if m.Observe(200) {
			t.Fatalf("cycle %d sounded, want silence until the repeat interval passes", i)
		}
	}
	if !m.Observe(200) {
		t.Fatalf("alert should repeat after %d quiet cycles", DefaultRepeatCycles)
	}
	if got := m.State().Alerts; got != 2 {
		t.Fatalf("Alerts = %d, want 2", got)
	}
}

func TestMonitor_ReturningInRangeRearms(t *testing.T) {
	m := NewMonitor(180, 76)

	m.Observe(60)
	m.Observe(60)
	if m.Observe(120) {
		t.Fatalf("in-range value should not sound")
	}
	if m.State().OutOfRange {
		t.Fatalf("OutOfRange = true, want false")
	}
	if !m.Observe(60) {
		t.Fatalf("alert should sound immediately after re-entering out-of-range")
	}
}

func TestMonitor_Thresholds(t *testing.T) {
	tests := []struct {
		value int
		sound bool
	}{
		{75, true},
		{76, false},
		{179, false},
		{180, true},
	}
	for _, tt := range tests {
		m := NewMonitor(180, 76)
		if got := m.Observe(tt.value); got != tt.sound {
			t.Fatalf("Observe(%d) = %v, want %v", tt.value, got, tt.sound)
		}
	}

	m := NewMonitor(180, 76)
	m.SetHigh(160)
	if !m.Observe(165) {
		t.Fatalf("Observe(165) with high=160 should sound")
	}
	if m.State().High != 160 {
		t.Fatalf("High = %d, want 160", m.State().High)
	}
}

func TestMonitor_MuteSuppressesAndExpires(t *testing.T) {
	m := NewMonitor(180, 76)
	m.Mute()

	m.Tick()
	if m.Observe(250) {
		t.Fatalf("muted monitor should not sound")
	}
	st := m.State()
	if !st.Muted || st.MuteRemaining != DefaultMuteCycles-1 {
		t.Fatalf("state = %+v, want muted with %d remaining", st, DefaultMuteCycles-1)
	}

	for i := 2; i < DefaultMuteCycles; i++ {
		m.Tick()
		m.Observe(120)
	}
	if !m.State().Muted {
		t.Fatalf("mute expired early")
	}
	m.Tick()
	m.Observe(120)
	if m.State().Muted {
		t.Fatalf("mute should expire after %d cycles", DefaultMuteCycles)
	}
	if !m.Observe(250) {
		t.Fatalf("alert should sound once mute expired")
	}
}

func TestMonitor_TickCountsCyclesWithoutReadings(t *testing.T) {
	m := NewMonitor(180, 76)
	m.Mute()

	for i := 1; i < DefaultMuteCycles; i++ {
		m.Tick()
	}
	if st := m.State(); !st.Muted || st.MuteRemaining != 1 {
		t.Fatalf("state = %+v, want muted with 1 remaining", st)
	}
	m.Tick()
	if m.State().Muted {
		t.Fatalf("mute should expire after %d ticks with no readings", DefaultMuteCycles)
	}
	if !m.Observe(250) {
		t.Fatalf("first reading after mute expired should sound")
	}
}

func TestMonitor_ObserveDoesNotCountMute(t *testing.T) {
	m := NewMonitor(180, 76)
	m.Mute()
	m.Observe(120)
	m.Observe(120)
	if got := m.State().MuteRemaining; got != DefaultMuteCycles {
		t.Fatalf("MuteRemaining = %d, want %d", got, DefaultMuteCycles)
	}
}

func TestMonitor_Tick_NoopWhenUnmuted(t *testing.T) {
	m := NewMonitor(180, 76)
	m.Tick()
	if st := m.State(); st.Muted || st.MuteRemaining != 0 {
		t.Fatalf("state = %+v, want unmuted", st)
	}
}

func TestMonitor_Unmute(t *testing.T) {
	m := NewMonitor(180, 76)
	m.Mute()
	m.Unmute()
	if !m.Observe(40) {
		t.Fatalf("unmuted monitor should sound")
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		value int
		want  Band
	}{
		{39, BandUnder70},
		{70, BandUnder70},
		{71, BandUnder80},
		{80, BandUnder80},
		{81, BandInRange},
		{159, BandInRange},
		{160, BandOver160},
		{179, BandOver160},
		{180, BandOver180},
		{249, BandOver180},
		{250, BandOver250},
		{299, BandOver250},
		{300, BandOver300},
		{401, BandOver300},
	}
	for _, tt := range tests {
		if got := BandFor(tt.value); got != tt.want {
			t.Fatalf("BandFor(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
	if BandInRange.String() != "good" {
		t.Fatalf("BandInRange.String() = %q, want good", BandInRange.String())
	}
}
