package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/dexdash/internal/alert"
	"github.com/five82/dexdash/internal/share"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Readings            []share.GlucoseReading // newest first
	NoData              bool                   // last successful poll returned nothing
	LastUpdated         time.Time
	LastSuccess         time.Time
	LastError           error
	ConsecutiveFailures int
	Alert               alert.State
}

// Latest returns the newest reading, if any.
func (s Snapshot) Latest() (share.GlucoseReading, bool) {
	if len(s.Readings) == 0 {
		return share.GlucoseReading{}, false
	}
	return s.Readings[0], true
}

// IsOffline returns true when the provider has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records one poll cycle. When err is non-nil the previous readings are
// kept but the error is recorded for visibility. An empty, error-free result
// keeps the previous readings and sets NoData.
func (s *Store) Update(readings []share.GlucoseReading, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.LastUpdated = now

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.LastSuccess = now
	s.snapshot.NoData = len(readings) == 0
	if !s.snapshot.NoData {
		s.snapshot.Readings = slices.Clone(readings)
	}
}

// SetAlert records the alert monitor's state.
func (s *Store) SetAlert(st alert.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Alert = st
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Readings = slices.Clone(s.snapshot.Readings)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
