// Package state provides thread-safe state management for dexdash.
//
// # Overview
//
// This package implements a small thread-safe store for sharing glucose
// readings and alert state between the background poller, the dashboard, and
// the status API. Polling updates meet rendering here.
//
// # Architecture
//
//	Producer (Poller):              Consumers (UI, status API):
//	┌──────────────────┐           ┌──────────────────┐
//	│ Readings()       │           │                  │
//	│      ↓           │           │                  │
//	│ store.Update()   │──────────→│ store.Snapshot() │
//	│ store.SetAlert() │  (mutex)  │      ↓           │
//	│  repeat...       │           │  render / encode │
//	└──────────────────┘           └──────────────────┘
//
// # Update Semantics
//
//	// Success with data: readings replaced
//	store.Update(readings, nil)
//	→ snapshot.Readings = readings
//	→ snapshot.NoData = false
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Success without data: previous readings kept
//	store.Update(nil, nil)
//	→ snapshot.NoData = true
//
//	// Failure: previous readings kept, error recorded
//	store.Update(nil, err)
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Two or more consecutive failures mark the snapshot offline.
//
// # Copying
//
// Snapshot clones the readings slice and wraps the last error, so callers can
// hold a snapshot while the poller keeps writing.
//
// The zero Store is ready to use.
package state
