// Package app provides the orchestration layer for dexdash.
//
// # Overview
//
// This package wires configuration, logging, metrics, the Share client, the
// alert monitor, the status API and the UI together. It is the composition
// root where all dependencies are initialized and connected.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config, env credentials
//	       ├─────> prefs.Load()         Theme and high target
//	       ├─────> logging.OpenFile()   JSON log file
//	       ├─────> metrics.NewCollector Prometheus registry
//	       ├─────> share.NewClient()    Provider client
//	       ├─────> Poller.Start()       Background updates
//	       ├─────> httpapi.Serve()      Optional status API
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ Poller.Start() goroutine                │
//	│  ├─> Readings(minutes, maxCount)        │
//	│  ├─> store.Update()                     │
//	│  ├─> monitor.Observe(newest)            │
//	│  └─> store.SetAlert()                   │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller runs one cycle immediately, then once per interval (default 60
// seconds). Each cycle has its own deadline (request_timeout_seconds). Cycles
// never overlap. A failed cycle keeps the previous readings, records the
// error in the store and the metrics, logs it, and waits for the next tick.
//
// # Error Handling
//
// Run returns an error only for startup failures: bad config, missing
// credentials, an unusable log file, or a client that cannot be built.
// Nothing the provider does at runtime stops the process.
package app
