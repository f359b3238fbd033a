package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/dexdash/internal/alert"
	"github.com/five82/dexdash/internal/share"
	"github.com/five82/dexdash/internal/state"
)

const (
	defaultPollInterval   = 60 * time.Second
	defaultRequestTimeout = 20 * time.Second
)

// PollRecorder receives per-cycle results. *metrics.Collector satisfies it.
type PollRecorder interface {
	RecordPoll(latest *share.GlucoseReading, err error)
	RecordAlert()
}

// Poller refreshes the store from a ReadingFetcher once per interval.
type Poller struct {
	Fetcher  share.ReadingFetcher
	Store    *state.Store
	Monitor  *alert.Monitor
	Recorder PollRecorder // optional
	Logger   *slog.Logger // nil uses slog.Default()

	Interval time.Duration // zero uses 60s
	Timeout  time.Duration // per-cycle deadline; zero uses 20s
	Minutes  int
	MaxCount int
}

// Start launches a background goroutine that refreshes the store at a fixed
// cadence. The first cycle runs immediately. It returns immediately.
func (p *Poller) Start(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			p.Refresh(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Refresh runs one poll cycle. Cycles never overlap because the loop in Start
// waits for each to finish; a failed cycle is recorded and logged, never fatal.
func (p *Poller) Refresh(ctx context.Context) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	cycleCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	readings, err := p.Fetcher.Readings(cycleCtx, p.Minutes, p.MaxCount)
	if err != nil && ctx.Err() != nil {
		return
	}
	if p.Monitor != nil {
		p.Monitor.Tick()
		defer func() { p.Store.SetAlert(p.Monitor.State()) }()
	}

	if err != nil {
		p.Store.Update(nil, err)
		p.record(nil, err)
		reason, _ := share.ReasonOf(err)
		logger.Warn("poll failed", "error", err, "reason", string(reason))
		return
	}

	p.Store.Update(readings, nil)
	if len(readings) == 0 {
		p.record(nil, nil)
		logger.Info("poll returned no readings")
		return
	}

	latest := readings[0]
	p.record(&latest, nil)
	if p.Monitor != nil {
		if p.Monitor.Observe(latest.MgDL) {
			logger.Warn("glucose out of range", "mgdl", latest.MgDL, "trend", latest.TrendDescription)
			if p.Recorder != nil {
				p.Recorder.RecordAlert()
			}
		}
	}
}

func (p *Poller) record(latest *share.GlucoseReading, err error) {
	if p.Recorder != nil {
		p.Recorder.RecordPoll(latest, err)
	}
}
