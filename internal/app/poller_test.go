package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/five82/dexdash/internal/alert"
	"github.com/five82/dexdash/internal/share"
	"github.com/five82/dexdash/internal/state"
)

type fakeFetcher struct {
	mu       sync.Mutex
	calls    int
	minutes  int
	maxCount int
	deadline bool
	results  [][]share.GlucoseReading
	errs     []error
}

func (f *fakeFetcher) Readings(ctx context.Context, minutes, maxCount int) ([]share.GlucoseReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.minutes, f.maxCount = minutes, maxCount
	_, f.deadline = ctx.Deadline()
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return nil, nil
}

func (f *fakeFetcher) Latest(context.Context) (share.GlucoseReading, bool, error) {
	return share.GlucoseReading{}, false, nil
}

func (f *fakeFetcher) Current(context.Context) (share.GlucoseReading, bool, error) {
	return share.GlucoseReading{}, false, nil
}

func (f *fakeFetcher) VerifySerialNumber(context.Context, string) (bool, error) {
	return false, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRecorder struct {
	polls  []error
	latest []*share.GlucoseReading
	alerts int
}

func (r *fakeRecorder) RecordPoll(latest *share.GlucoseReading, err error) {
	r.polls = append(r.polls, err)
	r.latest = append(r.latest, latest)
}

func (r *fakeRecorder) RecordAlert() { r.alerts++ }

func newTestPoller(f *fakeFetcher) (*Poller, *fakeRecorder) {
	rec := &fakeRecorder{}
	return &Poller{
		Fetcher:  f,
		Store:    &state.Store{},
		Monitor:  alert.NewMonitor(180, 76),
		Recorder: rec,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Minutes:  200,
		MaxCount: 40,
	}, rec
}

func TestPoller_RefreshStoresReadings(t *testing.T) {
	f := &fakeFetcher{results: [][]share.GlucoseReading{{{MgDL: 120}, {MgDL: 118}}}}
	p, rec := newTestPoller(f)

	p.Refresh(context.Background())

	if f.minutes != 200 || f.maxCount != 40 {
		t.Fatalf("Readings(%d, %d), want (200, 40)", f.minutes, f.maxCount)
	}
	if !f.deadline {
		t.Fatalf("cycle context should carry a deadline")
	}
	snap := p.Store.Snapshot()
	if latest, ok := snap.Latest(); !ok || latest.MgDL != 120 {
		t.Fatalf("Latest = %v, %v, want 120", latest, ok)
	}
	if len(rec.polls) != 1 || rec.polls[0] != nil || rec.latest[0].MgDL != 120 {
		t.Fatalf("recorder = %+v", rec)
	}
	if rec.alerts != 0 || snap.Alert.Alerts != 0 {
		t.Fatalf("in-range value should not alert")
	}
	if snap.Alert.High != 180 {
		t.Fatalf("alert state not published: %+v", snap.Alert)
	}
}

func TestPoller_RefreshFailureKeepsData(t *testing.T) {
	f := &fakeFetcher{
		results: [][]share.GlucoseReading{{{MgDL: 99}}},
		errs:    []error{nil, &share.Error{Kind: share.ErrProvider, Reason: share.ReasonTransport}},
	}
	p, rec := newTestPoller(f)

	p.Refresh(context.Background())
	p.Refresh(context.Background())

	snap := p.Store.Snapshot()
	if !errors.Is(snap.LastError, share.ErrProvider) {
		t.Fatalf("LastError = %v, want provider error", snap.LastError)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
	if latest, _ := snap.Latest(); latest.MgDL != 99 {
		t.Fatalf("previous readings lost: %+v", snap.Readings)
	}
	if len(rec.polls) != 2 || rec.polls[1] == nil {
		t.Fatalf("failure not recorded: %+v", rec.polls)
	}
}

func TestPoller_RefreshNoData(t *testing.T) {
	f := &fakeFetcher{}
	p, rec := newTestPoller(f)

	p.Refresh(context.Background())

	snap := p.Store.Snapshot()
	if !snap.NoData || snap.LastError != nil {
		t.Fatalf("snapshot = %+v, want no data without error", snap)
	}
	if len(rec.latest) != 1 || rec.latest[0] != nil {
		t.Fatalf("recorder latest = %+v, want one nil entry", rec.latest)
	}
}

func TestPoller_RefreshSoundsAlert(t *testing.T) {
	f := &fakeFetcher{results: [][]share.GlucoseReading{{{MgDL: 60}}, {{MgDL: 58}}}}
	p, rec := newTestPoller(f)

	p.Refresh(context.Background())
	p.Refresh(context.Background())

	if rec.alerts != 1 {
		t.Fatalf("alerts = %d, want 1 (second cycle is within the repeat window)", rec.alerts)
	}
	st := p.Store.Snapshot().Alert
	if !st.OutOfRange || st.Alerts != 1 {
		t.Fatalf("alert state = %+v", st)
	}
}

func TestPoller_MuteCountsEveryCycle(t *testing.T) {
	f := &fakeFetcher{
		results: [][]share.GlucoseReading{nil, nil, {{MgDL: 120}}},
		errs:    []error{&share.Error{Kind: share.ErrProvider, Reason: share.ReasonTransport}},
	}
	p, _ := newTestPoller(f)
	p.Monitor.Mute()
	p.Store.SetAlert(p.Monitor.State())

	// failed cycle
	p.Refresh(context.Background())
	if got := p.Store.Snapshot().Alert.MuteRemaining; got != alert.DefaultMuteCycles-1 {
		t.Fatalf("after failed cycle MuteRemaining = %d, want %d", got, alert.DefaultMuteCycles-1)
	}
	// no-data cycle
	p.Refresh(context.Background())
	if got := p.Store.Snapshot().Alert.MuteRemaining; got != alert.DefaultMuteCycles-2 {
		t.Fatalf("after empty cycle MuteRemaining = %d, want %d", got, alert.DefaultMuteCycles-2)
	}
	p.Refresh(context.Background())
	if got := p.Store.Snapshot().Alert.MuteRemaining; got != alert.DefaultMuteCycles-3 {
		t.Fatalf("after data cycle MuteRemaining = %d, want %d", got, alert.DefaultMuteCycles-3)
	}
}

func TestPoller_CancelledCycleIsNotRecorded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &fakeFetcher{errs: []error{context.Canceled}}
	p, rec := newTestPoller(f)

	p.Refresh(ctx)

	if len(rec.polls) != 0 || p.Store.Snapshot().LastError != nil {
		t.Fatalf("shutdown should not be recorded as a failed poll")
	}
}

func TestPoller_StartRunsImmediatelyAndStops(t *testing.T) {
	f := &fakeFetcher{}
	p, _ := newTestPoller(f)
	p.Interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for f.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if got := f.callCount(); got != 1 {
		t.Fatalf("calls = %d, want 1 immediate cycle", got)
	}
}
