// Package httpapi serves the latest dashboard snapshot and metrics over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/dexdash/internal/metrics"
	"github.com/five82/dexdash/internal/share"
	"github.com/five82/dexdash/internal/state"
)

// SnapshotSource provides dashboard snapshots. *state.Store satisfies it.
type SnapshotSource interface {
	Snapshot() state.Snapshot
}

// RouterDeps groups what NewRouter needs.
type RouterDeps struct {
	Store    SnapshotSource
	Gatherer prometheus.Gatherer // nil disables /metrics
}

// NewRouter returns the status API routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	h := &handler{store: deps.Store}
	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/readings", h.readings)
	})
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}
	return r
}

type handler struct {
	store SnapshotSource
}

type healthResponse struct {
	Status              string `json:"status"`
	ConsecutiveFailures int    `json:"consecutiveFailures"`
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Snapshot()
	resp := healthResponse{Status: "ok", ConsecutiveFailures: snap.ConsecutiveFailures}
	status := http.StatusOK
	if snap.IsOffline() {
		resp.Status = "offline"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

type alertResponse struct {
	High          int    `json:"high"`
	Low           int    `json:"low"`
	Muted         bool   `json:"muted"`
	MuteRemaining int    `json:"muteRemaining"`
	OutOfRange    bool   `json:"outOfRange"`
	Alerts        uint64 `json:"alerts"`
}

type readingsResponse struct {
	Readings            []share.GlucoseReading `json:"readings"`
	NoData              bool                   `json:"noData"`
	Offline             bool                   `json:"offline"`
	LastUpdated         *time.Time             `json:"lastUpdated,omitempty"`
	LastSuccess         *time.Time             `json:"lastSuccess,omitempty"`
	LastError           string                 `json:"lastError,omitempty"`
	ErrorReason         string                 `json:"errorReason,omitempty"`
	ConsecutiveFailures int                    `json:"consecutiveFailures"`
	Alert               alertResponse          `json:"alert"`
}

// readings returns the snapshot; ?limit=n keeps the newest n readings.
func (h *handler) readings(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	list := snap.Readings
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		list = list[:min(n, len(list))]
	}
	if list == nil {
		list = []share.GlucoseReading{}
	}

	resp := readingsResponse{
		Readings:            list,
		NoData:              snap.NoData,
		Offline:             snap.IsOffline(),
		LastUpdated:         timePtr(snap.LastUpdated),
		LastSuccess:         timePtr(snap.LastSuccess),
		ConsecutiveFailures: snap.ConsecutiveFailures,
		Alert: alertResponse{
			High:          snap.Alert.High,
			Low:           snap.Alert.Low,
			Muted:         snap.Alert.Muted,
			MuteRemaining: snap.Alert.MuteRemaining,
			OutOfRange:    snap.Alert.OutOfRange,
			Alerts:        snap.Alert.Alerts,
		},
	}
	if snap.LastError != nil {
		resp.LastError = snap.LastError.Error()
		if reason, ok := share.ReasonOf(snap.LastError); ok {
			resp.ErrorReason = string(reason)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve runs srv until ctx is cancelled, then shuts it down.
func Serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("status api listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

// NewServer builds an http.Server for the status API.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
