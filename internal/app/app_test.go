package app

import (
	"testing"
	"time"

	"github.com/five82/dexdash/internal/config"
)

func TestApplyOverrides_PollFloor(t *testing.T) {
	tests := []struct {
		name      string
		pollEvery int
		want      time.Duration
	}{
		{"unset keeps config", 0, 60 * time.Second},
		{"below floor clamps", 1, config.MinPollInterval},
		{"at floor", 5, 5 * time.Second},
		{"above floor", 30, 30 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{PollInterval: 60 * time.Second}
			applyOverrides(&cfg, Options{PollEvery: tt.pollEvery})
			if cfg.PollInterval != tt.want {
				t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, tt.want)
			}
		})
	}
}

func TestApplyOverrides_ListenAddr(t *testing.T) {
	cfg := config.Config{ListenAddr: "127.0.0.1:9000"}
	applyOverrides(&cfg, Options{})
	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Fatalf("ListenAddr = %q, want config value kept", cfg.ListenAddr)
	}
	applyOverrides(&cfg, Options{ListenAddr: ":9100"})
	if cfg.ListenAddr != ":9100" {
		t.Fatalf("ListenAddr = %q, want :9100", cfg.ListenAddr)
	}
}

func TestAcquireLimiter_NeverThrottlesTwoLoginsPerCycle(t *testing.T) {
	for _, interval := range []time.Duration{config.MinPollInterval, 60 * time.Second} {
		lim := acquireLimiter(interval)
		start := time.Now()
		for cycle := range 50 {
			at := start.Add(time.Duration(cycle) * interval)
			for n := range acquisitionsPerCycle {
				if !lim.AllowN(at, 1) {
					t.Fatalf("interval %v: cycle %d login %d throttled", interval, cycle, n+1)
				}
			}
		}
	}
}

func TestAcquireLimiter_CapsTightLoop(t *testing.T) {
	lim := acquireLimiter(60 * time.Second)
	at := time.Now()
	for n := range acquireBurst {
		if !lim.AllowN(at, 1) {
			t.Fatalf("login %d within burst throttled", n+1)
		}
	}
	if lim.AllowN(at, 1) {
		t.Fatalf("login beyond burst at the same instant should be throttled")
	}
}
