package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/five82/dexdash/internal/alert"
	"github.com/five82/dexdash/internal/config"
	"github.com/five82/dexdash/internal/httpapi"
	"github.com/five82/dexdash/internal/logging"
	"github.com/five82/dexdash/internal/metrics"
	"github.com/five82/dexdash/internal/prefs"
	"github.com/five82/dexdash/internal/share"
	"github.com/five82/dexdash/internal/state"
	"github.com/five82/dexdash/internal/ui"
)

// Options configure the dexdash application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/dexdash/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
	ListenAddr string // overrides listen_addr when set
}

// ErrNoCredentials is returned when neither the config file nor the
// environment supplies a username and password.
var ErrNoCredentials = errors.New("no Share credentials configured")

// Run boots the dexdash TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.HasCredentials() {
		path := opts.ConfigPath
		if path == "" {
			path = config.DefaultPath()
		}
		return fmt.Errorf("%w: set username and password in %s or DEXDASH_USERNAME/DEXDASH_PASSWORD", ErrNoCredentials, path)
	}
	applyOverrides(&cfg, opts)

	userPrefs := prefs.Load(opts.PrefsPath)

	logger, logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	client, err := share.NewClient(share.Options{
		Username: cfg.Username,
		Password: cfg.Password,
		Region:   share.Region(cfg.Region),
		BaseURL:  cfg.BaseURL,
		Timeout:  cfg.RequestTimeout,
		Logger:   logger,
		Observer: collector,

		AcquireLimiter: acquireLimiter(cfg.PollInterval),
	})
	if err != nil {
		return fmt.Errorf("init share client: %w", err)
	}

	store := &state.Store{}
	monitor := alert.NewMonitor(userPrefs.HighTarget, cfg.LowThreshold)
	store.SetAlert(monitor.State())

	poller := &Poller{
		Fetcher:  client,
		Store:    store,
		Monitor:  monitor,
		Recorder: collector,
		Logger:   logger,
		Interval: cfg.PollInterval,
		Timeout:  cfg.RequestTimeout,
		Minutes:  cfg.Minutes,
		MaxCount: cfg.MaxCount,
	}

	logger.Info("dexdash starting",
		"base_url", client.BaseURL(),
		"poll_interval", cfg.PollInterval.String(),
		"minutes", cfg.Minutes,
		"max_count", cfg.MaxCount,
	)

	// Start background poller; its first cycle runs immediately.
	poller.Start(ctx)

	if cfg.ListenAddr != "" {
		srv := httpapi.NewServer(cfg.ListenAddr, httpapi.NewRouter(httpapi.RouterDeps{
			Store:    store,
			Gatherer: reg,
		}))
		go func() {
			if err := httpapi.Serve(ctx, srv, logger); err != nil {
				logger.Error("status api stopped", "error", err)
			}
		}()
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		Monitor:   monitor,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Region:    cfg.Region,
	}
	return ui.Run(uiOpts)
}

// applyOverrides layers command-line options over the loaded config. The poll
// interval keeps the same floor as the config file.
func applyOverrides(cfg *config.Config, opts Options) {
	if opts.PollEvery > 0 {
		cfg.PollInterval = max(time.Duration(opts.PollEvery)*time.Second, config.MinPollInterval)
	}
	if opts.ListenAddr != "" {
		cfg.ListenAddr = opts.ListenAddr
	}
}

// acquireLimiter allows the two logins a cycle can need (first login plus one
// retry after a rejection) on every cycle, and a short burst on top. A wrong
// password therefore costs at most two attempts per poll.
func acquireLimiter(pollInterval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(pollInterval/acquisitionsPerCycle), acquireBurst)
}

const (
	acquisitionsPerCycle = 2
	acquireBurst         = 4
)
