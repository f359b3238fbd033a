package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything dexdash needs to poll one Share account.
type Config struct {
	Username string
	Password string
	Region   string
	BaseURL  string

	PollInterval   time.Duration
	RequestTimeout time.Duration
	Minutes        int
	MaxCount       int

	LowThreshold int

	LogFile    string
	ListenAddr string
}

const (
	defaultConfigPath     = "~/.config/dexdash/config.toml"
	defaultLogFile        = "~/.local/state/dexdash/dexdash.log"
	defaultRegion         = "us"
	defaultPollSeconds    = 60
	minPollSeconds        = 5
	defaultTimeoutSeconds = 20
	defaultMinutes        = 200
	defaultMaxCount       = 40
	defaultLowThreshold   = 76

	// Provider limits; values outside are clamped at load.
	minMinutes  = 1
	maxMinutes  = 1440
	minMaxCount = 1
	maxMaxCount = 288

	envUsername = "DEXDASH_USERNAME"
	envPassword = "DEXDASH_PASSWORD"
)

// MinPollInterval is the shortest poll interval accepted from any source.
const MinPollInterval = minPollSeconds * time.Second

// Load locates and parses the dexdash config, falling back to defaults when
// missing. Credentials in the environment override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		applyEnv(&cfg)
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Username       string `toml:"username"`
		Password       string `toml:"password"`
		Region         string `toml:"region"`
		BaseURL        string `toml:"base_url"`
		PollSeconds    int    `toml:"poll_seconds"`
		TimeoutSeconds int    `toml:"request_timeout_seconds"`
		Minutes        int    `toml:"minutes"`
		MaxCount       int    `toml:"max_count"`
		LowThreshold   int    `toml:"low_threshold"`
		LogFile        string `toml:"log_file"`
		ListenAddr     string `toml:"listen_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Username = strings.TrimSpace(raw.Username)
	cfg.Password = raw.Password
	cfg.BaseURL = strings.TrimSpace(raw.BaseURL)
	cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)

	if region := strings.ToLower(strings.TrimSpace(raw.Region)); region != "" {
		if region != "us" && region != "ous" {
			return Config{}, fmt.Errorf("parse config: region %q must be \"us\" or \"ous\"", raw.Region)
		}
		cfg.Region = region
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = max(time.Duration(raw.PollSeconds)*time.Second, MinPollInterval)
	}
	if raw.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if raw.Minutes != 0 {
		cfg.Minutes = clamp(raw.Minutes, minMinutes, maxMinutes)
	}
	if raw.MaxCount != 0 {
		cfg.MaxCount = clamp(raw.MaxCount, minMaxCount, maxMaxCount)
	}
	if raw.LowThreshold > 0 {
		cfg.LowThreshold = raw.LowThreshold
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func defaults() Config {
	return Config{
		Region:         defaultRegion,
		PollInterval:   defaultPollSeconds * time.Second,
		RequestTimeout: defaultTimeoutSeconds * time.Second,
		Minutes:        defaultMinutes,
		MaxCount:       defaultMaxCount,
		LowThreshold:   defaultLowThreshold,
		LogFile:        mustExpand(defaultLogFile),
	}
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envUsername)); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv(envPassword); v != "" {
		cfg.Password = v
	}
}

// HasCredentials reports whether both username and password are set.
func (c Config) HasCredentials() bool {
	return strings.TrimSpace(c.Username) != "" && c.Password != ""
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
